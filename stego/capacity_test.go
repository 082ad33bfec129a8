package stego

import (
	"errors"
	"testing"
)

func TestSelectLevel(t *testing.T) {
	for _, tc := range []struct {
		name       string
		subpixels  int
		totalBytes int
		want       EncodingLevel
	}{
		{name: "fits_level1", subpixels: 80, totalBytes: 10, want: Level1},
		{name: "just_misses_level1", subpixels: 79, totalBytes: 10, want: Level2},
		{name: "exact_level2", subpixels: 40, totalBytes: 10, want: Level2},
		{name: "just_misses_level2", subpixels: 39, totalBytes: 10, want: Level4},
		{name: "exact_level4", subpixels: 20, totalBytes: 10, want: Level4},
		{name: "zero_bytes", subpixels: 0, totalBytes: 0, want: Level1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectLevel(tc.subpixels, tc.totalBytes)
			if err != nil {
				t.Fatalf("SelectLevel(%d, %d): %v", tc.subpixels, tc.totalBytes, err)
			}
			if got != tc.want {
				t.Errorf("SelectLevel(%d, %d) = %d, want %d", tc.subpixels, tc.totalBytes, got, tc.want)
			}
		})
	}
}

func TestSelectLevel_InsufficientCapacity(t *testing.T) {
	_, err := SelectLevel(19, 10)
	var tooLarge *PayloadTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected PayloadTooLargeError, got %v", err)
	}
	if tooLarge.RequiredSubpixels != 20 || tooLarge.AvailableSubpixels != 19 {
		t.Errorf("got required %d / available %d, want 20 / 19", tooLarge.RequiredSubpixels, tooLarge.AvailableSubpixels)
	}
	if tooLarge.Shortfall() != 1 {
		t.Errorf("Shortfall() = %d, want 1", tooLarge.Shortfall())
	}
}

// The selected level must always be the weakest one that fits.
func TestSelectLevel_Minimality(t *testing.T) {
	for subpixels := 0; subpixels <= 400; subpixels++ {
		for totalBytes := 0; totalBytes <= 50; totalBytes++ {
			level, err := SelectLevel(subpixels, totalBytes)
			if err != nil {
				if totalBytes*2 <= subpixels {
					t.Fatalf("SelectLevel(%d, %d) failed but level 4 fits", subpixels, totalBytes)
				}
				continue
			}
			if totalBytes*level.SymbolsPerByte() > subpixels {
				t.Fatalf("SelectLevel(%d, %d) = %d does not fit", subpixels, totalBytes, level)
			}
			for _, weaker := range Levels {
				if weaker >= level {
					break
				}
				if totalBytes*weaker.SymbolsPerByte() <= subpixels {
					t.Fatalf("SelectLevel(%d, %d) = %d but weaker level %d fits", subpixels, totalBytes, level, weaker)
				}
			}
		}
	}
}

func TestCapacityBytes(t *testing.T) {
	for _, tc := range []struct {
		subpixels int
		level     EncodingLevel
		want      int
	}{
		{800, Level1, 100},
		{800, Level2, 200},
		{800, Level4, 400},
		{7, Level1, 0},
	} {
		if got := CapacityBytes(tc.subpixels, tc.level); got != tc.want {
			t.Errorf("CapacityBytes(%d, %d) = %d, want %d", tc.subpixels, tc.level, got, tc.want)
		}
	}
}
