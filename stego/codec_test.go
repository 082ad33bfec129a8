package stego

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"pixelsteg/imgio"
)

func makeArray(t *testing.T, width, height int) *imgio.PixelArray {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(width)*31 + int64(height)))
	pix := make([]uint8, width*height*4)
	rng.Read(pix)
	return &imgio.PixelArray{Pix: pix, Height: height, Width: width, Channels: 4}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for _, tc := range []struct {
		name      string
		width     int
		height    int
		filename  string
		bodyBytes int
		wantLevel EncodingLevel
	}{
		{name: "roomy_level1", width: 200, height: 100, filename: "notes.txt", bodyBytes: 1000, wantLevel: Level1},
		{name: "tight_level2", width: 40, height: 10, filename: "a.bin", bodyBytes: 300, wantLevel: Level2},
		{name: "tight_level4", width: 40, height: 10, filename: "a.bin", bodyBytes: 700, wantLevel: Level4},
		{name: "empty_filename", width: 50, height: 50, filename: "", bodyBytes: 64, wantLevel: Level1},
		{name: "empty_body", width: 20, height: 20, filename: "empty.dat", bodyBytes: 0, wantLevel: Level1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cover := makeArray(t, tc.width, tc.height)
			body := make([]byte, tc.bodyBytes)
			rng.Read(body)

			stegoArray, err := Encode(cover, &Payload{Filename: tc.filename, Data: body})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			header, err := Detect(stegoArray)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if header.Level != tc.wantLevel {
				t.Errorf("encoded at level %d, want %d", header.Level, tc.wantLevel)
			}

			for _, workers := range []int{0, 1, 5} {
				payload, err := Decode(stegoArray, workers)
				if err != nil {
					t.Fatalf("Decode (workers=%d): %v", workers, err)
				}
				if payload.Filename != tc.filename {
					t.Errorf("filename: got %q, want %q", payload.Filename, tc.filename)
				}
				if !bytes.Equal(payload.Data, body) {
					t.Errorf("body spoiled by round trip (workers=%d)", workers)
				}
			}
		})
	}
}

func TestEncode_DoesNotMutateInput(t *testing.T) {
	cover := makeArray(t, 100, 100)
	before := append([]uint8(nil), cover.Pix...)

	if _, err := Encode(cover, &Payload{Filename: "f", Data: make([]byte, 2000)}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(cover.Pix, before) {
		t.Error("Encode mutated the caller's array")
	}
}

func TestEncode_PayloadTooLarge(t *testing.T) {
	// 10 subpixels cannot hold the 39-byte header plus 1 body byte:
	// 40 bytes need 80 subpixels even at 4 bits per subpixel.
	cover := &imgio.PixelArray{Pix: make([]uint8, 10), Height: 1, Width: 10, Channels: 1}

	_, err := Encode(cover, &Payload{Filename: "", Data: []byte{0xAA}})
	var tooLarge *PayloadTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected PayloadTooLargeError, got %v", err)
	}
	if tooLarge.RequiredSubpixels != 80 || tooLarge.AvailableSubpixels != 10 {
		t.Errorf("got required %d / available %d, want 80 / 10", tooLarge.RequiredSubpixels, tooLarge.AvailableSubpixels)
	}
}

func TestEncode_FilenameTooLong(t *testing.T) {
	cover := makeArray(t, 200, 200)
	longName := string(bytes.Repeat([]byte("n"), 256))

	_, err := Encode(cover, &Payload{Filename: longName, Data: []byte("x")})
	var tooLarge *PayloadTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected PayloadTooLargeError, got %v", err)
	}
}

func TestDetect_NoPayload(t *testing.T) {
	for _, tc := range []struct {
		name string
		fill uint8
	}{
		{name: "all_zero", fill: 0x00},
		{name: "all_ones", fill: 0xFF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pix := make([]uint8, 4096)
			for i := range pix {
				pix[i] = tc.fill
			}
			array := &imgio.PixelArray{Pix: pix, Height: 32, Width: 32, Channels: 4}

			if _, err := Detect(array); !errors.Is(err, ErrNoPayload) {
				t.Errorf("expected ErrNoPayload, got %v", err)
			}
			if _, err := Decode(array, 1); !errors.Is(err, ErrNoPayload) {
				t.Errorf("Decode: expected ErrNoPayload, got %v", err)
			}
		})
	}
}

func TestDecode_TamperedBody(t *testing.T) {
	cover := makeArray(t, 64, 64)
	body := bytes.Repeat([]byte("tamper-evident "), 20)

	stegoArray, err := Encode(cover, &Payload{Filename: "t.txt", Data: body})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	header, err := Detect(stegoArray)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	// Flip one carried bit in the first body subpixel, past the header.
	bodyStart := header.Length() * header.Level.SymbolsPerByte()
	stegoArray.Pix[bodyStart] ^= 0x01

	_, err = Decode(stegoArray, 1)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
}

func TestDecode_TruncatedImage(t *testing.T) {
	cover := makeArray(t, 64, 64)
	stegoArray, err := Encode(cover, &Payload{Filename: "big.bin", Data: make([]byte, 1500)})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Keep the header but cut the image short of the declared body.
	header, err := Detect(stegoArray)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	cut := header.Length()*header.Level.SymbolsPerByte() + 100
	truncated := &imgio.PixelArray{Pix: stegoArray.Pix[:cut], Height: 1, Width: cut, Channels: 1}

	_, err = Decode(truncated, 1)
	var malformed *MalformedHeaderError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedHeaderError, got %v", err)
	}
}
