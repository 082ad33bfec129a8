package stego

// CapacityBytes is the total number of bytes (header included) an
// image with the given subpixel count can carry at level l.
func CapacityBytes(subpixels int, l EncodingLevel) int {
	return subpixels * int(l) / 8
}

// SelectLevel returns the weakest encoding level whose capacity covers
// totalBytes (header plus body). Weakest-that-fits minimizes visual
// distortion. The choice is a pure function of its two inputs.
func SelectLevel(subpixels, totalBytes int) (EncodingLevel, error) {
	for _, l := range Levels {
		if totalBytes*l.SymbolsPerByte() <= subpixels {
			return l, nil
		}
	}
	return 0, &PayloadTooLargeError{
		RequiredSubpixels:  totalBytes * Level4.SymbolsPerByte(),
		AvailableSubpixels: subpixels,
	}
}
