package stego

import "pixelsteg/imgio"

// Detect probes each encoding level, weakest first, for a structurally
// valid header starting at subpixel 0. A candidate level is accepted
// only when the format tag matches and the header's own level field
// agrees with the level being probed; that consistency check makes the
// probe order irrelevant for correctness. The scan never modifies the
// array. Returns ErrNoPayload when no level yields a valid header.
func Detect(img *imgio.PixelArray) (*Header, error) {
	pix := img.Pix
	for _, level := range Levels {
		per := level.SymbolsPerByte()

		prefixSub := HeaderPrefixBytes * per
		if prefixSub > len(pix) {
			continue
		}
		prefix := packSymbols(ReadSymbols(pix[:prefixSub], level), level)
		if prefix[0] != FormatTag || EncodingLevel(prefix[1]) != level {
			continue
		}

		headerLen := HeaderLength(int(prefix[2]))
		if headerLen*per > len(pix) {
			continue
		}
		raw := packSymbols(ReadSymbols(pix[:headerLen*per], level), level)
		header, err := UnmarshalHeader(raw)
		if err != nil {
			continue
		}
		return header, nil
	}
	return nil, ErrNoPayload
}
