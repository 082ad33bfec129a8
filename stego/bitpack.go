package stego

import "fmt"

// ExpandBits splits each byte into 8/level symbols of level bits each,
// most significant bits first, preserving byte order.
func ExpandBits(data []byte, level EncodingLevel) []uint8 {
	per := level.SymbolsPerByte()
	mask := level.mask()
	symbols := make([]uint8, 0, len(data)*per)
	for _, b := range data {
		for s := per - 1; s >= 0; s-- {
			symbols = append(symbols, (b>>(uint(s)*uint(level)))&mask)
		}
	}
	return symbols
}

// PackBits is the inverse of ExpandBits: every 8/level consecutive
// symbols become one byte, most significant first. The symbol count
// must be a whole number of bytes.
func PackBits(symbols []uint8, level EncodingLevel) ([]byte, error) {
	per := level.SymbolsPerByte()
	if len(symbols)%per != 0 {
		return nil, &MalformedHeaderError{
			Reason: fmt.Sprintf("symbol count %d is not a multiple of %d", len(symbols), per),
		}
	}
	return packSymbols(symbols, level), nil
}

// packSymbols assumes len(symbols) is a multiple of 8/level. The
// parallel read path calls it directly on slices that are exact by
// construction.
func packSymbols(symbols []uint8, level EncodingLevel) []byte {
	per := level.SymbolsPerByte()
	mask := level.mask()
	out := make([]byte, len(symbols)/per)
	for i := range out {
		var b byte
		for s := 0; s < per; s++ {
			b = b<<level | symbols[i*per+s]&mask
		}
		out[i] = b
	}
	return out
}

// WriteSymbols replaces the low level bits of each subpixel with the
// corresponding symbol, leaving the high bits untouched. One symbol
// consumes exactly one subpixel.
func WriteSymbols(pix []uint8, symbols []uint8, level EncodingLevel) {
	mask := level.mask()
	for i, s := range symbols {
		pix[i] = (pix[i] &^ mask) | (s & mask)
	}
}

// ReadSymbols extracts the low level bits of each subpixel.
func ReadSymbols(pix []uint8, level EncodingLevel) []uint8 {
	mask := level.mask()
	symbols := make([]uint8, len(pix))
	for i, p := range pix {
		symbols[i] = p & mask
	}
	return symbols
}
