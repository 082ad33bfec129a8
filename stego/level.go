// Package stego implements LSB steganography on flat subpixel arrays:
// header framing, capacity planning, bit packing and the concurrent
// extraction path.
package stego

// EncodingLevel is the number of low-order bits of each subpixel that
// carry payload data. Only 1, 2 and 4 are valid: each divides 8, so a
// payload byte always maps to a whole number of subpixels.
type EncodingLevel uint8

const (
	Level1 EncodingLevel = 1
	Level2 EncodingLevel = 2
	Level4 EncodingLevel = 4
)

// Levels lists the valid encoding levels weakest first. Capacity
// selection and payload detection both walk this order.
var Levels = [...]EncodingLevel{Level1, Level2, Level4}

func (l EncodingLevel) Valid() bool {
	return l == Level1 || l == Level2 || l == Level4
}

// SymbolsPerByte is the number of subpixels one payload byte occupies
// at this level.
func (l EncodingLevel) SymbolsPerByte() int {
	return 8 / int(l)
}

func (l EncodingLevel) mask() uint8 {
	return 1<<l - 1
}
