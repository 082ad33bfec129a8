package stego

import (
	"crypto/sha256"
	"fmt"
	"math"

	"pixelsteg/imgio"
)

// Payload is a named blob recovered from or destined for an image.
type Payload struct {
	Filename string
	Data     []byte
}

// Encode embeds payload into a copy of img at the weakest encoding
// level with sufficient capacity. The input array is never mutated;
// on any error no array is produced.
func Encode(img *imgio.PixelArray, payload *Payload) (*imgio.PixelArray, error) {
	if len(payload.Filename) > MaxFilenameBytes {
		return nil, &PayloadTooLargeError{
			Detail: fmt.Sprintf("filename is %d bytes, limit is %d", len(payload.Filename), MaxFilenameBytes),
		}
	}
	if uint64(len(payload.Data)) > math.MaxUint32 {
		return nil, &PayloadTooLargeError{
			Detail: fmt.Sprintf("body is %d bytes, the 4-byte size field tops out at %d", len(payload.Data), uint32(math.MaxUint32)),
		}
	}

	// Header size does not depend on the level, so the level can be
	// chosen from the total byte count alone.
	total := HeaderLength(len(payload.Filename)) + len(payload.Data)
	level, err := SelectLevel(img.Subpixels(), total)
	if err != nil {
		return nil, err
	}

	header := &Header{
		Level:    level,
		Filename: payload.Filename,
		DataHash: sha256.Sum256(payload.Data),
		DataSize: uint32(len(payload.Data)),
	}
	raw, err := header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	raw = append(raw, payload.Data...)

	out := img.Clone()
	WriteSymbols(out.Pix, ExpandBits(raw, level), level)
	return out, nil
}
