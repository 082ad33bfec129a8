package stego

import (
	"crypto/sha256"
	"fmt"

	"pixelsteg/imgio"
)

// Decode recovers the payload embedded in img, or reports why there is
// none: ErrNoPayload when no header is found, MalformedHeaderError
// when the header contradicts the image, IntegrityError when the body
// fails its checksum. A payload is only returned fully verified.
//
// workers sets the fan-out of the body read; <= 0 selects
// runtime.NumCPU().
func Decode(img *imgio.PixelArray, workers int) (*Payload, error) {
	header, err := Detect(img)
	if err != nil {
		return nil, err
	}

	per := header.Level.SymbolsPerByte()
	bodyStart := header.Length() * per
	if need := bodyStart + int(header.DataSize)*per; need > img.Subpixels() {
		return nil, &MalformedHeaderError{
			Reason: fmt.Sprintf("declared body of %d bytes needs %d subpixels, image has %d",
				header.DataSize, need, img.Subpixels()),
		}
	}

	body, err := ReadBytes(img.Pix, header.Level, bodyStart, int(header.DataSize), workers)
	if err != nil {
		return nil, err
	}

	if sum := sha256.Sum256(body); sum != header.DataHash {
		return nil, &IntegrityError{Expected: header.DataHash, Actual: sum}
	}
	return &Payload{Filename: header.Filename, Data: body}, nil
}
