package stego

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

// ErrNoPayload is returned when no structurally valid header is found
// at any encoding level. It is the expected outcome for images that
// never had a payload embedded.
var ErrNoPayload = errors.New("no payload found")

// PayloadTooLargeError reports that a payload does not fit the target
// image even at the densest encoding level.
type PayloadTooLargeError struct {
	Detail             string
	RequiredSubpixels  int
	AvailableSubpixels int
}

func (e *PayloadTooLargeError) Error() string {
	if e.Detail != "" {
		return "payload too large: " + e.Detail
	}
	return fmt.Sprintf("payload too large: need %d subpixels at %d bits per subpixel, image has %d",
		e.RequiredSubpixels, Level4, e.AvailableSubpixels)
}

// Shortfall is the number of additional subpixels the image would need
// at the densest encoding level.
func (e *PayloadTooLargeError) Shortfall() int {
	return e.RequiredSubpixels - e.AvailableSubpixels
}

// MalformedHeaderError reports a structurally invalid header or a
// header whose declared sizes contradict the image that carries it.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return "malformed header: " + e.Reason
}

// UnsupportedFormatError reports a header whose format tag is not the
// one this codec writes. Reserved for future payload formats.
type UnsupportedFormatError struct {
	Tag byte
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported payload format tag %d", e.Tag)
}

// IntegrityError reports a checksum mismatch between the digest stored
// in the header and the digest of the extracted body.
type IntegrityError struct {
	Expected [sha256.Size]byte
	Actual   [sha256.Size]byte
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("payload checksum mismatch: header says %x, body is %x", e.Expected, e.Actual)
}
