package stego

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const (
	// FormatTag is the fixed value of the header's first byte. Any
	// other value belongs to a future payload format.
	FormatTag = 0

	tagBytes     = 1
	levelBytes   = 1
	nameLenBytes = 1
	hashBytes    = sha256.Size
	dataLenBytes = 4

	// HeaderPrefixBytes is the fixed-size part a detector can read
	// before it knows the filename length.
	HeaderPrefixBytes = tagBytes + levelBytes + nameLenBytes

	// MaxFilenameBytes is the largest filename the 1-byte length
	// field can describe.
	MaxFilenameBytes = 255
)

// HeaderLength returns the serialized header size in bytes for a
// filename of the given byte length. It is level-independent, which is
// what lets capacity planning run before the level is chosen.
func HeaderLength(filenameSize int) int {
	return HeaderPrefixBytes + filenameSize + hashBytes + dataLenBytes
}

// Header is the metadata block embedded ahead of the payload body.
// It is a pure value: built or parsed once, never mutated.
type Header struct {
	Level    EncodingLevel
	Filename string
	DataHash [sha256.Size]byte
	DataSize uint32
}

// Length is the serialized size of this header in bytes.
func (h *Header) Length() int {
	return HeaderLength(len(h.Filename))
}

// MarshalBinary serializes the header: tag, level, filename length,
// filename, body digest, body length (big-endian).
func (h *Header) MarshalBinary() ([]byte, error) {
	if len(h.Filename) > MaxFilenameBytes {
		return nil, &PayloadTooLargeError{
			Detail: fmt.Sprintf("filename is %d bytes, limit is %d", len(h.Filename), MaxFilenameBytes),
		}
	}
	if !h.Level.Valid() {
		return nil, &MalformedHeaderError{Reason: fmt.Sprintf("invalid encoding level %d", h.Level)}
	}
	buf := make([]byte, 0, h.Length())
	buf = append(buf, FormatTag, byte(h.Level), byte(len(h.Filename)))
	buf = append(buf, h.Filename...)
	buf = append(buf, h.DataHash[:]...)
	buf = binary.BigEndian.AppendUint32(buf, h.DataSize)
	return buf, nil
}

// UnmarshalHeader parses a serialized header. The input may carry
// trailing bytes; only the header-sized prefix is consumed.
func UnmarshalHeader(data []byte) (*Header, error) {
	if len(data) < HeaderPrefixBytes {
		return nil, &MalformedHeaderError{Reason: fmt.Sprintf("%d bytes is shorter than the fixed prefix", len(data))}
	}
	if data[0] != FormatTag {
		return nil, &UnsupportedFormatError{Tag: data[0]}
	}
	level := EncodingLevel(data[1])
	if !level.Valid() {
		return nil, &MalformedHeaderError{Reason: fmt.Sprintf("invalid encoding level %d", level)}
	}
	nameLen := int(data[2])
	if len(data) < HeaderLength(nameLen) {
		return nil, &MalformedHeaderError{
			Reason: fmt.Sprintf("declared filename length %d needs %d bytes, have %d", nameLen, HeaderLength(nameLen), len(data)),
		}
	}
	h := &Header{
		Level:    level,
		Filename: string(data[HeaderPrefixBytes : HeaderPrefixBytes+nameLen]),
	}
	copy(h.DataHash[:], data[HeaderPrefixBytes+nameLen:])
	h.DataSize = binary.BigEndian.Uint32(data[HeaderPrefixBytes+nameLen+hashBytes:])
	return h, nil
}
