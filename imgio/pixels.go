// Package imgio loads and saves carrier images and converts them to
// the flat subpixel form the codec works on.
package imgio

import (
	"fmt"
	"image"
	"image/draw"
)

// PixelArray is a height×width×channels block of 8-bit subpixels in
// raster order (row-major, channel-minor), the same layout as
// image.NRGBA.Pix. The codec reads it during decode and clones it
// during encode; it never mutates a caller-owned array.
type PixelArray struct {
	Pix      []uint8
	Height   int
	Width    int
	Channels int
}

// Subpixels is the number of channel values in the array, i.e. the
// number of symbols the image can hold.
func (p *PixelArray) Subpixels() int {
	return len(p.Pix)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (p *PixelArray) Clone() *PixelArray {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelArray{Pix: pix, Height: p.Height, Width: p.Width, Channels: p.Channels}
}

// FromImage converts any image to a 4-channel pixel array. Colors pass
// through NRGBA so subpixel bytes survive a save/load round trip
// unchanged; premultiplied alpha would not.
func FromImage(src image.Image) *PixelArray {
	b := src.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	return &PixelArray{
		Pix:      nrgba.Pix,
		Height:   b.Dy(),
		Width:    b.Dx(),
		Channels: 4,
	}
}

// ToImage materializes the array as an NRGBA image. A 3-channel array
// gains an opaque alpha channel.
func (p *PixelArray) ToImage() (*image.NRGBA, error) {
	switch p.Channels {
	case 4:
		if len(p.Pix) != p.Height*p.Width*4 {
			return nil, fmt.Errorf("pixel data is %d bytes, want %d for %dx%dx4", len(p.Pix), p.Height*p.Width*4, p.Width, p.Height)
		}
		img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
		copy(img.Pix, p.Pix)
		return img, nil
	case 3:
		if len(p.Pix) != p.Height*p.Width*3 {
			return nil, fmt.Errorf("pixel data is %d bytes, want %d for %dx%dx3", len(p.Pix), p.Height*p.Width*3, p.Width, p.Height)
		}
		img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
		for i := 0; i < p.Height*p.Width; i++ {
			copy(img.Pix[i*4:], p.Pix[i*3:i*3+3])
			img.Pix[i*4+3] = 0xff
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", p.Channels)
	}
}
