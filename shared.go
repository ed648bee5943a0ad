// Package steg hides UTF-8 text in the least-significant bit of an image's red channel,
// visiting pixels in an order derived from a key.
//
// The key only permutes the visiting order. It is not encryption, and the hidden bits do not
// survive lossy re-encoding, so stego images have to be written in a lossless format.
package steg

import (
	"fmt"
	"math"
)

const (
	bitsPerByte    uint8  = 8
	channelsPerPix int    = 4
	hiddenChannel  int    = 0 // red
	hiddenBit      uint8  = 0 // least significant
	outPrefix      string = "stego_"
	VersionMax     uint8  = 1
	VersionMid     uint8  = 0
	VersionMin     uint8  = 0
)

// Shared types

// PixelBuffer is a raw image: interleaved, non-premultiplied RGBA bytes in row-major order.
// Pixel (x, y) starts at offset (y*Width + x) * 4.
type PixelBuffer struct {
	Width, Height int
	Pix           []uint8
}

// NewPixelBuffer allocates a zeroed width x height buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{Width: width, Height: height, Pix: make([]uint8, width*height*channelsPerPix)}
}

// Valid reports whether the buffer's dimensions agree with its byte length.
func (p *PixelBuffer) Valid() bool {
	if p == nil || p.Width < 0 || p.Height < 0 {
		return false
	}
	if p.Width == 0 || p.Height == 0 {
		return len(p.Pix) == 0
	}
	// Dimensions whose byte count overflows int can never match a real slice
	if p.Height > math.MaxInt/channelsPerPix/p.Width {
		return false
	}
	return len(p.Pix) == p.Width*p.Height*channelsPerPix
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelBuffer{Width: p.Width, Height: p.Height, Pix: pix}
}

func (p *PixelBuffer) offset(x, y int) int {
	return (y*p.Width+x)*channelsPerPix + hiddenChannel
}

// Error types

// CapacityError is returned when the payload and its terminator need more bits than the image
// has pixels.
type CapacityError struct {
	NeededBits    int
	AvailableBits int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("The message is too long for this image: it needs %d bits but only %d pixels are available.",
		e.NeededBits, e.AvailableBits)
}

// InvalidFormatError is returned when a configuration or buffer is malformed.
type InvalidFormatError struct {
	ErrorDesc string
}

func (e *InvalidFormatError) Error() string {
	if len(e.ErrorDesc) > 0 {
		return e.ErrorDesc
	}
	return "The provided data is of an invalid format."
}

// UnsupportedFormatError is returned when an image cannot be read, or when asked to write an
// image format that would not preserve the hidden bits.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("The image format '%v' is not supported here.", e.Format)
}

// Library methods

// Version returns the library version string.
func Version() string {
	return fmt.Sprintf("%02d.%02d.%02d", VersionMax, VersionMid, VersionMin)
}

// Capacity returns the number of bits a width x height image can hold, one per pixel.
func Capacity(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return width * height
}

// MaxTextBytes returns the longest UTF-8 payload, in bytes, that fits in a width x height
// image once the terminator is accounted for.
func MaxTextBytes(width, height int) int {
	n := Capacity(width, height)/int(bitsPerByte) - 1
	if n < 0 {
		return 0
	}
	return n
}
