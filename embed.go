package steg

import (
	"github.com/zedseven/binmani"
	"github.com/zedseven/keysteg/internal/algos"
)

// Embed hides text in a copy of pixels, visiting pixels in the order derived from key, and
// returns the copy. The original buffer is never modified.
//
// One bit is stored per pixel, so the payload plus its 8-bit terminator must fit in
// Width*Height bits; otherwise a *CapacityError is returned.
func Embed(pixels *PixelBuffer, text, key string) (*PixelBuffer, error) {
	return EmbedOrdered(pixels, text, key, algos.AlgoPattern)
}

// EmbedOrdered is Embed with an explicit pixel ordering algorithm.
func EmbedOrdered(pixels *PixelBuffer, text, key string, algo algos.Algo) (*PixelBuffer, error) {
	if !pixels.Valid() {
		return nil, &InvalidFormatError{"The pixel buffer length does not match its dimensions."}
	}

	bits := append(encodeBits(text), terminatorBits...)
	if available := Capacity(pixels.Width, pixels.Height); len(bits) > available {
		return nil, &CapacityError{NeededBits: len(bits), AvailableBits: available}
	}

	order, err := algos.PixelOrder(algo, pixels.Width, pixels.Height, key)
	if err != nil {
		return nil, err
	}

	out := pixels.Clone()
	writeBits(out, bits, algos.Addressor(order))
	return out, nil
}

// writeBits stores one bit in the red LSB of each pixel handed out by next. The capacity check
// guarantees next never runs dry.
func writeBits(pixels *PixelBuffer, bits []uint8, next func() (algos.Point, error)) {
	for _, bit := range bits {
		p, err := next()
		if err != nil {
			panic("Something went seriously wrong when fetching the next pixel address.")
		}
		off := pixels.offset(p.X, p.Y)
		pixels.Pix[off] = uint8(binmani.WriteTo(uint16(pixels.Pix[off]), hiddenBit, 1, uint16(bit)))
	}
}
