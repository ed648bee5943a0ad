package steg

import (
	"github.com/zedseven/binmani"
	"github.com/zedseven/keysteg/internal/algos"
)

// Extract recovers text hidden with Embed under the same key.
//
// It never fails. A wrong key, an image without hidden data, or a malformed buffer yields an
// empty or garbled string; there is no way to tell these apart from a real message.
func Extract(pixels *PixelBuffer, key string) string {
	return ExtractOrdered(pixels, key, algos.AlgoPattern)
}

// ExtractOrdered is Extract with an explicit pixel ordering algorithm.
func ExtractOrdered(pixels *PixelBuffer, key string, algo algos.Algo) string {
	if !pixels.Valid() {
		return ""
	}
	order, err := algos.PixelOrder(algo, pixels.Width, pixels.Height, key)
	if err != nil {
		return ""
	}
	return decodeBits(readBits(pixels, algos.Addressor(order)))
}

// readBits collects red LSBs until a whole zero byte is read or the pixels run out. The
// terminator byte itself is not returned.
func readBits(pixels *PixelBuffer, next func() (algos.Point, error)) []uint8 {
	var bits []uint8
	zeroRun := 0
	for {
		p, err := next()
		if err != nil {
			return bits
		}
		bit := uint8(binmani.ReadFrom(uint16(pixels.Pix[pixels.offset(p.X, p.Y)]), hiddenBit, 1))
		bits = append(bits, bit)

		if bit == 0 {
			zeroRun++
		} else {
			zeroRun = 0
		}
		if len(bits)%int(bitsPerByte) == 0 && zeroRun >= int(bitsPerByte) {
			return bits[:len(bits)-int(bitsPerByte)]
		}
	}
}
