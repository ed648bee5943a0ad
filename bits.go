package steg

import (
	"unicode/utf8"

	"github.com/zedseven/binmani"
	"golang.org/x/text/encoding/charmap"
)

// terminatorBits marks the end of the payload. Since it is a zero byte, payloads containing
// NUL cannot be round-tripped; everything after the first NUL is lost on extraction.
var terminatorBits = make([]uint8, bitsPerByte)

// encodeBits expands the UTF-8 bytes of text into bits, most significant first.
func encodeBits(text string) []uint8 {
	bits := make([]uint8, 0, len(text)*int(bitsPerByte))
	for i := 0; i < len(text); i++ {
		for j := uint8(0); j < bitsPerByte; j++ {
			bits = append(bits, uint8(binmani.ReadFrom(uint16(text[i]), bitsPerByte-j-1, 1)))
		}
	}
	return bits
}

// decodeBits packs bits back into bytes, stopping at the first zero byte and dropping any
// trailing partial byte. Bytes that are not valid UTF-8 are read as ISO-8859-1 instead, so a
// wrong key produces garbage rather than an error.
func decodeBits(bits []uint8) string {
	b := make([]byte, 0, len(bits)/int(bitsPerByte))
	for i := 0; i+int(bitsPerByte) <= len(bits); i += int(bitsPerByte) {
		v := uint16(0)
		for j := uint8(0); j < bitsPerByte; j++ {
			v = binmani.WriteTo(v, bitsPerByte-j-1, 1, uint16(bits[i+int(j)]&1))
		}
		if v == 0 {
			break
		}
		b = append(b, byte(v))
	}

	if utf8.Valid(b) {
		return string(b)
	}
	return latin1(b)
}

func latin1(b []byte) string {
	// Every byte has a code point in ISO-8859-1, so decoding cannot fail
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(s)
}
