package steg

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func bitsOf(bytes ...byte) []uint8 {
	var bits []uint8
	for _, b := range bytes {
		for j := 7; j >= 0; j-- {
			bits = append(bits, (b>>uint(j))&1)
		}
	}
	return bits
}

func TestEncodeBits(t *testing.T) {
	tests := []struct {
		text string
		want []uint8
	}{
		{"", []uint8{}},
		{"H", []uint8{0, 1, 0, 0, 1, 0, 0, 0}},
		{"Hi", bitsOf('H', 'i')},
		{"é", bitsOf(0xC3, 0xA9)},
	}
	for _, tt := range tests {
		if got := encodeBits(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("encodeBits(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDecodeBits(t *testing.T) {
	tests := []struct {
		name string
		bits []uint8
		want string
	}{
		{"empty", nil, ""},
		{"ascii", bitsOf('H', 'i'), "Hi"},
		{"multibyte", bitsOf(0xE4, 0xBD, 0xA0, 0xE5, 0xA5, 0xBD), "你好"},
		{"stops at zero byte", bitsOf('a', 0, 'b'), "a"},
		{"drops partial byte", append(bitsOf('o', 'k'), 1, 0, 1), "ok"},
		{"invalid utf-8 falls back to latin-1", bitsOf(0xC3, 0x28), "Ã("},
		{"lone high bytes", bitsOf(0xFF, 0x80), "ÿ\u0080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeBits(tt.bits); got != tt.want {
				t.Errorf("decodeBits() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, text := range []string{"", "Hi", "hello, world", "隐写术 🙂", "tab\tnew\nline"} {
		if got := decodeBits(encodeBits(text)); got != text {
			t.Errorf("round trip of %q gave %q", text, got)
		}
	}
}

func TestTerminatorBits(t *testing.T) {
	if len(terminatorBits) != 8 {
		t.Fatalf("terminator is %d bits", len(terminatorBits))
	}
	for _, b := range terminatorBits {
		if b != 0 {
			t.Fatal("terminator must be all zero")
		}
	}
}

func TestDecodeBitsLatin1HighBytes(t *testing.T) {
	// The leading continuation byte makes the whole buffer invalid UTF-8
	var raw []byte
	for b := 0x80; b <= 0xFF; b++ {
		raw = append(raw, 0x80, byte(b))
	}
	got := decodeBits(bitsOf(raw...))
	if utf8.RuneCountInString(got) != len(raw) {
		t.Fatalf("decoded %d runes, want %d", utf8.RuneCountInString(got), len(raw))
	}
	i := 0
	for _, r := range got {
		if r != rune(raw[i]) {
			t.Fatalf("byte %#x decoded as %U", raw[i], r)
		}
		i++
	}
}
