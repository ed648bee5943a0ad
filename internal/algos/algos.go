package algos

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf16"

	"github.com/zedseven/keysteg/internal/util"
)

// Algorithm definitions

// Defines a supported pixel ordering algorithm.
type Algo int

// Simply determines whether a given algorithm is valid.
func (algo Algo) IsValid() bool {
	return algo > AlgoUnknown && algo <= maxAlgoVal
}

// Returns the name of the algorithm, or "<unknown>" if unknown.
func (algo Algo) String() string {
	switch algo {
	case AlgoSequential:
		return "sequential"
	case AlgoPattern:
		return "pattern"
	default:
		return "<unknown>"
	}
}

const (
	AlgoUnknown    Algo = iota     // An unknown algorithm type.
	AlgoSequential Algo = iota     // Visits pixels in row-major order, ignoring the key.
	AlgoPattern    Algo = iota     // Visits pixels in a key-derived Fisher-Yates shuffled order.
	maxAlgoVal     Algo = iota - 1 // The maximum algorithm value, used for validity checking.
)

const (
	// Modulus is the Mersenne prime 2^31 - 1 used by both the key hash and the generator.
	Modulus int64 = 2147483647
	// Multiplier is the Park-Miller multiplier.
	Multiplier  int64 = 16807
	keyHashBase int64 = 31
)

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// Error types

// Thrown when an unknown algorithm type is provided.
type UnknownAlgoError struct {
	Algorithm Algo
}

func (e UnknownAlgoError) Error() string {
	return fmt.Sprintf("The specified algorithm (%d) does not exist.", e.Algorithm)
}

// Thrown when an addressor is called but its pool of available pixels to hand out is empty.
type EmptyPoolError struct{}

func (e EmptyPoolError) Error() string {
	return "The pool of pixel addresses is empty."
}

// Seeding

// KeySeed hashes a key into a generator seed. Characters are taken as UTF-16 code units,
// so keys outside the BMP contribute both halves of their surrogate pair.
func KeySeed(key string) int64 {
	seed := int64(0)
	for _, c := range utf16.Encode([]rune(key)) {
		seed = (seed*keyHashBase + int64(c)) % Modulus
	}
	return seed
}

// Lehmer is the Park-Miller minimal standard generator. A zero state stays zero forever.
type Lehmer struct {
	state int64
}

// NewLehmer returns a generator starting from seed.
func NewLehmer(seed int64) *Lehmer {
	return &Lehmer{state: seed % Modulus}
}

// Float64 advances the generator and returns a value in [0, 1).
func (l *Lehmer) Float64() float64 {
	l.state = (l.state * Multiplier) % Modulus
	return float64(l.state) / float64(Modulus)
}

// Intn advances the generator and returns floor(Float64() * n), never more than n - 1.
func (l *Lehmer) Intn(n int) int {
	j := int(math.Floor(l.Float64() * float64(n)))
	return util.Min(j, n-1)
}

// Orders

// SequentialOrder returns every pixel of a width x height grid in row-major order.
func SequentialOrder(width, height int) []Point {
	if width <= 0 || height <= 0 {
		return []Point{}
	}
	order := make([]Point, width*height)
	for i, pos := range util.MakeRange(int64(width * height)) {
		order[i] = posToXY(pos, width)
	}
	return order
}

// PatternOrder returns every pixel of a width x height grid, shuffled by a Fisher-Yates pass
// driven by a Lehmer generator seeded from the key. The same arguments always produce the
// same order.
func PatternOrder(width, height int, key string) []Point {
	order := SequentialOrder(width, height)
	rng := NewLehmer(KeySeed(key))
	for i := len(order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Algorithm type interfacing methods

// PixelOrder builds the visiting order for the provided algorithm.
func PixelOrder(algo Algo, width, height int, key string) ([]Point, error) {
	switch algo {
	case AlgoSequential:
		return SequentialOrder(width, height), nil
	case AlgoPattern:
		return PatternOrder(width, height, key), nil
	default:
		return nil, &UnknownAlgoError{algo}
	}
}

// Addressor hands out the points of order one at a time, returning an EmptyPoolError once
// every point has been handed out.
func Addressor(order []Point) func() (Point, error) {
	pos := -1
	return func() (Point, error) {
		pos++
		if pos >= len(order) {
			return Point{}, &EmptyPoolError{}
		}
		return order[pos], nil
	}
}

// Simply parses a string into an algorithm type, or AlgoUnknown if the string is not recognized.
func StringToAlgo(str string) Algo {
	switch strings.ToLower(str) {
	case "sequential":
		return AlgoSequential
	case "pattern":
		return AlgoPattern
	default:
		return AlgoUnknown
	}
}

func posToXY(pos int64, w int) Point {
	// Would normally floor here, but since all values are >= 0, integer division handles this for us
	return Point{X: int(pos % int64(w)), Y: int(pos / int64(w))}
}
