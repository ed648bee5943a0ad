// Package util provides some basic utility functions.
package util

// MakeRange returns a new array of length max, with contents (0, ..., max - 1)
func MakeRange(max int64) []int64 {
	if max <= 0 {
		return []int64{}
	}
	r := make([]int64, max)
	for i := range r {
		r[i] = int64(i)
	}
	return r
}

// Min returns the smallest of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
