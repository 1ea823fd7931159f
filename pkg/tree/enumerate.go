package tree

import (
	"errors"
	"fmt"
	"math"
)

// MaxMaterialized bounds the number of sequences All will collect in memory.
// Enumerate streams and has no bound.
const MaxMaterialized = 1 << 20

// ErrTooManySequences is returned when n^(n-2) does not fit in an int, or
// when All would have to hold more than MaxMaterialized sequences.
var ErrTooManySequences = errors.New("too many sequences")

// Count returns the number of Prüfer sequences (labeled trees) on n vertices,
// n^(n-2). It returns 0 for n < 2 and ErrTooManySequences once the count
// overflows an int, which happens from n = 18 on 64-bit platforms.
func Count(n int) (int, error) {
	if n < 2 {
		return 0, nil
	}
	total := 1
	for i := 0; i < n-2; i++ {
		if total > math.MaxInt/n {
			return 0, fmt.Errorf("%w: %d^%d overflows int", ErrTooManySequences, n, n-2)
		}
		total *= n
	}
	return total, nil
}

// Enumerate calls fn with every Prüfer sequence for n vertices in
// lexicographic order. fn must not retain the slice; returning false stops
// the enumeration.
func Enumerate(n int, fn func(seq []int) bool) {
	if n < 2 {
		return
	}

	seq := make([]int, n-2)
	for {
		if !fn(seq) {
			return
		}

		// odometer increment, last position fastest
		i := len(seq) - 1
		for i >= 0 {
			seq[i]++
			if seq[i] < n {
				break
			}
			seq[i] = 0
			i--
		}
		if i < 0 {
			return
		}
	}
}

// All returns every Prüfer sequence for n vertices in lexicographic order.
// It refuses with ErrTooManySequences when there are more than
// MaxMaterialized of them.
func All(n int) ([][]int, error) {
	total, err := Count(n)
	if err != nil {
		return nil, err
	}
	if total > MaxMaterialized {
		return nil, fmt.Errorf("%w: %d sequences for %d vertices, limit %d", ErrTooManySequences, total, n, MaxMaterialized)
	}

	out := make([][]int, 0, total)
	Enumerate(n, func(seq []int) bool {
		cp := make([]int, len(seq))
		copy(cp, seq)
		out = append(out, cp)
		return true
	})
	return out, nil
}
