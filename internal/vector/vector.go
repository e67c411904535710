// Package vector implements the numeric kernels used for semantic ranking.
//
// CosineSimilarity walks both vectors in blocks of four lanes, reducing each
// block with a horizontal add, and finishes any remainder with scalar
// arithmetic. The grouping differs from a naive single pass, so callers must
// compare results with an epsilon rather than bit-exact equality.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// BlockSize is the number of lanes processed per block
const BlockSize = 4

// ErrDimensionMismatch is returned when two vectors have different lengths
var ErrDimensionMismatch = errors.New("vector dimensions do not match")

// CosineSimilarity returns dot(a, b) / (|a| * |b|).
// It panics if the vectors differ in length. A zero vector on either side
// yields NaN; see IsComparable.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("%v: %d != %d", ErrDimensionMismatch, len(a), len(b)))
	}
	dot, na, nb := accumulate(a, b)
	return dot / (sqrt32(na) * sqrt32(nb))
}

// Cosine is the checked form of CosineSimilarity for vectors of unknown origin
func Cosine(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	return CosineSimilarity(a, b), nil
}

// IsComparable reports whether a similarity can take part in an ordering
func IsComparable(s float32) bool {
	return !math.IsNaN(float64(s))
}

// accumulate returns dot(a, b), |a|^2 and |b|^2. len(a) must equal len(b).
func accumulate(a, b []float32) (dot, na, nb float32) {
	n := len(a) - len(a)%BlockSize
	for i := 0; i < n; i += BlockSize {
		x := a[i : i+BlockSize : i+BlockSize]
		y := b[i : i+BlockSize : i+BlockSize]
		dot += hadd(x, y)
		na += hadd(x, x)
		nb += hadd(y, y)
	}

	for i := n; i < len(a); i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot, na, nb
}

// hadd multiplies two four-lane blocks and sums the lanes
func hadd(x, y []float32) float32 {
	_ = x[3]
	_ = y[3]
	return x[0]*y[0] + x[1]*y[1] + x[2]*y[2] + x[3]*y[3]
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
