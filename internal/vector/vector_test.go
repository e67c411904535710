package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-4

// naiveCosine is a float64 single-pass reference
func naiveCosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func sample(n int, seed float32) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32(math.Sin(float64(seed) + float64(i)*0.37))
	}
	return v
}

func scale(v []float32, k float32) []float32 {
	out := make([]float32, len(v))
	for i := range v {
		out[i] = v[i] * k
	}
	return out
}

func TestCosineSimilarity_Self(t *testing.T) {
	// Lengths cover exact blocks, remainders, and remainder-only vectors
	for _, n := range []int{1, 3, 4, 5, 8, 13, 100, 300} {
		a := sample(n, 1.5)
		assert.InDelta(t, 1.0, CosineSimilarity(a, a), epsilon, "n=%d", n)
	}
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := sample(37, 0.2)
	for _, k := range []float32{0.001, 0.5, 2, 1000} {
		assert.InDelta(t, 1.0, CosineSimilarity(a, scale(a, k)), epsilon, "scale=%v", k)
	}
}

func TestCosineSimilarity_Opposite(t *testing.T) {
	a := sample(10, 3)
	assert.InDelta(t, -1.0, CosineSimilarity(a, scale(a, -1)), epsilon)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	a := []float32{1, 0, 0, 0, 0}
	b := []float32{0, 1, 0, 0, 0}
	assert.InDelta(t, 0.0, CosineSimilarity(a, b), epsilon)
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	for _, n := range []int{4, 7, 50} {
		a := sample(n, 0.1)
		b := sample(n, 2.9)
		assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a), "n=%d", n)
	}
}

func TestCosineSimilarity_MatchesNaive(t *testing.T) {
	for _, n := range []int{4, 6, 64, 301} {
		a := sample(n, 0.7)
		b := sample(n, 4.1)
		assert.InDelta(t, naiveCosine(a, b), float64(CosineSimilarity(a, b)), 1e-5, "n=%d", n)
	}
}

func TestCosineSimilarity_ZeroVectorIsNaN(t *testing.T) {
	a := sample(6, 1)
	zero := make([]float32, 6)

	s := CosineSimilarity(a, zero)
	assert.True(t, math.IsNaN(float64(s)))
	assert.False(t, IsComparable(s))

	s = CosineSimilarity(zero, zero)
	assert.False(t, IsComparable(s))
}

func TestCosineSimilarity_LengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2})
	})
}

func TestCosine_Checked(t *testing.T) {
	_, err := Cosine([]float32{1, 2, 3}, []float32{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	s, err := Cosine([]float32{1, 2}, []float32{2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s, epsilon)
}

func TestAccumulate(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{5, 4, 3, 2, 1}
	dot, na, nb := accumulate(a, b)
	assert.InDelta(t, 35.0, dot, epsilon)
	assert.InDelta(t, 55.0, na, epsilon)
	assert.InDelta(t, 55.0, nb, epsilon)

	dot, na, nb = accumulate(nil, nil)
	assert.Zero(t, dot)
	assert.Zero(t, na)
	assert.Zero(t, nb)
}

func BenchmarkCosineSimilarity(b *testing.B) {
	x := sample(300, 0.3)
	y := sample(300, 1.3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CosineSimilarity(x, y)
	}
}
