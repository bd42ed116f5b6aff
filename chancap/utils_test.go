package chancap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// The reformulation rests on the identity
//
//	klDiv(a*w, a*(w+b*p)) - a*b*p == -a*w*ln(1 + b*p/w)
//
// so the divergence form of the objective is exactly the negated rate.
func TestKLDivIdentity(t *testing.T) {
	cases := []struct{ a, b, p, w float64 }{
		{1.0, 1.0, 1.0, 1.0},
		{2.8, 2.8, 0.5, 1.0},
		{0.3, 4.0, 2.0, 0.1},
		{5.0, 0.2, 1e-6, 3.0},
		{1.5, 1.5, 7.0, 1e-6},
	}
	for _, c := range cases {
		got := klDiv(c.a*c.w, c.a*(c.w+c.b*c.p)) - c.a*c.b*c.p
		want := -c.a * c.w * math.Log1p(c.b*c.p/c.w)
		require.InDelta(t, want, got, 1e-9*math.Max(1, math.Abs(want)),
			"a=%g b=%g p=%g w=%g", c.a, c.b, c.p, c.w)
	}
}

func TestKLDivNonNegative(t *testing.T) {
	cases := [][2]float64{
		{1.0, 1.0}, {0.5, 2.0}, {2.0, 0.5}, {1e-9, 3.0}, {3.0, 1e-9},
	}
	for _, c := range cases {
		require.GreaterOrEqual(t, klDiv(c[0], c[1]), 0.0, "klDiv(%g, %g)", c[0], c[1])
	}
}

func TestSoftmax(t *testing.T) {
	dst := make([]float64, 4)

	softmax(dst, []float64{0, 0, 0, 0})
	for _, v := range dst {
		require.InDelta(t, 0.25, v, 1e-15)
	}

	// Large entries must not overflow.
	softmax(dst, []float64{1000, 1000, 999, -1000})
	require.InDelta(t, 1.0, floats.Sum(dst), 1e-12)
	for _, v := range dst {
		require.False(t, math.IsNaN(v))
		require.False(t, math.IsInf(v, 0))
	}
	require.Greater(t, dst[0], dst[2])
	require.InDelta(t, 0.0, dst[3], 1e-15)
}

func TestNanSlice(t *testing.T) {
	s := nanSlice(3)
	require.Len(t, s, 3)
	for _, v := range s {
		require.True(t, math.IsNaN(v))
	}
}

func TestErrorFormat(t *testing.T) {
	err := newErrorMsg("Solve", "bad input")
	require.EqualError(t, err, "chancap: Solve failed: bad input")
}
