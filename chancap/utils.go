package chancap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Error describes a chancap usage error. Solver outcomes are reported
// in-band through Solution.Status, never as an Error.
type Error struct {
	Op  string // Operation that failed (e.g., "Solve", "ReadModel")
	Msg string // Additional context
}

func (e *Error) Error() string {
	return fmt.Sprintf("chancap: %s failed: %s", e.Op, e.Msg)
}

func newErrorMsg(op, msg string) error {
	return &Error{Op: op, Msg: msg}
}

// klDiv is the Kullback-Leibler divergence term x*ln(x/y) - x + y,
// jointly convex over positive x, y. The rate of a channel satisfies
//
//	-R = klDiv(alpha*W, alpha*(W + beta*P)) - alpha*beta*P
//
// which is the convex form the objective is built from.
func klDiv(x, y float64) float64 {
	return x*math.Log(x/y) - x + y
}

// softmax writes exp(z_i)/sum_j exp(z_j) into dst, shifting by the
// log-sum-exp so that large entries cannot overflow.
func softmax(dst, z []float64) {
	lse := floats.LogSumExp(z)
	for i, zi := range z {
		dst[i] = math.Exp(zi - lse)
	}
}

// nanSlice returns a slice of n NaN values, used on the sentinel
// failure paths.
func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
