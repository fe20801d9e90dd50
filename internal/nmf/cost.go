package nmf

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CostFunc evaluates a flattened candidate H and returns the squared
// Frobenius residual ||X - W*H||_F^2. Always >= 0; lower is better.
type CostFunc func(flat []float64) float64

// NewResidualCost builds the objective for a fixed (W, X) pair. Candidate
// entries below floor are raised to floor before the residual is computed.
//
// The returned closure reuses its decode and residual buffers across calls,
// so it is not safe for concurrent use.
func NewResidualCost(W, X mat.Matrix, codec Codec, floor float64) CostFunc {
	g, _ := W.Dims()
	_, s := X.Dims()

	H := mat.NewDense(codec.Rows, codec.Cols, nil)
	R := mat.NewDense(g, s, nil)

	return func(flat []float64) float64 {
		codec.DecodeFloored(flat, H, floor)
		R.Mul(W, H)
		R.Sub(X, R)
		data := R.RawMatrix().Data
		return floats.Dot(data, data)
	}
}
