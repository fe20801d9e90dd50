package nmf

import "gonum.org/v1/gonum/mat"

// Codec is the bijection between a k×s coefficient matrix and the flat
// particle vector of length k·s. The convention is column-major:
//
//	flat index = col*Rows + row
//
// The same codec instance is used for initializing particles, evaluating
// cost, and reshaping the final answer, so the convention cannot drift.
type Codec struct {
	Rows int // k, columns of W
	Cols int // s, columns of X
}

// Len returns the particle dimensionality k·s.
func (c Codec) Len() int { return c.Rows * c.Cols }

// Encode flattens m into dst, which must have length Len().
func (c Codec) Encode(m mat.Matrix, dst []float64) {
	for j := 0; j < c.Cols; j++ {
		for i := 0; i < c.Rows; i++ {
			dst[j*c.Rows+i] = m.At(i, j)
		}
	}
}

// Decode unflattens flat into dst, which must be Rows×Cols.
func (c Codec) Decode(flat []float64, dst *mat.Dense) {
	for j := 0; j < c.Cols; j++ {
		for i := 0; i < c.Rows; i++ {
			dst.Set(i, j, flat[j*c.Rows+i])
		}
	}
}

// DecodeFloored unflattens flat into dst, raising entries below floor up to
// floor. This is the evaluation-side clamp; it shares its bound with the
// position projection applied by the optimizer.
func (c Codec) DecodeFloored(flat []float64, dst *mat.Dense, floor float64) {
	for j := 0; j < c.Cols; j++ {
		for i := 0; i < c.Rows; i++ {
			v := flat[j*c.Rows+i]
			if v < floor {
				v = floor
			}
			dst.Set(i, j, v)
		}
	}
}

// Bounds holds per-dimension box bounds for the particle vector.
type Bounds struct {
	Lower []float64
	Upper []float64
}

// NewUniformBounds creates bounds with the same [lo, hi] range in every
// dimension, matching the solver's scalar lower/upper bound configuration.
func NewUniformBounds(dim int, lo, hi float64) *Bounds {
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := 0; i < dim; i++ {
		lower[i] = lo
		upper[i] = hi
	}
	return &Bounds{Lower: lower, Upper: upper}
}
