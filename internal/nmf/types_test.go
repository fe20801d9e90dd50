package nmf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{name: "column vector", rows: 3, cols: 1},
		{name: "row vector", rows: 1, cols: 4},
		{name: "rectangular", rows: 2, cols: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := Codec{Rows: tt.rows, Cols: tt.cols}
			require.Equal(t, tt.rows*tt.cols, codec.Len())

			src := mat.NewDense(tt.rows, tt.cols, nil)
			for i := 0; i < tt.rows; i++ {
				for j := 0; j < tt.cols; j++ {
					src.Set(i, j, float64(i*10+j))
				}
			}

			flat := make([]float64, codec.Len())
			codec.Encode(src, flat)

			dst := mat.NewDense(tt.rows, tt.cols, nil)
			codec.Decode(flat, dst)

			assert.True(t, mat.Equal(src, dst), "decode(encode(m)) != m")
		})
	}
}

func TestCodecColumnMajorConvention(t *testing.T) {
	// flat index = col*Rows + row
	codec := Codec{Rows: 2, Cols: 3}
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	flat := make([]float64, codec.Len())
	codec.Encode(m, flat)

	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, flat)
}

func TestCodecDecodeFloored(t *testing.T) {
	codec := Codec{Rows: 2, Cols: 1}
	dst := mat.NewDense(2, 1, nil)

	codec.DecodeFloored([]float64{-0.5, 3}, dst, 0)
	assert.Equal(t, 0.0, dst.At(0, 0), "entry below floor must be raised")
	assert.Equal(t, 3.0, dst.At(1, 0), "entry above floor must pass through")

	// Flooring is idempotent.
	flat := make([]float64, codec.Len())
	codec.Encode(dst, flat)
	codec.DecodeFloored(flat, dst, 0)
	assert.Equal(t, 0.0, dst.At(0, 0))
	assert.Equal(t, 3.0, dst.At(1, 0))
}

func TestNewUniformBounds(t *testing.T) {
	b := NewUniformBounds(4, -1, 2)

	require.Len(t, b.Lower, 4)
	require.Len(t, b.Upper, 4)
	for i := 0; i < 4; i++ {
		assert.Equal(t, -1.0, b.Lower[i])
		assert.Equal(t, 2.0, b.Upper[i])
	}
}
