package matio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.csv")

	src := mat.NewDense(2, 3, []float64{
		1, 2.5, -3,
		0, 1e-9, 42,
	})

	require.NoError(t, WriteMatrix(path, src))

	got, err := ReadMatrix(path)
	require.NoError(t, err)

	assert.True(t, mat.Equal(src, got), "round-tripped matrix differs")
}

func TestReadMatrixRagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2,3\n4,5\n"), 0644))

	_, err := ReadMatrix(path)
	assert.Error(t, err, "ragged rows must be rejected")
}

func TestReadMatrixBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,oops\n"), 0644))

	_, err := ReadMatrix(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2, column 2")
}

func TestReadMatrixEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ReadMatrix(path)
	assert.Error(t, err)
}

func TestReadMatrixMissingFile(t *testing.T) {
	_, err := ReadMatrix(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
