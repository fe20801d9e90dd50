// Package matio reads and writes dense matrices as headerless CSV, the
// exchange format the CLI uses for W, X and the fitted H.
package matio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// ReadMatrix loads a rectangular matrix from a CSV file. Every record must
// have the same number of fields and every field must parse as a float.
func ReadMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open matrix file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("matrix file %s is empty", path)
	}

	rows := len(records)
	cols := len(records[0])
	data := make([]float64, 0, rows*cols)

	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value at row %d, column %d of %s: %w", i+1, j+1, path, err)
			}
			data = append(data, v)
		}
	}

	return mat.NewDense(rows, cols, data), nil
}

// WriteMatrix saves m to path as headerless CSV, one row per record.
func WriteMatrix(path string, m mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create matrix file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	rows, cols := m.Dims()
	record := make([]string, cols)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush matrix file: %w", err)
	}
	return nil
}
