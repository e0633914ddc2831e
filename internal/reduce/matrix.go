// Package reduce implements the partitioned column reduction at the heart of
// sumbench: K source rows of length N are summed element-wise into a single
// result of length N, either on the calling goroutine or split across a fixed
// set of workers that each own a contiguous slice of the output.
package reduce

import (
	"errors"
	"fmt"
	"math"
)

// ErrAllocation is returned when a source matrix or result buffer cannot be
// allocated, either because the requested size overflows or because it
// exceeds the configured memory limit.
var ErrAllocation = errors.New("allocation failed")

// ErrShape is returned when buffers handed to the executor disagree on size.
var ErrShape = errors.New("shape mismatch")

const float64Size = 8

// Matrix is a K×N grid of float64 values stored row-major in one contiguous
// buffer. Rows are exposed as views into that buffer.
type Matrix struct {
	rows int
	cols int
	data []float64
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	n, err := elementCount(rows, cols)
	if err != nil {
		return nil, err
	}
	data, err := allocFloats(n)
	if err != nil {
		return nil, fmt.Errorf("matrix %dx%d: %w", rows, cols, err)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// MatrixFromRows copies rows into a new matrix. All rows must have the same
// length.
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}
	cols := len(rows[0])
	m, err := NewMatrix(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for k, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", k, len(row), cols, ErrShape)
		}
		copy(m.Row(k), row)
	}
	return m, nil
}

// Rows returns K.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns N.
func (m *Matrix) Cols() int { return m.cols }

// Len returns K×N.
func (m *Matrix) Len() int { return len(m.data) }

// Row returns row k as a slice sharing the matrix storage.
func (m *Matrix) Row(k int) []float64 {
	return m.data[k*m.cols : (k+1)*m.cols : (k+1)*m.cols]
}

// At returns the value at row k, column i.
func (m *Matrix) At(k, i int) float64 {
	return m.data[k*m.cols+i]
}

// Data returns the backing buffer.
func (m *Matrix) Data() []float64 { return m.data }

// SizeBytes returns the number of bytes needed for a rows×cols float64 buffer,
// or an error if the size does not fit in an int.
func SizeBytes(rows, cols int) (int64, error) {
	n, err := elementCount(rows, cols)
	if err != nil {
		return 0, err
	}
	if int64(n) > math.MaxInt64/float64Size {
		return 0, fmt.Errorf("%d elements: %w", n, ErrAllocation)
	}
	return int64(n) * float64Size, nil
}

func elementCount(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, fmt.Errorf("negative dimensions %dx%d: %w", rows, cols, ErrShape)
	}
	if rows != 0 && cols > math.MaxInt/rows {
		return 0, fmt.Errorf("dimensions %dx%d overflow: %w", rows, cols, ErrAllocation)
	}
	return rows * cols, nil
}

// allocFloats converts the runtime's recoverable allocation panics
// ("makeslice: len out of range") into ErrAllocation.
func allocFloats(n int) (buf []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("%d float64 values: %v: %w", n, r, ErrAllocation)
		}
	}()
	return make([]float64, n), nil
}
