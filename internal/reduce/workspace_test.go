package reduce

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace(t *testing.T) {
	ws, err := NewWorkspace(3, 4, 0)
	require.NoError(t, err)
	defer ws.Release()

	assert.Equal(t, 3, ws.Source.Rows())
	assert.Equal(t, 4, ws.Source.Cols())
	assert.Len(t, ws.Sequential, 4)
	assert.Len(t, ws.Parallel, 4)
}

func TestNewWorkspace_MemoryLimit(t *testing.T) {
	// 2x10 source + 2x10 results = 40 float64 = 320 bytes.
	need, err := WorkspaceBytes(2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(320), need)

	_, err = NewWorkspace(2, 10, 319)
	assert.ErrorIs(t, err, ErrAllocation)

	ws, err := NewWorkspace(2, 10, 320)
	require.NoError(t, err)
	ws.Release()
}

func TestNewWorkspace_Overflow(t *testing.T) {
	_, err := NewWorkspace(math.MaxInt/2, 4, 0)
	assert.True(t, errors.Is(err, ErrAllocation), "got %v", err)
}

func TestWorkspace_ReleaseTwice(t *testing.T) {
	ws, err := NewWorkspace(1, 1, 0)
	require.NoError(t, err)
	ws.Release()
	ws.Release()
	assert.Nil(t, ws.Source)

	var nilWS *Workspace
	nilWS.Release()
}

func TestWorkspace_ResetParallel(t *testing.T) {
	ws, err := NewWorkspace(1, 3, 0)
	require.NoError(t, err)
	copy(ws.Parallel, []float64{1, 2, 3})
	ws.ResetParallel()
	assert.Equal(t, []float64{0, 0, 0}, ws.Parallel)
}

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, []float64{3, 4}, m.Row(1))
	assert.Equal(t, 6.0, m.At(2, 1))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())

	_, err = MatrixFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrShape)
}
