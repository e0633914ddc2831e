package datagen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

func TestGenerator_Reproducible(t *testing.T) {
	a, err := reduce.NewMatrix(9, 257)
	require.NoError(t, err)
	b, err := reduce.NewMatrix(9, 257)
	require.NoError(t, err)

	New(42).Fill(a)
	New(42).Fill(b)

	assert.Equal(t, a.Data(), b.Data())
}

func TestGenerator_SerialAndParallelAgree(t *testing.T) {
	m, err := reduce.NewMatrix(16, 64)
	require.NoError(t, err)

	g := New(7)
	g.workers = 4
	g.Fill(m)

	for k := 0; k < m.Rows(); k++ {
		row := make([]float64, m.Cols())
		g.FillRow(row, k)
		assert.Equal(t, row, m.Row(k), "row %d", k)
	}
}

func TestGenerator_ValueRange(t *testing.T) {
	m, err := reduce.NewMatrix(4, 1000)
	require.NoError(t, err)
	New(1).Fill(m)

	for i, v := range m.Data() {
		if v < 0 || v >= MaxValue || v != math.Trunc(v) {
			t.Fatalf("value %d = %v, want a whole number in [0, %d)", i, v, MaxValue)
		}
	}
}

func TestGenerator_RowsDiffer(t *testing.T) {
	g := New(3)
	assert.NotEqual(t, g.RowSeed(0), g.RowSeed(1))
	assert.NotEqual(t, New(3).RowSeed(0), New(4).RowSeed(0))
}

func TestGenerator_ZeroSeedIsReplaced(t *testing.T) {
	assert.NotZero(t, New(0).Seed())
	assert.Equal(t, uint64(11), New(11).Seed())
}
