// Package datagen fills source matrices with reproducible pseudo-random data.
package datagen

import (
	"encoding/binary"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/IlyaSylkin/OS-2-lab/internal/reduce"
)

// MaxValue is the exclusive upper bound of generated values. Values are whole
// numbers in [0, MaxValue).
const MaxValue = 100

// Generator produces the contents of source matrices. Each row draws from its
// own source seeded by hashing (seed, row), so rows can be filled in any
// order or in parallel and still come out the same for a given seed.
type Generator struct {
	seed    uint64
	workers int
}

// New returns a generator for seed. A zero seed is replaced with one derived
// from the current time; Seed reports the value actually used.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{seed: seed, workers: runtime.GOMAXPROCS(0)}
}

// Seed returns the seed in use.
func (g *Generator) Seed() uint64 { return g.seed }

// RowSeed returns the seed for row k.
func (g *Generator) RowSeed(k int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], g.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(k))
	return murmur3.Sum64(buf[:])
}

// Fill overwrites every row of m.
func (g *Generator) Fill(m *reduce.Matrix) {
	rows := m.Rows()
	if rows == 0 || m.Cols() == 0 {
		return
	}

	workers := min(g.workers, rows)
	if workers <= 1 {
		for k := 0; k < rows; k++ {
			g.FillRow(m.Row(k), k)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for _, p := range reduce.Plan(rows, workers) {
		go func(p reduce.Partition) {
			defer wg.Done()
			for k := p.Start; k < p.End; k++ {
				g.FillRow(m.Row(k), k)
			}
		}(p)
	}
	wg.Wait()
}

// FillRow fills row, treating it as row k of the matrix.
func (g *Generator) FillRow(row []float64, k int) {
	dist := distuv.Uniform{
		Min: 0,
		Max: MaxValue,
		Src: rand.NewSource(g.RowSeed(k)),
	}
	for i := range row {
		row[i] = math.Floor(dist.Rand())
	}
}
