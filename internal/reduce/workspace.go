package reduce

import (
	"fmt"
)

// Workspace owns every buffer a single (K, N) benchmark iteration needs: the
// shared source matrix, the baseline result and the parallel result. It is
// created once per problem size and released when the iteration ends:
//
//	ws, err := reduce.NewWorkspace(k, n, limit)
//	if err != nil {
//		return err
//	}
//	defer ws.Release()
type Workspace struct {
	Source     *Matrix
	Sequential []float64
	Parallel   []float64
}

// WorkspaceBytes returns the total bytes NewWorkspace would allocate.
func WorkspaceBytes(k, n int) (int64, error) {
	src, err := SizeBytes(k, n)
	if err != nil {
		return 0, err
	}
	res, err := SizeBytes(2, n)
	if err != nil {
		return 0, err
	}
	return src + res, nil
}

// NewWorkspace allocates the buffers for a K×N run. A positive limitBytes
// caps the total allocation; exceeding it returns ErrAllocation without
// touching the heap. Buffers already allocated are dropped before an error
// is returned.
func NewWorkspace(k, n int, limitBytes int64) (*Workspace, error) {
	need, err := WorkspaceBytes(k, n)
	if err != nil {
		return nil, err
	}
	if limitBytes > 0 && need > limitBytes {
		return nil, fmt.Errorf("workspace %dx%d needs %d bytes, limit is %d: %w", k, n, need, limitBytes, ErrAllocation)
	}

	ws := &Workspace{}
	if ws.Source, err = NewMatrix(k, n); err != nil {
		return nil, err
	}
	if ws.Sequential, err = allocFloats(n); err != nil {
		ws.Release()
		return nil, fmt.Errorf("sequential result: %w", err)
	}
	if ws.Parallel, err = allocFloats(n); err != nil {
		ws.Release()
		return nil, fmt.Errorf("parallel result: %w", err)
	}
	return ws, nil
}

// ResetParallel zeroes the parallel result so a stale value can never pass
// verification.
func (w *Workspace) ResetParallel() {
	clear(w.Parallel)
}

// Release drops every buffer so the memory can be reclaimed before the next
// problem size is allocated. It is safe to call more than once.
func (w *Workspace) Release() {
	if w == nil {
		return
	}
	w.Source = nil
	w.Sequential = nil
	w.Parallel = nil
}
