package reduce

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the largest absolute difference per index that still
// counts as a match.
const DefaultTolerance = 0.001

// MismatchError reports the first index where two results disagree.
type MismatchError struct {
	Index     int
	Want      float64
	Got       float64
	Tolerance float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("result mismatch at index %d: want %.6f, got %.6f (|diff| %.6g > %g)",
		e.Index, e.Want, e.Got, math.Abs(e.Want-e.Got), e.Tolerance)
}

// Verify compares want and got element-wise and returns a *MismatchError for
// the first index whose absolute difference exceeds tol. A non-positive tol
// selects DefaultTolerance.
func Verify(want, got []float64, tol float64) error {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if len(want) != len(got) {
		return fmt.Errorf("comparing %d values against %d: %w", len(want), len(got), ErrShape)
	}
	if len(want) == 0 {
		return nil
	}

	// The L1 distance bounds every per-index difference and propagates NaN,
	// so a small total proves a match without the per-index scan.
	if d := floats.Distance(want, got, 1); d <= tol {
		return nil
	}

	for i := range want {
		diff := math.Abs(want[i] - got[i])
		if diff > tol || math.IsNaN(diff) {
			return &MismatchError{Index: i, Want: want[i], Got: got[i], Tolerance: tol}
		}
	}
	return nil
}
