package reduce

import (
	"errors"
	"math"
	"testing"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		want      []float64
		got       []float64
		tol       float64
		wantIndex int // -1 for no mismatch
		wantShape bool
	}{
		{name: "identical", want: []float64{1, 2, 3}, got: []float64{1, 2, 3}, wantIndex: -1},
		{name: "empty", want: []float64{}, got: []float64{}, wantIndex: -1},
		{name: "within tolerance", want: []float64{1, 2}, got: []float64{1.0005, 1.9995}, wantIndex: -1},
		{name: "first index beyond tolerance", want: []float64{1, 2, 3}, got: []float64{1, 2.5, 3.5}, wantIndex: 1},
		{name: "custom tolerance", want: []float64{1, 2}, got: []float64{1, 2.4}, tol: 0.5, wantIndex: -1},
		{name: "NaN never matches", want: []float64{1, 2}, got: []float64{1, math.NaN()}, wantIndex: 1},
		{name: "length mismatch", want: []float64{1, 2}, got: []float64{1}, wantShape: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.want, tt.got, tt.tol)

			if tt.wantShape {
				if !errors.Is(err, ErrShape) {
					t.Fatalf("Verify() error = %v, want ErrShape", err)
				}
				return
			}

			if tt.wantIndex < 0 {
				if err != nil {
					t.Fatalf("Verify() error = %v, want nil", err)
				}
				return
			}

			var mm *MismatchError
			if !errors.As(err, &mm) {
				t.Fatalf("Verify() error = %v, want *MismatchError", err)
			}
			if mm.Index != tt.wantIndex {
				t.Errorf("MismatchError.Index = %d, want %d", mm.Index, tt.wantIndex)
			}
		})
	}
}

func TestVerify_DefaultTolerance(t *testing.T) {
	err := Verify([]float64{10}, []float64{10.002}, 0)
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("Verify() error = %v, want *MismatchError", err)
	}
	if mm.Tolerance != DefaultTolerance {
		t.Errorf("Tolerance = %g, want %g", mm.Tolerance, DefaultTolerance)
	}
}
