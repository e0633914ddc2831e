package reduce

import (
	"testing"
)

func TestEffectiveWorkers(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		threads  int
		expected int
	}{
		{name: "empty range", n: 0, threads: 4, expected: 0},
		{name: "fewer threads than outputs", n: 100, threads: 8, expected: 8},
		{name: "threads equal outputs", n: 5, threads: 5, expected: 5},
		{name: "threads capped at outputs", n: 5, threads: 10, expected: 5},
		{name: "zero threads forced to one", n: 7, threads: 0, expected: 1},
		{name: "negative threads forced to one", n: 7, threads: -3, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveWorkers(tt.n, tt.threads)
			if got != tt.expected {
				t.Errorf("EffectiveWorkers(%d, %d) = %d, want %d", tt.n, tt.threads, got, tt.expected)
			}
		})
	}
}

func TestPlan_Invariants(t *testing.T) {
	for n := 1; n <= 64; n++ {
		for threads := 1; threads <= n; threads++ {
			parts := Plan(n, threads)
			if len(parts) != threads {
				t.Fatalf("Plan(%d, %d) returned %d partitions", n, threads, len(parts))
			}

			next := 0
			minLen, maxLen := n+1, -1
			for w, p := range parts {
				if p.Worker != w {
					t.Fatalf("Plan(%d, %d)[%d].Worker = %d", n, threads, w, p.Worker)
				}
				if p.Start != next {
					t.Fatalf("Plan(%d, %d)[%d] starts at %d, want %d", n, threads, w, p.Start, next)
				}
				if p.Len() < 1 {
					t.Fatalf("Plan(%d, %d)[%d] is empty", n, threads, w)
				}
				minLen = min(minLen, p.Len())
				maxLen = max(maxLen, p.Len())
				next = p.End
			}
			if next != n {
				t.Fatalf("Plan(%d, %d) covers [0,%d), want [0,%d)", n, threads, next, n)
			}
			if maxLen-minLen > 1 {
				t.Fatalf("Plan(%d, %d) sizes range %d..%d", n, threads, minLen, maxLen)
			}
		}
	}
}

func TestPlan_RemainderGoesToLeadingWorkers(t *testing.T) {
	parts := Plan(10, 4)
	want := []Partition{
		{Worker: 0, Start: 0, End: 3},
		{Worker: 1, Start: 3, End: 6},
		{Worker: 2, Start: 6, End: 8},
		{Worker: 3, Start: 8, End: 10},
	}
	if len(parts) != len(want) {
		t.Fatalf("got %d partitions, want %d", len(parts), len(want))
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("partition %d = %+v, want %+v", i, parts[i], want[i])
		}
	}
}

func TestPlan_Boundaries(t *testing.T) {
	t.Run("single worker covers everything", func(t *testing.T) {
		parts := Plan(9, 1)
		if len(parts) != 1 || parts[0] != (Partition{Worker: 0, Start: 0, End: 9}) {
			t.Errorf("Plan(9, 1) = %+v", parts)
		}
	})

	t.Run("one element per worker when threads equal n", func(t *testing.T) {
		for _, p := range Plan(6, 6) {
			if p.Len() != 1 || p.Start != p.Worker {
				t.Errorf("partition %+v is not a single element at its worker id", p)
			}
		}
	})

	t.Run("excess threads are capped", func(t *testing.T) {
		parts := Plan(5, 10)
		if len(parts) != 5 {
			t.Fatalf("Plan(5, 10) returned %d partitions, want 5", len(parts))
		}
		for _, p := range parts {
			if p.Len() != 1 {
				t.Errorf("partition %+v has %d elements, want 1", p, p.Len())
			}
		}
	})

	t.Run("empty range yields no partitions", func(t *testing.T) {
		if parts := Plan(0, 4); len(parts) != 0 {
			t.Errorf("Plan(0, 4) = %+v, want none", parts)
		}
	})
}
