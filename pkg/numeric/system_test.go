package numeric

import (
	"math/cmplx"
	"testing"
)

func approx(t *testing.T, got, want complex128, tag string) {
	t.Helper()
	if cmplx.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", tag, got, want)
	}
}

func TestSolveDiagonal(t *testing.T) {
	sys, err := NewSystem(2)
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Destroy()

	sys.AddElement(1, 1, 2)
	sys.AddElement(2, 2, complex(0, 4))
	sys.AddRHS(1, 6)
	sys.AddRHS(2, complex(0, 8))
	if err := sys.Solve(); err != nil {
		t.Fatal(err)
	}
	approx(t, sys.Solution(1), 3, "x1")
	approx(t, sys.Solution(2), 2, "x2")
}

// Clearing and restamping after a factorization must keep working; the
// frequency sweep solves the same system once per point.
func TestClearAndRestamp(t *testing.T) {
	sys, err := NewSystem(2)
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Destroy()

	for k := 1; k <= 3; k++ {
		g := float64(k)
		sys.Clear()
		sys.AddElement(1, 1, complex(2*g, 0))
		sys.AddElement(1, 2, complex(-g, 0))
		sys.AddElement(2, 1, complex(-g, 0))
		sys.AddElement(2, 2, complex(2*g, g))
		sys.AddRHS(1, complex(g, 0))
		if err := sys.Solve(); err != nil {
			t.Fatalf("pass %d: %v", k, err)
		}

		// [2g -g; -g 2g+jg] [x1 x2] = [g 0]
		det := complex(2*g, 0)*complex(2*g, g) - complex(g*g, 0)
		x1 := complex(g, 0) * complex(2*g, g) / det
		x2 := complex(g*g, 0) / det
		approx(t, sys.Solution(1), x1, "x1")
		approx(t, sys.Solution(2), x2, "x2")
	}
}

func TestIndexBounds(t *testing.T) {
	sys, err := NewSystem(2)
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Destroy()

	if err := sys.AddElement(0, 1, 1); err == nil {
		t.Error("expected error for row 0")
	}
	if err := sys.AddElement(1, 3, 1); err == nil {
		t.Error("expected error for column past size")
	}
	if err := sys.AddRHS(3, 1); err == nil {
		t.Error("expected error for rhs past size")
	}
	if sys.Solution(3) != 0 {
		t.Error("out-of-range solution should read as zero")
	}
}
