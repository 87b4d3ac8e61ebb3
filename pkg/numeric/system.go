// Package numeric wraps the sparse solver behind a small complex linear
// system used by the frequency sweep. Indices are 1-based, matching the
// solver's convention.
package numeric

import (
	"fmt"

	"github.com/edp1096/sparse"
)

type System struct {
	Size     int
	matrix   *sparse.Matrix
	elems    [][]*sparse.Element
	rhs      []float64
	rhsImag  []float64
	solution []float64
	config   *sparse.Configuration
}

// NewSystem allocates a complex system of the given order. All element
// positions are registered up front and their pointers cached, so the
// matrix can be cleared and restamped after factorization; the solver
// forbids element creation once it has reordered the matrix.
func NewSystem(size int) (*System, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("numeric: creating sparse matrix: %v", err)
	}

	elems := make([][]*sparse.Element, size+1)
	for i := 1; i <= size; i++ {
		elems[i] = make([]*sparse.Element, size+1)
		for j := 1; j <= size; j++ {
			e := mat.GetElement(int64(i), int64(j))
			if e == nil {
				mat.Destroy()
				return nil, fmt.Errorf("numeric: registering element (%d,%d)", i, j)
			}
			elems[i][j] = e
		}
	}

	return &System{
		Size:     size,
		matrix:   mat,
		elems:    elems,
		rhs:      make([]float64, 2*(size+1)),
		rhsImag:  make([]float64, 1),
		solution: make([]float64, 2*(size+1)),
		config:   config,
	}, nil
}

// AddElement accumulates a complex value at row i, column j.
func (sy *System) AddElement(i, j int, v complex128) error {
	if i <= 0 || j <= 0 || i > sy.Size || j > sy.Size {
		return fmt.Errorf("numeric: element index out of bounds (i=%d, j=%d, size=%d)", i, j, sy.Size)
	}
	e := sy.elems[i][j]
	e.Real += real(v)
	e.Imag += imag(v)
	return nil
}

// AddRHS accumulates a complex value into the right-hand side at row i.
func (sy *System) AddRHS(i int, v complex128) error {
	if i <= 0 || i > sy.Size {
		return fmt.Errorf("numeric: rhs index out of bounds (i=%d, size=%d)", i, sy.Size)
	}
	sy.rhs[2*i] += real(v)
	sy.rhs[2*i+1] += imag(v)
	return nil
}

// Clear zeroes the matrix and the right-hand side for the next frequency
// point while keeping the allocated sparsity pattern.
func (sy *System) Clear() {
	sy.matrix.Clear()
	for i := range sy.rhs {
		sy.rhs[i] = 0
	}
}

// Solve factors the matrix and solves for the current right-hand side.
func (sy *System) Solve() error {
	if err := sy.matrix.Factor(); err != nil {
		return fmt.Errorf("numeric: factorization failed: %v", err)
	}
	sol, _, err := sy.matrix.SolveComplex(sy.rhs, sy.rhsImag)
	if err != nil {
		return fmt.Errorf("numeric: solve failed: %v", err)
	}
	sy.solution = sol
	return nil
}

// Solution returns the complex solution at row i.
func (sy *System) Solution(i int) complex128 {
	if i <= 0 || i > sy.Size {
		return 0
	}
	return complex(sy.solution[i], sy.solution[i+sy.Size])
}

func (sy *System) Destroy() {
	if sy.matrix != nil {
		sy.matrix.Destroy()
	}
}
