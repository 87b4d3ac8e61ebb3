// Package twoport implements the algebra of linear two-port networks: six
// mutually convertible matrix representations, active models carrying an
// affine source vector, cascade and lattice combinators, and terminal
// reductions back to one-ports.
package twoport

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/expr"
)

// MatrixKind selects one of the six representations:
//
//	A: [V1; I1]  = A [V2; -I2]
//	B: [V2; -I2] = B [V1; I1]
//	G: [I1; V2]  = G [V1; I2]
//	H: [V1; I2]  = H [I1; V2]
//	Y: [I1; I2]  = Y [V1; V2]
//	Z: [V1; V2]  = Z [I1; I2]
type MatrixKind int

const (
	KindA MatrixKind = iota
	KindB
	KindG
	KindH
	KindY
	KindZ
)

func (k MatrixKind) String() string {
	switch k {
	case KindA:
		return "A"
	case KindB:
		return "B"
	case KindG:
		return "G"
	case KindH:
		return "H"
	case KindY:
		return "Y"
	case KindZ:
		return "Z"
	}
	return "?"
}

// Matrix is an immutable 2x2 matrix of symbolic entries tagged with its
// representation kind. Conversions that divided by a structurally zero
// entry mark the result degenerate; the entries are still produced, with
// the singular divisions left unresolved.
type Matrix struct {
	kind               MatrixKind
	m11, m12, m21, m22 expr.Expr
	degenerate         bool
}

func NewMatrix(kind MatrixKind, m11, m12, m21, m22 expr.Expr) Matrix {
	return Matrix{kind: kind, m11: m11, m12: m12, m21: m21, m22: m22}
}

func (m Matrix) Kind() MatrixKind { return m.kind }
func (m Matrix) Degenerate() bool { return m.degenerate }

func (m Matrix) M11() expr.Expr { return m.m11 }
func (m Matrix) M12() expr.Expr { return m.m12 }
func (m Matrix) M21() expr.Expr { return m.m21 }
func (m Matrix) M22() expr.Expr { return m.m22 }

// At returns the entry at row i, column j (0-based).
func (m Matrix) At(i, j int) expr.Expr {
	switch {
	case i == 0 && j == 0:
		return m.m11
	case i == 0 && j == 1:
		return m.m12
	case i == 1 && j == 0:
		return m.m21
	}
	return m.m22
}

func (m Matrix) Det() expr.Expr {
	return expr.SubOf(expr.MulOf(m.m11, m.m22), expr.MulOf(m.m12, m.m21))
}

func (m Matrix) Equal(o Matrix) bool {
	return m.kind == o.kind &&
		m.m11.Equal(o.m11) && m.m12.Equal(o.m12) &&
		m.m21.Equal(o.m21) && m.m22.Equal(o.m22)
}

func (m Matrix) String() string {
	return fmt.Sprintf("%s[%s, %s; %s, %s]", m.kind, m.m11, m.m12, m.m21, m.m22)
}

// MulSame multiplies two matrices of the same kind, as used by the cascade
// rule for chain matrices.
func (m Matrix) MulSame(o Matrix) (Matrix, error) {
	if m.kind != o.kind {
		return Matrix{}, fmt.Errorf("twoport: cannot multiply %s by %s matrix", m.kind, o.kind)
	}
	out := Matrix{
		kind:       m.kind,
		m11:        expr.AddOf(expr.MulOf(m.m11, o.m11), expr.MulOf(m.m12, o.m21)),
		m12:        expr.AddOf(expr.MulOf(m.m11, o.m12), expr.MulOf(m.m12, o.m22)),
		m21:        expr.AddOf(expr.MulOf(m.m21, o.m11), expr.MulOf(m.m22, o.m21)),
		m22:        expr.AddOf(expr.MulOf(m.m21, o.m12), expr.MulOf(m.m22, o.m22)),
		degenerate: m.degenerate || o.degenerate,
	}
	return out, nil
}

// AddSame adds two matrices of the same kind, as used by the parallel,
// series, and hybrid combination rules.
func (m Matrix) AddSame(o Matrix) (Matrix, error) {
	if m.kind != o.kind {
		return Matrix{}, fmt.Errorf("twoport: cannot add %s to %s matrix", m.kind, o.kind)
	}
	out := Matrix{
		kind:       m.kind,
		m11:        expr.AddOf(m.m11, o.m11),
		m12:        expr.AddOf(m.m12, o.m12),
		m21:        expr.AddOf(m.m21, o.m21),
		m22:        expr.AddOf(m.m22, o.m22),
		degenerate: m.degenerate || o.degenerate,
	}
	return out, nil
}

// inverse computes the matrix inverse and retags it, covering the paired
// relations B = inv(A), Z = inv(Y), H = inv(G).
func (m Matrix) inverse(kind MatrixKind) Matrix {
	det := m.Det()
	deg := m.degenerate || expr.IsZero(det)
	return Matrix{
		kind:       kind,
		m11:        expr.DivOf(m.m22, det),
		m12:        expr.NegOf(expr.DivOf(m.m12, det)),
		m21:        expr.NegOf(expr.DivOf(m.m21, det)),
		m22:        expr.DivOf(m.m11, det),
		degenerate: deg,
	}
}

// scaled builds a converted matrix whose entries all divide by div, marking
// the result degenerate when div is the zero expression.
func (m Matrix) scaled(kind MatrixKind, n11, n12, n21, n22, div expr.Expr) Matrix {
	return Matrix{
		kind:       kind,
		m11:        expr.DivOf(n11, div),
		m12:        expr.DivOf(n12, div),
		m21:        expr.DivOf(n21, div),
		m22:        expr.DivOf(n22, div),
		degenerate: m.degenerate || expr.IsZero(div),
	}
}

// Convert produces the matrix in another representation. Every non-identity
// conversion divides by an entry (or the determinant) of the source matrix;
// a zero divisor yields a degenerate result.
func (m Matrix) Convert(to MatrixKind) Matrix {
	if to == m.kind {
		return m
	}
	switch m.kind {
	case KindA:
		return m.fromA(to)
	case KindB:
		return m.fromB(to)
	case KindG:
		return m.fromG(to)
	case KindH:
		return m.fromH(to)
	case KindY:
		return m.fromY(to)
	case KindZ:
		return m.fromZ(to)
	}
	return m
}

func (m Matrix) fromA(to MatrixKind) Matrix {
	neg := expr.NegOf
	switch to {
	case KindB:
		return m.inverse(KindB)
	case KindH:
		return m.scaled(KindH, m.m12, m.Det(), expr.N(-1), m.m21, m.m22)
	case KindY:
		return m.scaled(KindY, m.m22, neg(m.Det()), expr.N(-1), m.m11, m.m12)
	case KindZ:
		return m.scaled(KindZ, m.m11, m.Det(), expr.N(1), m.m22, m.m21)
	case KindG:
		return m.fromA(KindH).inverse(KindG)
	}
	return m
}

func (m Matrix) fromB(to MatrixKind) Matrix {
	neg := expr.NegOf
	switch to {
	case KindA:
		return m.inverse(KindA)
	case KindG:
		return m.scaled(KindG, neg(m.m21), expr.N(-1), m.Det(), neg(m.m12), m.m22)
	case KindH:
		return m.scaled(KindH, neg(m.m12), expr.N(1), neg(m.Det()), neg(m.m21), m.m11)
	case KindY:
		return m.scaled(KindY, neg(m.m11), expr.N(1), m.Det(), neg(m.m22), m.m12)
	case KindZ:
		return m.scaled(KindZ, neg(m.m22), expr.N(-1), neg(m.Det()), neg(m.m11), m.m21)
	}
	return m
}

func (m Matrix) fromG(to MatrixKind) Matrix {
	neg := expr.NegOf
	switch to {
	case KindA:
		return m.scaled(KindA, expr.N(1), m.m22, m.m11, m.Det(), m.m21)
	case KindB:
		return m.scaled(KindB, neg(m.Det()), m.m22, m.m11, expr.N(-1), m.m12)
	case KindH:
		return m.inverse(KindH)
	case KindY, KindZ:
		return m.inverse(KindH).Convert(to)
	}
	return m
}

func (m Matrix) fromH(to MatrixKind) Matrix {
	neg := expr.NegOf
	switch to {
	case KindA:
		return m.scaled(KindA, neg(m.Det()), neg(m.m11), neg(m.m22), expr.N(-1), m.m21)
	case KindB:
		return m.scaled(KindB, expr.N(1), neg(m.m11), neg(m.m22), m.Det(), m.m12)
	case KindG:
		return m.inverse(KindG)
	case KindY:
		return m.scaled(KindY, expr.N(1), neg(m.m12), m.m21, m.Det(), m.m11)
	case KindZ:
		return m.scaled(KindZ, m.Det(), m.m12, neg(m.m21), expr.N(1), m.m22)
	}
	return m
}

func (m Matrix) fromY(to MatrixKind) Matrix {
	neg := expr.NegOf
	switch to {
	case KindA:
		return m.scaled(KindA, neg(m.m22), expr.N(-1), neg(m.Det()), neg(m.m11), m.m21)
	case KindB:
		return m.scaled(KindB, neg(m.m11), expr.N(1), m.Det(), neg(m.m22), m.m12)
	case KindH:
		return m.scaled(KindH, expr.N(1), neg(m.m12), m.m21, m.Det(), m.m11)
	case KindZ:
		return m.inverse(KindZ)
	case KindG:
		return m.fromY(KindH).inverse(KindG)
	}
	return m
}

func (m Matrix) fromZ(to MatrixKind) Matrix {
	neg := expr.NegOf
	switch to {
	case KindA:
		return m.scaled(KindA, m.m11, m.Det(), expr.N(1), m.m22, m.m21)
	case KindB:
		return m.scaled(KindB, m.m22, neg(m.Det()), expr.N(-1), m.m11, m.m12)
	case KindH:
		return m.scaled(KindH, m.Det(), m.m12, neg(m.m21), expr.N(1), m.m22)
	case KindY:
		return m.inverse(KindY)
	case KindG:
		return m.fromZ(KindH).inverse(KindG)
	}
	return m
}
