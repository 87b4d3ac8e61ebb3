package twoport

import (
	"testing"

	"github.com/edp1096/symnet/pkg/expr"
)

func numMatrix(kind MatrixKind, m11, m12, m21, m22 int64) Matrix {
	return NewMatrix(kind, expr.N(m11), expr.N(m12), expr.N(m21), expr.N(m22))
}

func TestConversionRoundTrip(t *testing.T) {
	z := numMatrix(KindZ, 3, 1, 1, 2)
	for _, kind := range []MatrixKind{KindA, KindB, KindG, KindH, KindY} {
		conv := z.Convert(kind)
		if conv.Degenerate() {
			t.Fatalf("Z -> %s marked degenerate", kind)
		}
		back := conv.Convert(KindZ)
		if !back.Equal(z) {
			t.Errorf("Z -> %s -> Z = %s, want %s", kind, back, z)
		}
	}
}

func TestInverseDeterminant(t *testing.T) {
	a := numMatrix(KindA, 1, 2, 3, 4)
	b := a.Convert(KindB)
	if !b.Det().Equal(expr.F(-1, 2)) {
		t.Errorf("det(B) = %s, want -1/2", b.Det())
	}
}

func TestSeriesZConversionDegenerate(t *testing.T) {
	// A chain matrix of a lone series impedance has A21 = 0, so no Z
	// representation exists.
	a := NewMatrix(KindA, expr.N(1), expr.N(10), expr.N(0), expr.N(1))
	z := a.Convert(KindZ)
	if !z.Degenerate() {
		t.Error("series element A -> Z should be degenerate")
	}
	y := a.Convert(KindY)
	if y.Degenerate() {
		t.Error("series element A -> Y should not be degenerate")
	}
	if !y.M11().Equal(expr.F(1, 10)) {
		t.Errorf("Y11 = %s, want 1/10", y.M11())
	}
}

func TestSymbolicConversion(t *testing.T) {
	zs := expr.S("Z_1")
	a := NewMatrix(KindA, expr.N(1), zs, expr.N(0), expr.N(1))
	y := a.Convert(KindY)
	if !y.M12().Equal(expr.NegOf(expr.InvOf(zs))) {
		t.Errorf("Y12 = %s, want -1/Z_1", y.M12())
	}
}

func TestMulSameKindMismatch(t *testing.T) {
	a := numMatrix(KindA, 1, 0, 0, 1)
	b := numMatrix(KindB, 1, 0, 0, 1)
	if _, err := a.MulSame(b); err == nil {
		t.Error("multiplying A by B matrix should fail")
	}
	if _, err := a.AddSame(b); err == nil {
		t.Error("adding B to A matrix should fail")
	}
}

func TestDegeneracyPropagates(t *testing.T) {
	series := NewMatrix(KindA, expr.N(1), expr.N(10), expr.N(0), expr.N(1))
	z := series.Convert(KindZ)
	sum, err := z.AddSame(numMatrix(KindZ, 1, 0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !sum.Degenerate() {
		t.Error("degeneracy lost through AddSame")
	}
	prod, err := z.MulSame(numMatrix(KindZ, 1, 0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !prod.Degenerate() {
		t.Error("degeneracy lost through MulSame")
	}
}
