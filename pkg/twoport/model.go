package twoport

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/expr"
	"github.com/edp1096/symnet/pkg/oneport"
)

// The error taxonomy is shared with the one-port algebra.
var (
	ErrUnsupportedShape        = oneport.ErrUnsupportedShape
	ErrIncompatibleCombination = oneport.ErrIncompatibleCombination
	ErrInvalidParameter        = oneport.ErrInvalidParameter
)

// TwoPort is an immutable active two-port: a native matrix plus the affine
// source vector referred to that representation. Every other matrix kind,
// entry, and source quantity is derived on demand through the conversion
// graph.
//
// Native source pairs: B-model (V2b, I2b), G-model (I1g, V2g), H-model
// (V1h, I2h), Y-model (I1y, I2y), Z-model (V1z, V2z).
type TwoPort struct {
	m      Matrix
	p1, p2 expr.Quantity
}

func newModel(kind MatrixKind, m Matrix, p1, p2 expr.Quantity) (*TwoPort, error) {
	if m.Kind() != kind {
		return nil, fmt.Errorf("%w: %s model needs a %s matrix, got %s", ErrUnsupportedShape, kind, kind, m.Kind())
	}
	return &TwoPort{m: m, p1: p1, p2: p2}, nil
}

// NewBModel builds a two-port from a B matrix and output-referred sources:
// [V2; -I2] = B [V1; I1] + [V2b; I2b].
func NewBModel(m Matrix, v2b, i2b expr.Quantity) (*TwoPort, error) {
	return newModel(KindB, m, v2b, i2b)
}

// NewGModel builds a two-port from a G matrix and sources (I1g, V2g).
func NewGModel(m Matrix, i1g, v2g expr.Quantity) (*TwoPort, error) {
	return newModel(KindG, m, i1g, v2g)
}

// NewHModel builds a two-port from an H matrix and sources (V1h, I2h).
func NewHModel(m Matrix, v1h, i2h expr.Quantity) (*TwoPort, error) {
	return newModel(KindH, m, v1h, i2h)
}

// NewYModel builds a two-port from a Y matrix and port source currents.
func NewYModel(m Matrix, i1y, i2y expr.Quantity) (*TwoPort, error) {
	return newModel(KindY, m, i1y, i2y)
}

// NewZModel builds a two-port from a Z matrix and port source voltages.
func NewZModel(m Matrix, v1z, v2z expr.Quantity) (*TwoPort, error) {
	return newModel(KindZ, m, v1z, v2z)
}

// NativeKind is the representation the two-port was constructed in.
func (tp *TwoPort) NativeKind() MatrixKind { return tp.m.Kind() }

// Degenerate reports whether the native representation was produced
// through a singular conversion or combination.
func (tp *TwoPort) Degenerate() bool { return tp.m.Degenerate() }

// Matrix returns the two-port matrix in the requested representation.
func (tp *TwoPort) Matrix(kind MatrixKind) Matrix { return tp.m.Convert(kind) }

func (tp *TwoPort) A() Matrix { return tp.Matrix(KindA) }
func (tp *TwoPort) B() Matrix { return tp.Matrix(KindB) }
func (tp *TwoPort) G() Matrix { return tp.Matrix(KindG) }
func (tp *TwoPort) H() Matrix { return tp.Matrix(KindH) }
func (tp *TwoPort) Y() Matrix { return tp.Matrix(KindY) }
func (tp *TwoPort) Z() Matrix { return tp.Matrix(KindZ) }

func (tp *TwoPort) A11() expr.Expr { return tp.A().M11() }
func (tp *TwoPort) A12() expr.Expr { return tp.A().M12() }
func (tp *TwoPort) A21() expr.Expr { return tp.A().M21() }
func (tp *TwoPort) A22() expr.Expr { return tp.A().M22() }

func (tp *TwoPort) B11() expr.Expr { return tp.B().M11() }
func (tp *TwoPort) B12() expr.Expr { return tp.B().M12() }
func (tp *TwoPort) B21() expr.Expr { return tp.B().M21() }
func (tp *TwoPort) B22() expr.Expr { return tp.B().M22() }

func (tp *TwoPort) G11() expr.Expr { return tp.G().M11() }
func (tp *TwoPort) G12() expr.Expr { return tp.G().M12() }
func (tp *TwoPort) G21() expr.Expr { return tp.G().M21() }
func (tp *TwoPort) G22() expr.Expr { return tp.G().M22() }

func (tp *TwoPort) H11() expr.Expr { return tp.H().M11() }
func (tp *TwoPort) H12() expr.Expr { return tp.H().M12() }
func (tp *TwoPort) H21() expr.Expr { return tp.H().M21() }
func (tp *TwoPort) H22() expr.Expr { return tp.H().M22() }

func (tp *TwoPort) Y11() expr.Expr { return tp.Y().M11() }
func (tp *TwoPort) Y12() expr.Expr { return tp.Y().M12() }
func (tp *TwoPort) Y21() expr.Expr { return tp.Y().M21() }
func (tp *TwoPort) Y22() expr.Expr { return tp.Y().M22() }

func (tp *TwoPort) Z11() expr.Expr { return tp.Z().M11() }
func (tp *TwoPort) Z12() expr.Expr { return tp.Z().M12() }
func (tp *TwoPort) Z21() expr.Expr { return tp.Z().M21() }
func (tp *TwoPort) Z22() expr.Expr { return tp.Z().M22() }

// V2b and I2b form the output-referred source pair of the B representation;
// they are the hub through which every other source pair converts.
func (tp *TwoPort) V2b() expr.Quantity {
	v, _ := tp.bSources()
	return v
}

func (tp *TwoPort) I2b() expr.Quantity {
	_, i := tp.bSources()
	return i
}

func (tp *TwoPort) bSources() (v2b, i2b expr.Quantity) {
	m := tp.m
	a, b := tp.p1.Expr, tp.p2.Expr
	switch m.Kind() {
	case KindB:
		return tp.p1, tp.p2
	case KindH:
		// V1h = -V2b/B11, I2h = -V2b*B21/B11 - I2b inverted in H terms.
		v := expr.NegOf(expr.DivOf(a, m.M12()))
		i := expr.SubOf(expr.NegOf(expr.DivOf(expr.MulOf(m.M22(), a), m.M12())), b)
		return derived(expr.KindVoltage, v, tp.p1), derived(expr.KindCurrent, i, tp.p1, tp.p2)
	case KindY:
		v := expr.NegOf(expr.DivOf(a, m.M12()))
		i := expr.SubOf(expr.DivOf(expr.MulOf(a, m.M22()), m.M12()), b)
		return derived(expr.KindVoltage, v, tp.p1), derived(expr.KindCurrent, i, tp.p1, tp.p2)
	case KindZ:
		i := expr.DivOf(a, m.M12())
		v := expr.SubOf(b, expr.DivOf(expr.MulOf(a, m.M22()), m.M12()))
		return derived(expr.KindVoltage, v, tp.p1, tp.p2), derived(expr.KindCurrent, i, tp.p1)
	case KindG:
		i := expr.DivOf(a, m.M12())
		v := expr.SubOf(b, expr.DivOf(expr.MulOf(m.M22(), a), m.M12()))
		return derived(expr.KindVoltage, v, tp.p1, tp.p2), derived(expr.KindCurrent, i, tp.p1)
	}
	return expr.Voltage(expr.N(0)), expr.Current(expr.N(0))
}

// derived builds a converted source quantity, keeping the domain
// assumptions shared by the quantities that actually contribute to it.
func derived(kind expr.Kind, e expr.Expr, srcs ...expr.Quantity) expr.Quantity {
	out := expr.Quantity{Expr: e, Kind: kind}
	first := true
	for _, s := range srcs {
		if s.IsZero() {
			continue
		}
		if first {
			out.DC, out.AC, out.Causal = s.DC, s.AC, s.Causal
			first = false
		} else {
			out.DC = out.DC && s.DC
			out.AC = out.AC && s.AC
			out.Causal = out.Causal && s.Causal
		}
	}
	return out
}

// V1h and I2h form the source pair of the H representation.
func (tp *TwoPort) V1h() expr.Quantity {
	if tp.m.Kind() == KindH {
		return tp.p1
	}
	b := tp.B()
	v2b := tp.V2b()
	return derived(expr.KindVoltage, expr.NegOf(expr.DivOf(v2b.Expr, b.M11())), v2b)
}

func (tp *TwoPort) I2h() expr.Quantity {
	if tp.m.Kind() == KindH {
		return tp.p2
	}
	b := tp.B()
	v2b, i2b := tp.bSources()
	e := expr.SubOf(
		expr.NegOf(expr.DivOf(expr.MulOf(v2b.Expr, b.M21()), b.M11())),
		i2b.Expr,
	)
	return derived(expr.KindCurrent, e, v2b, i2b)
}

// I1y and I2y form the source pair of the Y representation.
func (tp *TwoPort) I1y() expr.Quantity {
	if tp.m.Kind() == KindY {
		return tp.p1
	}
	b := tp.B()
	v2b := tp.V2b()
	return derived(expr.KindCurrent, expr.NegOf(expr.DivOf(v2b.Expr, b.M12())), v2b)
}

func (tp *TwoPort) I2y() expr.Quantity {
	if tp.m.Kind() == KindY {
		return tp.p2
	}
	b := tp.B()
	v2b, i2b := tp.bSources()
	e := expr.SubOf(
		expr.DivOf(expr.MulOf(v2b.Expr, b.M22()), b.M12()),
		i2b.Expr,
	)
	return derived(expr.KindCurrent, e, v2b, i2b)
}

// V1z and V2z form the source pair of the Z representation.
func (tp *TwoPort) V1z() expr.Quantity {
	if tp.m.Kind() == KindZ {
		return tp.p1
	}
	b := tp.B()
	i2b := tp.I2b()
	return derived(expr.KindVoltage, expr.NegOf(expr.DivOf(i2b.Expr, b.M21())), i2b)
}

func (tp *TwoPort) V2z() expr.Quantity {
	if tp.m.Kind() == KindZ {
		return tp.p2
	}
	b := tp.B()
	v2b, i2b := tp.bSources()
	e := expr.SubOf(v2b.Expr, expr.DivOf(expr.MulOf(i2b.Expr, b.M11()), b.M21()))
	return derived(expr.KindVoltage, e, v2b, i2b)
}

// I1g and V2g form the source pair of the G representation.
func (tp *TwoPort) I1g() expr.Quantity {
	if tp.m.Kind() == KindG {
		return tp.p1
	}
	b := tp.B()
	i2b := tp.I2b()
	return derived(expr.KindCurrent, expr.NegOf(expr.DivOf(i2b.Expr, b.M22())), i2b)
}

func (tp *TwoPort) V2g() expr.Quantity {
	if tp.m.Kind() == KindG {
		return tp.p2
	}
	b := tp.B()
	v2b, i2b := tp.bSources()
	e := expr.SubOf(v2b.Expr, expr.DivOf(expr.MulOf(i2b.Expr, b.M12()), b.M22()))
	return derived(expr.KindVoltage, e, v2b, i2b)
}

// V1oc and V2oc are the port voltages with both ports open (I1 = I2 = 0).
func (tp *TwoPort) V1oc() expr.Quantity { return tp.V1z() }
func (tp *TwoPort) V2oc() expr.Quantity { return tp.V2z() }

// I1sc and I2sc are the port currents with both ports shorted
// (V1 = V2 = 0).
func (tp *TwoPort) I1sc() expr.Quantity { return tp.I1y() }
func (tp *TwoPort) I2sc() expr.Quantity { return tp.I2y() }

// Z1oc is the open-circuit input impedance, Z2oc the open-circuit output
// impedance.
func (tp *TwoPort) Z1oc() expr.Expr { return tp.Z11() }
func (tp *TwoPort) Z2oc() expr.Expr { return tp.Z22() }

// Y1sc is the short-circuit input admittance, Y2sc the short-circuit
// output admittance.
func (tp *TwoPort) Y1sc() expr.Expr { return tp.Y11() }
func (tp *TwoPort) Y2sc() expr.Expr { return tp.Y22() }

// Vgain is the voltage gain between the given ports with internal sources
// zeroed: 1/A11 forward, 1/B11 reverse.
func (tp *TwoPort) Vgain(inport, outport int) (expr.Expr, error) {
	switch {
	case inport == outport && (inport == 1 || inport == 2):
		return expr.N(1), nil
	case inport == 1 && outport == 2:
		return expr.InvOf(tp.A11()), nil
	case inport == 2 && outport == 1:
		return expr.InvOf(tp.B11()), nil
	}
	return nil, fmt.Errorf("%w: bad ports %d and %d", ErrUnsupportedShape, inport, outport)
}

// Igain is the current gain between the given ports with internal sources
// zeroed: -1/A22 forward, -1/B22 reverse.
func (tp *TwoPort) Igain(inport, outport int) (expr.Expr, error) {
	switch {
	case inport == outport && (inport == 1 || inport == 2):
		return expr.N(1), nil
	case inport == 1 && outport == 2:
		return expr.NegOf(expr.InvOf(tp.A22())), nil
	case inport == 2 && outport == 1:
		return expr.NegOf(expr.InvOf(tp.B22())), nil
	}
	return nil, fmt.Errorf("%w: bad ports %d and %d", ErrUnsupportedShape, inport, outport)
}

// Vgain12 is the forward voltage gain V2/V1 for I2 = 0.
func (tp *TwoPort) Vgain12() expr.Expr { return expr.InvOf(tp.A11()) }

// Igain12 is the forward current gain I2/I1 for V2 = 0.
func (tp *TwoPort) Igain12() expr.Expr { return expr.NegOf(expr.InvOf(tp.A22())) }

// Ytrans is the transadmittance Y[outport, inport].
func (tp *TwoPort) Ytrans(inport, outport int) (expr.Expr, error) {
	if err := checkPort(inport); err != nil {
		return nil, err
	}
	if err := checkPort(outport); err != nil {
		return nil, err
	}
	return tp.Y().At(outport-1, inport-1), nil
}

// Ztrans is the transimpedance Z[outport, inport].
func (tp *TwoPort) Ztrans(inport, outport int) (expr.Expr, error) {
	if err := checkPort(inport); err != nil {
		return nil, err
	}
	if err := checkPort(outport); err != nil {
		return nil, err
	}
	return tp.Z().At(outport-1, inport-1), nil
}

// Ytrans12 is the forward transadmittance I2/V1 for V2 = 0.
func (tp *TwoPort) Ytrans12() expr.Expr { return tp.Y21() }

// Ztrans12 is the forward transimpedance V2/I1 for I2 = 0.
func (tp *TwoPort) Ztrans12() expr.Expr { return tp.Z21() }

func (tp *TwoPort) vocAt(port int) expr.Quantity {
	if port == 1 {
		return tp.V1z()
	}
	return tp.V2z()
}

func (tp *TwoPort) iscAt(port int) expr.Quantity {
	if port == 1 {
		return tp.I1y()
	}
	return tp.I2y()
}

// VoltageResponse is the open-circuit voltage at outport when v is applied
// at inport, superposing the internal sources.
func (tp *TwoPort) VoltageResponse(v expr.Quantity, inport, outport int) (expr.Quantity, error) {
	if err := checkPort(inport); err != nil {
		return expr.Quantity{}, err
	}
	if err := checkPort(outport); err != nil {
		return expr.Quantity{}, err
	}
	z := tp.Z()
	h := expr.DivOf(z.At(outport-1, inport-1), z.At(inport-1, inport-1))
	vocIn := tp.vocAt(inport)
	vocOut := tp.vocAt(outport)
	e := expr.AddOf(vocOut.Expr, expr.MulOf(expr.SubOf(v.Expr, vocIn.Expr), h))
	return derived(expr.KindVoltage, e, vocOut, vocIn, v), nil
}

// CurrentResponse is the short-circuit current at outport when i is applied
// at inport, superposing the internal sources.
func (tp *TwoPort) CurrentResponse(i expr.Quantity, inport, outport int) (expr.Quantity, error) {
	if err := checkPort(inport); err != nil {
		return expr.Quantity{}, err
	}
	if err := checkPort(outport); err != nil {
		return expr.Quantity{}, err
	}
	y := tp.Y()
	h := expr.DivOf(y.At(outport-1, inport-1), y.At(inport-1, inport-1))
	iscIn := tp.iscAt(inport)
	iscOut := tp.iscAt(outport)
	e := expr.AddOf(iscOut.Expr, expr.MulOf(expr.SubOf(i.Expr, iscIn.Expr), h))
	return derived(expr.KindCurrent, e, iscOut, iscIn, i), nil
}

func checkPort(port int) error {
	if port != 1 && port != 2 {
		return fmt.Errorf("%w: port %d (want 1 or 2)", ErrUnsupportedShape, port)
	}
	return nil
}

// IsBuffered reports that a load on the output cannot affect the input
// (B12 = B22 = 0).
func (tp *TwoPort) IsBuffered() bool {
	b := tp.B()
	return expr.IsZero(b.M12()) && expr.IsZero(b.M22())
}

// IsBilateral reports det(B) = 1.
func (tp *TwoPort) IsBilateral() bool {
	return tp.B().Det().Equal(expr.N(1))
}

// IsSymmetrical reports B11 = B22.
func (tp *TwoPort) IsSymmetrical() bool {
	b := tp.B()
	return b.M11().Equal(b.M22())
}

// IsSeries reports the characteristic pattern of a single series element:
// B11 = B22 = 1, B21 = 0.
func (tp *TwoPort) IsSeries() bool {
	b := tp.B()
	return expr.IsOne(b.M11()) && expr.IsOne(b.M22()) && expr.IsZero(b.M21())
}

// IsShunt reports the characteristic pattern of a single shunt element:
// B11 = B22 = 1, B12 = 0.
func (tp *TwoPort) IsShunt() bool {
	b := tp.B()
	return expr.IsOne(b.M11()) && expr.IsOne(b.M22()) && expr.IsZero(b.M12())
}

// Simplify collapses a two-port whose B matrix has the structural pattern
// of a single series or shunt element back to that canonical form. Other
// shapes are returned unchanged.
func (tp *TwoPort) Simplify() *TwoPort {
	b := tp.B()
	switch {
	case tp.IsShunt():
		i2b := tp.I2b()
		out, err := NewBModel(
			NewMatrix(KindB, expr.N(1), expr.N(0), b.M21(), expr.N(1)),
			expr.Voltage(expr.N(0)), i2b,
		)
		if err != nil {
			return tp
		}
		return out
	case tp.IsSeries():
		v2b := tp.V2b()
		out, err := NewBModel(
			NewMatrix(KindB, expr.N(1), b.M12(), expr.N(0), expr.N(1)),
			v2b, expr.Current(expr.N(0)),
		)
		if err != nil {
			return tp
		}
		return out
	}
	return tp
}
