package oneport

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/expr"
)

// Primitive element constructors. Parameters accept numbers, strings in the
// expression syntax, or expressions directly; numeric values that must be
// physical are validated at construction.

func coerceParam(v any, name string) (expr.Expr, error) {
	e, err := expr.Coerce(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParameter, name, err)
	}
	return e, nil
}

func coerceNonNegative(v any, name string) (expr.Expr, error) {
	e, err := coerceParam(v, name)
	if err != nil {
		return nil, err
	}
	if r, ok := expr.RatValue(e); ok && r.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidParameter, name, e)
	}
	return e, nil
}

func optional(vs []any, name string) (expr.Expr, error) {
	switch len(vs) {
	case 0:
		return expr.N(0), nil
	case 1:
		return coerceParam(vs[0], name)
	}
	return nil, fmt.Errorf("%w: at most one %s", ErrUnsupportedShape, name)
}

// R builds a resistor, Z = R.
func R(val any) (*OnePort, error) {
	r, err := coerceNonNegative(val, "resistance")
	if err != nil {
		return nil, err
	}
	return &OnePort{
		kind:   KindR,
		form:   FormThevenin,
		imm:    r,
		src:    expr.Voltage(expr.N(0)),
		params: []expr.Expr{r},
	}, nil
}

// G builds a conductance, the Norton dual of R.
func G(val any) (*OnePort, error) {
	g, err := coerceNonNegative(val, "conductance")
	if err != nil {
		return nil, err
	}
	return &OnePort{
		kind:   KindG,
		form:   FormNorton,
		imm:    g,
		src:    expr.Current(expr.N(0)),
		params: []expr.Expr{g},
	}, nil
}

// L builds an inductor, Z = s*L. A nonzero initial current i0 appears as a
// series opposing source, Voc = -L*i0.
func L(val any, i0 ...any) (*OnePort, error) {
	l, err := coerceNonNegative(val, "inductance")
	if err != nil {
		return nil, err
	}
	ic, err := optional(i0, "initial current")
	if err != nil {
		return nil, err
	}
	voc := expr.Voltage(expr.MulOf(expr.N(-1), l, ic))
	voc.Causal = true
	return &OnePort{
		kind:   KindL,
		form:   FormThevenin,
		imm:    expr.MulOf(expr.LaplaceS(), l),
		src:    voc,
		params: []expr.Expr{l, ic},
	}, nil
}

// C builds a capacitor, Z = 1/(s*C). A nonzero initial voltage v0 appears as
// a series source, Voc = v0/s.
func C(val any, v0 ...any) (*OnePort, error) {
	c, err := coerceNonNegative(val, "capacitance")
	if err != nil {
		return nil, err
	}
	vc, err := optional(v0, "initial voltage")
	if err != nil {
		return nil, err
	}
	voc := expr.Voltage(expr.DivOf(vc, expr.LaplaceS()))
	voc.Causal = true
	return &OnePort{
		kind:   KindC,
		form:   FormThevenin,
		imm:    expr.InvOf(expr.MulOf(expr.LaplaceS(), c)),
		src:    voc,
		params: []expr.Expr{c, vc},
	}, nil
}

// Z builds a general impedance.
func Z(val any) (*OnePort, error) {
	z, err := coerceParam(val, "impedance")
	if err != nil {
		return nil, err
	}
	return &OnePort{
		kind:   KindZ,
		form:   FormThevenin,
		imm:    z,
		src:    expr.Voltage(expr.N(0)),
		params: []expr.Expr{z},
	}, nil
}

// Y builds a general admittance.
func Y(val any) (*OnePort, error) {
	y, err := coerceParam(val, "admittance")
	if err != nil {
		return nil, err
	}
	return &OnePort{
		kind:   KindY,
		form:   FormNorton,
		imm:    y,
		src:    expr.Current(expr.N(0)),
		params: []expr.Expr{y},
	}, nil
}

func voltageSource(voc expr.Quantity, params ...expr.Expr) *OnePort {
	return &OnePort{
		kind:   KindV,
		form:   FormThevenin,
		imm:    expr.N(0),
		src:    voc,
		params: params,
	}
}

func currentSource(isc expr.Quantity, params ...expr.Expr) *OnePort {
	return &OnePort{
		kind:   KindI,
		form:   FormNorton,
		imm:    expr.N(0),
		src:    isc,
		params: params,
	}
}

// Vq wraps an existing voltage quantity as an ideal source, keeping its
// domain assumptions.
func Vq(voc expr.Quantity) *OnePort {
	return voltageSource(voc.As(expr.KindVoltage), voc.Expr)
}

// Iq wraps an existing current quantity as an ideal source, keeping its
// domain assumptions.
func Iq(isc expr.Quantity) *OnePort {
	return currentSource(isc.As(expr.KindCurrent), isc.Expr)
}

// V builds an arbitrary s-domain voltage source.
func V(val any) (*OnePort, error) {
	v, err := coerceParam(val, "voltage")
	if err != nil {
		return nil, err
	}
	return voltageSource(expr.Voltage(v), v), nil
}

// Vdc builds a dc voltage source, Voc = V/s.
func Vdc(val any) (*OnePort, error) {
	v, err := coerceParam(val, "voltage")
	if err != nil {
		return nil, err
	}
	voc := expr.Voltage(expr.DivOf(v, expr.LaplaceS()))
	voc.DC = true
	return voltageSource(voc, v), nil
}

// Vstep builds a step voltage source, the causal variant of Vdc.
func Vstep(val any) (*OnePort, error) {
	v, err := coerceParam(val, "voltage")
	if err != nil {
		return nil, err
	}
	voc := expr.Voltage(expr.DivOf(v, expr.LaplaceS()))
	voc.Causal = true
	return voltageSource(voc, v), nil
}

// Vac builds an ac voltage source v(t) = V*cos(omega_1*t + phase). All ac
// sources share the angular frequency symbol omega_1.
func Vac(val any, phase ...any) (*OnePort, error) {
	v, err := coerceParam(val, "voltage")
	if err != nil {
		return nil, err
	}
	ph, err := optional(phase, "phase")
	if err != nil {
		return nil, err
	}
	voc := expr.Voltage(acPhasor(v, ph))
	voc.AC = true
	return voltageSource(voc, v, ph), nil
}

// Vt builds a voltage source from a time-domain expression.
func Vt(val any) (*OnePort, error) {
	v, err := coerceParam(val, "voltage")
	if err != nil {
		return nil, err
	}
	lt, err := expr.Laplace(v)
	if err != nil {
		return nil, fmt.Errorf("%w: voltage: %v", ErrInvalidParameter, err)
	}
	voc := expr.Voltage(lt)
	voc.Causal = true
	return voltageSource(voc, v), nil
}

// I builds an arbitrary s-domain current source.
func I(val any) (*OnePort, error) {
	i, err := coerceParam(val, "current")
	if err != nil {
		return nil, err
	}
	return currentSource(expr.Current(i), i), nil
}

// Idc builds a dc current source, Isc = I/s.
func Idc(val any) (*OnePort, error) {
	i, err := coerceParam(val, "current")
	if err != nil {
		return nil, err
	}
	isc := expr.Current(expr.DivOf(i, expr.LaplaceS()))
	isc.DC = true
	return currentSource(isc, i), nil
}

// Istep builds a step current source.
func Istep(val any) (*OnePort, error) {
	i, err := coerceParam(val, "current")
	if err != nil {
		return nil, err
	}
	isc := expr.Current(expr.DivOf(i, expr.LaplaceS()))
	isc.Causal = true
	return currentSource(isc, i), nil
}

// Iac builds an ac current source i(t) = I*cos(omega_1*t + phase).
func Iac(val any, phase ...any) (*OnePort, error) {
	i, err := coerceParam(val, "current")
	if err != nil {
		return nil, err
	}
	ph, err := optional(phase, "phase")
	if err != nil {
		return nil, err
	}
	isc := expr.Current(acPhasor(i, ph))
	isc.AC = true
	return currentSource(isc, i, ph), nil
}

// It builds a current source from a time-domain expression.
func It(val any) (*OnePort, error) {
	i, err := coerceParam(val, "current")
	if err != nil {
		return nil, err
	}
	lt, err := expr.Laplace(i)
	if err != nil {
		return nil, fmt.Errorf("%w: current: %v", ErrInvalidParameter, err)
	}
	isc := expr.Current(lt)
	isc.Causal = true
	return currentSource(isc, i), nil
}

// acPhasor is the s-domain form used for ac sources of a given amplitude
// and phase: A*(s*cos(phase) + omega_1*sin(phase)) / (s^2 + omega_1^2).
func acPhasor(amp, phase expr.Expr) expr.Expr {
	s := expr.LaplaceS()
	w := expr.Omega()
	num := expr.AddOf(
		expr.MulOf(s, expr.CosOf(phase)),
		expr.MulOf(w, expr.SinOf(phase)),
	)
	den := expr.AddOf(expr.PowOf(s, expr.N(2)), expr.PowOf(w, expr.N(2)))
	return expr.DivOf(expr.MulOf(amp, num), den)
}

// Xtal builds the crystal model (R1 + L1 + C1) | C0, kept as an opaque
// Thevenin pair with the network retained for Expand.
func Xtal(r1, l1, c1, c0 any) (*OnePort, error) {
	rp, err := R(r1)
	if err != nil {
		return nil, err
	}
	lp, err := L(l1)
	if err != nil {
		return nil, err
	}
	cp, err := C(c1)
	if err != nil {
		return nil, err
	}
	c0p, err := C(c0)
	if err != nil {
		return nil, err
	}
	arm, err := Ser(rp, lp, cp)
	if err != nil {
		return nil, err
	}
	net, err := Par(arm, c0p)
	if err != nil {
		return nil, err
	}
	return &OnePort{
		kind:     KindXtal,
		form:     net.form,
		imm:      net.imm,
		src:      net.src,
		params:   []expr.Expr{rp.params[0], lp.params[0], cp.params[0], c0p.params[0]},
		children: []*OnePort{net},
	}, nil
}

// FerriteBead builds the bead model Rs + (Rp | Lp | Cp).
func FerriteBead(rs, rp, lp, cp any) (*OnePort, error) {
	rsp, err := R(rs)
	if err != nil {
		return nil, err
	}
	rpp, err := R(rp)
	if err != nil {
		return nil, err
	}
	lpp, err := L(lp)
	if err != nil {
		return nil, err
	}
	cpp, err := C(cp)
	if err != nil {
		return nil, err
	}
	tank, err := Par(rpp, lpp, cpp)
	if err != nil {
		return nil, err
	}
	net, err := Ser(rsp, tank)
	if err != nil {
		return nil, err
	}
	return &OnePort{
		kind:     KindFerriteBead,
		form:     net.form,
		imm:      net.imm,
		src:      net.src,
		params:   []expr.Expr{rsp.params[0], rpp.params[0], lpp.params[0], cpp.params[0]},
		children: []*OnePort{net},
	}, nil
}

// Expand returns the primitive network behind a compound element.
func (p *OnePort) Expand() (*OnePort, error) {
	if p.kind != KindXtal && p.kind != KindFerriteBead {
		return nil, fmt.Errorf("%w: %s has no expansion", ErrUnsupportedShape, p.kind)
	}
	return p.children[0], nil
}
