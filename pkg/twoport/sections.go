package twoport

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/expr"
	"github.com/edp1096/symnet/pkg/oneport"
)

// Canonical two-port topologies. Series and shunt elements are built
// directly in the B representation, the one kind that stays non-singular
// for both.

func checkOnePorts(ops ...*oneport.OnePort) error {
	for _, op := range ops {
		if op == nil {
			return fmt.Errorf("%w: nil one-port operand", ErrUnsupportedShape)
		}
	}
	return nil
}

// Series places a one-port in the top conductor:
// B = [1, -Z; 0, 1], V2b = Voc. Its Y matrix is singular.
func Series(op *oneport.OnePort) (*TwoPort, error) {
	if err := checkOnePorts(op); err != nil {
		return nil, err
	}
	m := NewMatrix(KindB, expr.N(1), expr.NegOf(op.Z()), expr.N(0), expr.N(1))
	return NewBModel(m, op.Voc(), expr.Current(expr.N(0)))
}

// Shunt places a one-port across the conductors:
// B = [1, 0; -Y, 1], I2b = Isc. Its Z matrix is singular.
func Shunt(op *oneport.OnePort) (*TwoPort, error) {
	if err := checkOnePorts(op); err != nil {
		return nil, err
	}
	m := NewMatrix(KindB, expr.N(1), expr.N(0), expr.NegOf(op.Y()), expr.N(1))
	return NewBModel(m, expr.Voltage(expr.N(0)), op.Isc())
}

// IdealTransformer has voltage gain alpha and current gain 1/alpha.
func IdealTransformer(alpha any) (*TwoPort, error) {
	a, err := expr.Coerce(alpha)
	if err != nil {
		return nil, fmt.Errorf("%w: turns ratio: %v", ErrInvalidParameter, err)
	}
	if expr.IsZero(a) {
		return nil, fmt.Errorf("%w: zero turns ratio", ErrInvalidParameter)
	}
	m := NewMatrix(KindB, a, expr.N(0), expr.N(0), expr.InvOf(a))
	return NewBModel(m, expr.Voltage(expr.N(0)), expr.Current(expr.N(0)))
}

// IdealGyrator converts a voltage to a current and vice versa with
// gyration resistance R. Two cascaded gyrators act like a transformer.
func IdealGyrator(r any) (*TwoPort, error) {
	rv, err := expr.Coerce(r)
	if err != nil {
		return nil, fmt.Errorf("%w: gyration resistance: %v", ErrInvalidParameter, err)
	}
	if expr.IsZero(rv) {
		return nil, fmt.Errorf("%w: zero gyration resistance", ErrInvalidParameter)
	}
	m := NewMatrix(KindB, expr.N(0), rv, expr.InvOf(rv), expr.N(0))
	return NewBModel(m, expr.Voltage(expr.N(0)), expr.Current(expr.N(0)))
}

// smallParasitic stands in for an exactly zero amplifier parasitic, which
// would make the B matrix singular.
var smallParasitic = expr.F(1, 1_000_000_000)

func nudged(e expr.Expr) expr.Expr {
	if expr.IsZero(e) {
		return smallParasitic
	}
	return e
}

// VoltageAmplifier models a voltage amplifier with forward gain af,
// reverse gain ar, input admittance yin, and output impedance zout. Zero
// parasitics are nudged to keep the B matrix invertible.
func VoltageAmplifier(af, ar, yin, zout any) (*TwoPort, error) {
	afe, err := expr.Coerce(af)
	if err != nil {
		return nil, fmt.Errorf("%w: forward gain: %v", ErrInvalidParameter, err)
	}
	are, err := expr.Coerce(ar)
	if err != nil {
		return nil, fmt.Errorf("%w: reverse gain: %v", ErrInvalidParameter, err)
	}
	yine, err := expr.Coerce(yin)
	if err != nil {
		return nil, fmt.Errorf("%w: input admittance: %v", ErrInvalidParameter, err)
	}
	zoute, err := expr.Coerce(zout)
	if err != nil {
		return nil, fmt.Errorf("%w: output impedance: %v", ErrInvalidParameter, err)
	}
	return amplifierModel(afe, nudged(are), nudged(yine), nudged(zoute))
}

// CurrentAmplifier is the dual model with forward current gain af, reverse
// gain ar, input impedance zin, and output admittance yout.
func CurrentAmplifier(af, ar, zin, yout any) (*TwoPort, error) {
	afe, err := expr.Coerce(af)
	if err != nil {
		return nil, fmt.Errorf("%w: forward gain: %v", ErrInvalidParameter, err)
	}
	are, err := expr.Coerce(ar)
	if err != nil {
		return nil, fmt.Errorf("%w: reverse gain: %v", ErrInvalidParameter, err)
	}
	zine, err := expr.Coerce(zin)
	if err != nil {
		return nil, fmt.Errorf("%w: input impedance: %v", ErrInvalidParameter, err)
	}
	youte, err := expr.Coerce(yout)
	if err != nil {
		return nil, fmt.Errorf("%w: output admittance: %v", ErrInvalidParameter, err)
	}
	return amplifierModel(afe, nudged(are), nudged(youte), nudged(zine))
}

func amplifierModel(af, ar, p1, p2 expr.Expr) (*TwoPort, error) {
	inv := expr.InvOf
	neg := expr.NegOf
	m := NewMatrix(KindB,
		inv(ar),
		neg(inv(expr.MulOf(ar, p1))),
		neg(inv(expr.MulOf(ar, p2))),
		neg(inv(expr.MulOf(ar, p1, p2, expr.SubOf(expr.MulOf(af, ar), expr.N(1))))),
	)
	return NewBModel(m, expr.Voltage(expr.N(0)), expr.Current(expr.N(0)))
}

// VoltageFollower is a unity-gain voltage amplifier.
func VoltageFollower() (*TwoPort, error) { return VoltageAmplifier(1, 0, 0, 0) }

// IdealVoltageAmplifier has forward gain av and ideal parasitics.
func IdealVoltageAmplifier(av any) (*TwoPort, error) { return VoltageAmplifier(av, 0, 0, 0) }

// IdealVoltageDifferentiator amplifies by av*s.
func IdealVoltageDifferentiator(av any) (*TwoPort, error) {
	a, err := expr.Coerce(av)
	if err != nil {
		return nil, fmt.Errorf("%w: gain: %v", ErrInvalidParameter, err)
	}
	return VoltageAmplifier(expr.MulOf(a, expr.LaplaceS()), 0, 0, 0)
}

// IdealVoltageIntegrator amplifies by av/s.
func IdealVoltageIntegrator(av any) (*TwoPort, error) {
	a, err := expr.Coerce(av)
	if err != nil {
		return nil, fmt.Errorf("%w: gain: %v", ErrInvalidParameter, err)
	}
	return VoltageAmplifier(expr.DivOf(a, expr.LaplaceS()), 0, 0, 0)
}

// CurrentFollower is a unity-gain current amplifier.
func CurrentFollower() (*TwoPort, error) { return CurrentAmplifier(1, 0, 0, 0) }

// IdealCurrentAmplifier has forward current gain ai and ideal parasitics.
func IdealCurrentAmplifier(ai any) (*TwoPort, error) { return CurrentAmplifier(ai, 0, 0, 0) }

// IdealCurrentDifferentiator amplifies by ai*s.
func IdealCurrentDifferentiator(ai any) (*TwoPort, error) {
	a, err := expr.Coerce(ai)
	if err != nil {
		return nil, fmt.Errorf("%w: gain: %v", ErrInvalidParameter, err)
	}
	return CurrentAmplifier(expr.MulOf(a, expr.LaplaceS()), 0, 0, 0)
}

// IdealCurrentIntegrator amplifies by ai/s.
func IdealCurrentIntegrator(ai any) (*TwoPort, error) {
	a, err := expr.Coerce(ai)
	if err != nil {
		return nil, fmt.Errorf("%w: gain: %v", ErrInvalidParameter, err)
	}
	return CurrentAmplifier(expr.DivOf(a, expr.LaplaceS()), 0, 0, 0)
}

// IdealDelay delays the signal by the given time, voltage gain exp(-s*T).
func IdealDelay(delay any) (*TwoPort, error) {
	d, err := expr.Coerce(delay)
	if err != nil {
		return nil, fmt.Errorf("%w: delay: %v", ErrInvalidParameter, err)
	}
	gain := expr.ExpOf(expr.NegOf(expr.MulOf(expr.LaplaceS(), d)))
	return VoltageAmplifier(gain, 0, 0, 0)
}

// LSection chains a series element into a shunt element.
func LSection(op1, op2 *oneport.OnePort) (*TwoPort, error) {
	ser, err := Series(op1)
	if err != nil {
		return nil, err
	}
	sh, err := Shunt(op2)
	if err != nil {
		return nil, err
	}
	return Chain(ser, sh)
}

// TSection is series, shunt, series. Its Z matrix for resistive arms is
// [Z1+Z2, Z2; Z2, Z2+Z3].
func TSection(op1, op2, op3 *oneport.OnePort) (*TwoPort, error) {
	s1, err := Series(op1)
	if err != nil {
		return nil, err
	}
	sh, err := Shunt(op2)
	if err != nil {
		return nil, err
	}
	s3, err := Series(op3)
	if err != nil {
		return nil, err
	}
	return Chain(s1, sh, s3)
}

// PiSection is shunt, series, shunt.
func PiSection(op1, op2, op3 *oneport.OnePort) (*TwoPort, error) {
	sh1, err := Shunt(op1)
	if err != nil {
		return nil, err
	}
	ser, err := Series(op2)
	if err != nil {
		return nil, err
	}
	sh3, err := Shunt(op3)
	if err != nil {
		return nil, err
	}
	return Chain(sh1, ser, sh3)
}

// TwinTSection parallels two T sections.
func TwinTSection(op1a, op2a, op3a, op1b, op2b, op3b *oneport.OnePort) (*TwoPort, error) {
	ta, err := TSection(op1a, op2a, op3a)
	if err != nil {
		return nil, err
	}
	tb, err := TSection(op1b, op2b, op3b)
	if err != nil {
		return nil, err
	}
	return Par2(ta, tb)
}

// BridgedTSection parallels a T section with a bridging series element.
func BridgedTSection(op1, op2, op3, op4 *oneport.OnePort) (*TwoPort, error) {
	ts, err := TSection(op1, op2, op3)
	if err != nil {
		return nil, err
	}
	bridge, err := Series(op4)
	if err != nil {
		return nil, err
	}
	return Par2(ts, bridge)
}

// Ladder chains an unbalanced ladder: the first element is in series, then
// the remaining elements alternate shunt, series, shunt, ...
func Ladder(first *oneport.OnePort, rest ...*oneport.OnePort) (*TwoPort, error) {
	tp, err := Series(first)
	if err != nil {
		return nil, err
	}
	for m, op := range rest {
		var next *TwoPort
		if m&1 == 1 {
			next, err = Series(op)
		} else {
			next, err = Shunt(op)
		}
		if err != nil {
			return nil, err
		}
		tp, err = Chain(tp, next)
		if err != nil {
			return nil, err
		}
	}
	return tp, nil
}

// GeneralTxLine models a transmission line of characteristic impedance z0,
// propagation constant gamma, and length l via H = exp(gamma*l):
//
//	B11 = B22 = (H + 1/H)/2
//	B12 = (1/H - H)/2 * Z0
//	B21 = (1/H - H)/2 / Z0
func GeneralTxLine(z0, gamma, l any) (*TwoPort, error) {
	z0e, err := expr.Coerce(z0)
	if err != nil {
		return nil, fmt.Errorf("%w: characteristic impedance: %v", ErrInvalidParameter, err)
	}
	ge, err := expr.Coerce(gamma)
	if err != nil {
		return nil, fmt.Errorf("%w: propagation constant: %v", ErrInvalidParameter, err)
	}
	le, err := expr.Coerce(l)
	if err != nil {
		return nil, fmt.Errorf("%w: length: %v", ErrInvalidParameter, err)
	}

	h := expr.ExpOf(expr.MulOf(ge, le))
	sum := expr.MulOf(expr.F(1, 2), expr.AddOf(h, expr.InvOf(h)))
	diff := expr.MulOf(expr.F(1, 2), expr.SubOf(expr.InvOf(h), h))
	m := NewMatrix(KindB, sum, expr.MulOf(diff, z0e), expr.DivOf(diff, z0e), sum)
	return NewBModel(m, expr.Voltage(expr.N(0)), expr.Current(expr.N(0)))
}

// TxLine is a lossy transmission line with per-metre series resistance and
// inductance, shunt conductance and capacitance, and length l.
func TxLine(r, li, g, c, l any) (*TwoPort, error) {
	re, err := expr.Coerce(r)
	if err != nil {
		return nil, fmt.Errorf("%w: series resistance: %v", ErrInvalidParameter, err)
	}
	le, err := expr.Coerce(li)
	if err != nil {
		return nil, fmt.Errorf("%w: series inductance: %v", ErrInvalidParameter, err)
	}
	ge, err := expr.Coerce(g)
	if err != nil {
		return nil, fmt.Errorf("%w: shunt conductance: %v", ErrInvalidParameter, err)
	}
	ce, err := expr.Coerce(c)
	if err != nil {
		return nil, fmt.Errorf("%w: shunt capacitance: %v", ErrInvalidParameter, err)
	}

	s := expr.LaplaceS()
	z := expr.AddOf(re, expr.MulOf(s, le))
	y := expr.AddOf(ge, expr.MulOf(s, ce))
	gamma := expr.SqrtOf(expr.MulOf(z, y))
	z0 := expr.SqrtOf(expr.DivOf(z, y))
	return GeneralTxLine(z0, gamma, l)
}

// LosslessTxLine has gamma = s/c for propagation speed c.
func LosslessTxLine(z0, c, l any) (*TwoPort, error) {
	ce, err := expr.Coerce(c)
	if err != nil {
		return nil, fmt.Errorf("%w: propagation speed: %v", ErrInvalidParameter, err)
	}
	if expr.IsZero(ce) {
		return nil, fmt.Errorf("%w: zero propagation speed", ErrInvalidParameter)
	}
	return GeneralTxLine(z0, expr.DivOf(expr.LaplaceS(), ce), l)
}
