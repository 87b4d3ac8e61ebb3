package twoport

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/expr"
)

func checkArgs(args []*TwoPort, min int) error {
	if len(args) < min {
		return fmt.Errorf("%w: need at least %d two-ports, got %d", ErrUnsupportedShape, min, len(args))
	}
	for _, a := range args {
		if a == nil {
			return fmt.Errorf("%w: nil two-port operand", ErrUnsupportedShape)
		}
	}
	return nil
}

// Chain cascades two-ports head to tail; the first argument is electrically
// upstream. Folding right to left, each upstream source vector is carried
// through the B matrices of everything downstream of it, so an internal
// source is attenuated exactly as the chain rule demands.
func Chain(args ...*TwoPort) (*TwoPort, error) {
	if err := checkArgs(args, 2); err != nil {
		return nil, err
	}

	last := args[len(args)-1]
	b := last.B()
	v2b, i2b := last.bSources()
	v, i := v2b.Expr, i2b.Expr
	contrib := []expr.Quantity{v2b, i2b}

	for k := len(args) - 2; k >= 0; k-- {
		av, ai := args[k].bSources()
		v = expr.AddOf(v, expr.MulOf(b.M11(), av.Expr), expr.MulOf(b.M12(), ai.Expr))
		i = expr.AddOf(i, expr.MulOf(b.M21(), av.Expr), expr.MulOf(b.M22(), ai.Expr))
		contrib = append(contrib, av, ai)
		next, err := b.MulSame(args[k].B())
		if err != nil {
			return nil, err
		}
		b = next
	}
	return NewBModel(b, derived(expr.KindVoltage, v, contrib...), derived(expr.KindCurrent, i, contrib...))
}

// Par2 connects two two-ports in parallel: Y matrices and port source
// currents sum. Two shunt elements have no Y representation, so that pair
// is combined directly in the B form.
func Par2(a, b *TwoPort) (*TwoPort, error) {
	if err := checkArgs([]*TwoPort{a, b}, 2); err != nil {
		return nil, err
	}
	if a.IsShunt() && b.IsShunt() {
		ba, bb := a.B(), b.B()
		m := NewMatrix(KindB, expr.N(1), expr.N(0), expr.AddOf(ba.M21(), bb.M21()), expr.N(1))
		return NewBModel(m, expr.Voltage(expr.N(0)), a.I2b().Add(b.I2b()))
	}
	y, err := a.Y().AddSame(b.Y())
	if err != nil {
		return nil, err
	}
	return NewYModel(y, a.I1y().Add(b.I1y()), a.I2y().Add(b.I2y()))
}

// Ser2 connects two two-ports in series: Z matrices and port source
// voltages sum. This connection can violate the port condition for
// grounded networks; the algebra is applied regardless. Two series
// elements have no Z representation and are combined in the B form.
func Ser2(a, b *TwoPort) (*TwoPort, error) {
	if err := checkArgs([]*TwoPort{a, b}, 2); err != nil {
		return nil, err
	}
	if a.IsSeries() && b.IsSeries() {
		ba, bb := a.B(), b.B()
		m := NewMatrix(KindB, expr.N(1), expr.AddOf(ba.M12(), bb.M12()), expr.N(0), expr.N(1))
		return NewBModel(m, a.V2b().Add(b.V2b()), expr.Current(expr.N(0)))
	}
	z, err := a.Z().AddSame(b.Z())
	if err != nil {
		return nil, err
	}
	return NewZModel(z, a.V1z().Add(b.V1z()), a.V2z().Add(b.V2z()))
}

// Hybrid2 connects inputs in series and outputs in parallel: H matrices
// and their source pairs sum.
func Hybrid2(a, b *TwoPort) (*TwoPort, error) {
	if err := checkArgs([]*TwoPort{a, b}, 2); err != nil {
		return nil, err
	}
	h, err := a.H().AddSame(b.H())
	if err != nil {
		return nil, err
	}
	return NewHModel(h, a.V1h().Add(b.V1h()), a.I2h().Add(b.I2h()))
}

// InverseHybrid2 connects inputs in parallel and outputs in series: G
// matrices and their source pairs sum.
func InverseHybrid2(a, b *TwoPort) (*TwoPort, error) {
	if err := checkArgs([]*TwoPort{a, b}, 2); err != nil {
		return nil, err
	}
	g, err := a.G().AddSame(b.G())
	if err != nil {
		return nil, err
	}
	return NewGModel(g, a.I1g().Add(b.I1g()), a.V2g().Add(b.V2g()))
}
