package oneport

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/expr"
)

// Ser combines one-ports in series: Z and Voc sum. A pure current source
// fixes the branch current and cannot appear in a series chain.
func Ser(ports ...*OnePort) (*OnePort, error) {
	if err := checkOperands(ports); err != nil {
		return nil, err
	}
	for _, p := range ports {
		if p.IsCurrentSource() {
			return nil, fmt.Errorf("%w: pure current source %s in a series chain", ErrIncompatibleCombination, p)
		}
	}

	zs := make([]expr.Expr, len(ports))
	for i, p := range ports {
		zs[i] = p.Z()
	}
	voc := ports[0].Voc()
	deg := ports[0].degenerate
	for _, p := range ports[1:] {
		voc = voc.Add(p.Voc())
		deg = deg || p.degenerate
	}
	return &OnePort{
		kind:       KindSer,
		form:       FormThevenin,
		imm:        expr.AddOf(zs...),
		src:        voc,
		children:   ports,
		degenerate: deg,
	}, nil
}

// Par combines one-ports in parallel: Y and Isc sum. Unequal pure voltage
// sources in parallel are inconsistent; a single one (or equal ones)
// dominates the combination.
func Par(ports ...*OnePort) (*OnePort, error) {
	if err := checkOperands(ports); err != nil {
		return nil, err
	}

	deg := false
	var vsrc *OnePort
	for _, p := range ports {
		deg = deg || p.degenerate
		if !p.IsVoltageSource() {
			continue
		}
		if vsrc != nil && !vsrc.Voc().Equal(p.Voc()) {
			return nil, fmt.Errorf("%w: parallel voltage sources %s and %s disagree", ErrIncompatibleCombination, vsrc, p)
		}
		if vsrc == nil {
			vsrc = p
		}
	}
	if vsrc != nil {
		// The ideal voltage source pins the terminal pair.
		return &OnePort{
			kind:       KindPar,
			form:       FormThevenin,
			imm:        expr.N(0),
			src:        vsrc.Voc(),
			children:   ports,
			degenerate: deg,
		}, nil
	}

	ys := make([]expr.Expr, len(ports))
	for i, p := range ports {
		ys[i] = p.Y()
	}
	isc := ports[0].Isc()
	for _, p := range ports[1:] {
		isc = isc.Add(p.Isc())
	}
	return &OnePort{
		kind:       KindPar,
		form:       FormNorton,
		imm:        expr.AddOf(ys...),
		src:        isc,
		children:   ports,
		degenerate: deg,
	}, nil
}

func checkOperands(ports []*OnePort) error {
	if len(ports) < 2 {
		return fmt.Errorf("%w: need at least two one-ports, got %d", ErrUnsupportedShape, len(ports))
	}
	for _, p := range ports {
		if p == nil {
			return fmt.Errorf("%w: nil one-port operand", ErrUnsupportedShape)
		}
	}
	return nil
}

// Simplify flattens nested same-operator composites, elides zero-valued
// identity sources, and pairwise-combines children of identical primitive
// kind using the closed-form rules. The result is reduced, not a unique
// normal form.
func (p *OnePort) Simplify() (*OnePort, error) {
	if p.kind != KindSer && p.kind != KindPar {
		return p, nil
	}
	op := opSer
	if p.kind == KindPar {
		op = opPar
	}

	kids := make([]*OnePort, 0, len(p.children))
	for _, c := range p.children {
		sc, err := c.Simplify()
		if err != nil {
			return nil, err
		}
		if sc.kind == p.kind {
			kids = append(kids, sc.children...)
		} else {
			kids = append(kids, sc)
		}
	}

	out := make([]*OnePort, 0, len(kids))
	for _, c := range kids {
		// A zero voltage source or zero impedance in series is a wire;
		// a zero current source or zero admittance in parallel carries
		// nothing.
		if op == opSer && c.src.IsZero() {
			if c.kind == KindV || (c.kind == KindZ && expr.IsZero(c.imm)) {
				continue
			}
		}
		if op == opPar && c.src.IsZero() {
			if c.kind == KindI || (c.kind == KindY && expr.IsZero(c.imm)) {
				continue
			}
		}
		out = append(out, c)
	}

	for changed := true; changed; {
		changed = false
	scan:
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				comb, err := combinePair(op, out[i], out[j])
				if err != nil {
					return nil, err
				}
				if comb == nil {
					continue
				}
				out[i] = comb
				out = append(out[:j], out[j+1:]...)
				changed = true
				break scan
			}
		}
	}

	switch len(out) {
	case 0:
		if op == opSer {
			return Z(0)
		}
		return Y(0)
	case 1:
		return out[0], nil
	}
	if op == opSer {
		return Ser(out...)
	}
	return Par(out...)
}

type combineOp int

const (
	opSer combineOp = iota
	opPar
)

type combineKey struct {
	op   combineOp
	a, b Kind
}

type combineFunc func(a, b *OnePort) (*OnePort, error)

// Closed-form pairwise combination rules. Only identical primitive kinds
// combine; a missing key keeps both children uncombined.
var combineRules = map[combineKey]combineFunc{
	{opSer, KindR, KindR}: serR,
	{opSer, KindG, KindG}: serG,
	{opSer, KindL, KindL}: serL,
	{opSer, KindC, KindC}: serC,
	{opSer, KindZ, KindZ}: serZ,
	{opSer, KindV, KindV}: serV,
	{opPar, KindR, KindR}: parR,
	{opPar, KindG, KindG}: parG,
	{opPar, KindL, KindL}: parL,
	{opPar, KindC, KindC}: parC,
	{opPar, KindY, KindY}: parY,
	{opPar, KindI, KindI}: parI,
}

func combinePair(op combineOp, a, b *OnePort) (*OnePort, error) {
	fn, ok := combineRules[combineKey{op, a.kind, b.kind}]
	if !ok {
		return nil, nil
	}
	return fn(a, b)
}

func serR(a, b *OnePort) (*OnePort, error) {
	return R(expr.AddOf(a.params[0], b.params[0]))
}

func serG(a, b *OnePort) (*OnePort, error) {
	return G(reciprocalSum(a.params[0], b.params[0]))
}

func serL(a, b *OnePort) (*OnePort, error) {
	if !a.params[1].Equal(b.params[1]) {
		return nil, fmt.Errorf("%w: series inductors with initial currents %s and %s", ErrIncompatibleCombination, a.params[1], b.params[1])
	}
	return L(expr.AddOf(a.params[0], b.params[0]), a.params[1])
}

func serC(a, b *OnePort) (*OnePort, error) {
	return C(reciprocalSum(a.params[0], b.params[0]), expr.AddOf(a.params[1], b.params[1]))
}

func serZ(a, b *OnePort) (*OnePort, error) {
	return Z(expr.AddOf(a.params[0], b.params[0]))
}

func serV(a, b *OnePort) (*OnePort, error) {
	voc := a.src.Add(b.src)
	return voltageSource(voc, voc.Expr), nil
}

func parR(a, b *OnePort) (*OnePort, error) {
	return R(reciprocalSum(a.params[0], b.params[0]))
}

func parG(a, b *OnePort) (*OnePort, error) {
	return G(expr.AddOf(a.params[0], b.params[0]))
}

func parL(a, b *OnePort) (*OnePort, error) {
	return L(reciprocalSum(a.params[0], b.params[0]), expr.AddOf(a.params[1], b.params[1]))
}

func parC(a, b *OnePort) (*OnePort, error) {
	if !a.params[1].Equal(b.params[1]) {
		return nil, fmt.Errorf("%w: parallel capacitors with initial voltages %s and %s", ErrIncompatibleCombination, a.params[1], b.params[1])
	}
	return C(expr.AddOf(a.params[0], b.params[0]), a.params[1])
}

func parY(a, b *OnePort) (*OnePort, error) {
	return Y(expr.AddOf(a.params[0], b.params[0]))
}

func parI(a, b *OnePort) (*OnePort, error) {
	isc := a.src.Add(b.src)
	return currentSource(isc, isc.Expr), nil
}

// reciprocalSum is a*b/(a+b), the shared form of the dual combining rules.
func reciprocalSum(a, b expr.Expr) expr.Expr {
	return expr.DivOf(expr.MulOf(a, b), expr.AddOf(a, b))
}
