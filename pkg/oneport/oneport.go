// Package oneport implements the Thevenin/Norton algebra of linear
// two-terminal networks. Every element, from a bare resistor to a crystal
// model, reduces to an impedance paired with an equivalent source, and
// networks compose by series and parallel combination.
package oneport

import (
	"strings"

	"github.com/edp1096/symnet/pkg/expr"
)

type Form int

const (
	FormThevenin Form = iota
	FormNorton
)

type Kind int

const (
	KindR Kind = iota
	KindG
	KindL
	KindC
	KindZ
	KindY
	KindV
	KindI
	KindXtal
	KindFerriteBead
	KindSer
	KindPar
	KindThevenin
	KindNorton
)

func (k Kind) String() string {
	switch k {
	case KindR:
		return "R"
	case KindG:
		return "G"
	case KindL:
		return "L"
	case KindC:
		return "C"
	case KindZ:
		return "Z"
	case KindY:
		return "Y"
	case KindV:
		return "V"
	case KindI:
		return "I"
	case KindXtal:
		return "Xtal"
	case KindFerriteBead:
		return "FerriteBead"
	case KindSer:
		return "Ser"
	case KindPar:
		return "Par"
	case KindThevenin:
		return "Thevenin"
	case KindNorton:
		return "Norton"
	}
	return "?"
}

// OnePort is an immutable linear one-port. The native form stores either a
// Thevenin pair (Z, Voc) or a Norton pair (Y, Isc); the dual view is
// computed on demand. A degenerate flag marks values derived through a
// division by a structurally zero immittance.
type OnePort struct {
	kind Kind
	form Form

	imm expr.Expr     // Z for Thevenin form, Y for Norton form
	src expr.Quantity // Voc for Thevenin form, Isc for Norton form

	params   []expr.Expr // primitive element parameters
	children []*OnePort  // composite children

	degenerate bool
}

func (p *OnePort) Kind() Kind       { return p.kind }
func (p *OnePort) Form() Form       { return p.form }
func (p *OnePort) Degenerate() bool { return p.degenerate }

// Params returns the primitive parameters, e.g. [L, i0] for an inductor.
func (p *OnePort) Params() []expr.Expr { return p.params }

// Children returns the ordered operands of a composite.
func (p *OnePort) Children() []*OnePort { return p.children }

// Z is the series impedance of the Thevenin view.
func (p *OnePort) Z() expr.Expr {
	if p.form == FormThevenin {
		return p.imm
	}
	return expr.InvOf(p.imm)
}

// Y is the shunt admittance of the Norton view.
func (p *OnePort) Y() expr.Expr {
	if p.form == FormNorton {
		return p.imm
	}
	return expr.InvOf(p.imm)
}

// Voc is the open-circuit source voltage.
func (p *OnePort) Voc() expr.Quantity {
	if p.form == FormThevenin {
		return p.src
	}
	return p.src.MulE(p.Z()).As(expr.KindVoltage)
}

// Isc is the short-circuit source current.
func (p *OnePort) Isc() expr.Quantity {
	if p.form == FormNorton {
		return p.src
	}
	return p.src.MulE(p.Y()).As(expr.KindCurrent)
}

// TimeVoc is the causal time-domain open-circuit voltage.
func (p *OnePort) TimeVoc() (expr.Expr, error) { return p.Voc().Time() }

// TimeIsc is the causal time-domain short-circuit current.
func (p *OnePort) TimeIsc() (expr.Expr, error) { return p.Isc().Time() }

// TimeZ is the impulse response of the driving-point impedance.
func (p *OnePort) TimeZ() (expr.Expr, error) { return expr.InverseLaplace(p.Z()) }

// TimeY is the impulse response of the driving-point admittance.
func (p *OnePort) TimeY() (expr.Expr, error) { return expr.InverseLaplace(p.Y()) }

// SeriesWith connects o in series.
func (p *OnePort) SeriesWith(o *OnePort) (*OnePort, error) { return Ser(p, o) }

// ParallelWith connects o in parallel.
func (p *OnePort) ParallelWith(o *OnePort) (*OnePort, error) { return Par(p, o) }

// IsVoltageSource reports a structurally zero series impedance.
func (p *OnePort) IsVoltageSource() bool {
	return p.form == FormThevenin && expr.IsZero(p.imm)
}

// IsCurrentSource reports a structurally zero shunt admittance.
func (p *OnePort) IsCurrentSource() bool {
	return p.form == FormNorton && expr.IsZero(p.imm)
}

// Thevenin forces the canonical Thevenin shape. Converting a pure current
// source divides by a zero admittance; the result is still returned but
// flagged degenerate.
func (p *OnePort) Thevenin() *OnePort {
	deg := p.degenerate
	if p.form == FormNorton && expr.IsZero(p.imm) {
		deg = true
	}
	return &OnePort{
		kind:       KindThevenin,
		form:       FormThevenin,
		imm:        p.Z(),
		src:        p.Voc(),
		degenerate: deg,
	}
}

// Norton forces the canonical Norton shape, with the dual degeneracy rule.
func (p *OnePort) Norton() *OnePort {
	deg := p.degenerate
	if p.form == FormThevenin && expr.IsZero(p.imm) {
		deg = true
	}
	return &OnePort{
		kind:       KindNorton,
		form:       FormNorton,
		imm:        p.Y(),
		src:        p.Isc(),
		degenerate: deg,
	}
}

// MarkDegenerate returns a copy flagged as derived through a structurally
// singular conversion.
func (p *OnePort) MarkDegenerate() *OnePort {
	q := *p
	q.degenerate = true
	return &q
}

func (p *OnePort) String() string {
	var b strings.Builder
	b.WriteString(p.kind.String())
	b.WriteByte('(')
	switch {
	case len(p.children) > 0:
		for i, c := range p.children {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.String())
		}
	case len(p.params) > 0:
		for i, e := range p.params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.String())
		}
	default:
		b.WriteString(p.imm.String())
		b.WriteString(", ")
		b.WriteString(p.src.String())
	}
	b.WriteByte(')')
	return b.String()
}
