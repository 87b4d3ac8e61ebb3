package expr

import (
	"fmt"
	"math/big"

	"github.com/edp1096/symnet/internal/consts"
)

// Pattern-based unilateral Laplace transforms. The table covers the term
// shapes produced by the lumped sources: constants, powers of t, causal
// exponentials and sinusoids, and the delta distribution.

// Laplace transforms a time-domain expression to the s-domain.
func Laplace(e Expr) (Expr, error) {
	out := make([]Expr, 0, 4)
	for _, term := range addTerms(e) {
		lt, err := laplaceTerm(term)
		if err != nil {
			return nil, err
		}
		out = append(out, lt)
	}
	return AddOf(out...), nil
}

func laplaceTerm(term Expr) (Expr, error) {
	t := consts.TimeVar
	s := LaplaceS()

	coeff, base := splitCoeff(term)
	c := &Num{val: coeff}
	if base == nil {
		return DivOf(c, s), nil
	}
	if !ContainsSym(base, t) {
		// Symbolic constant in t, e.g. a bare amplitude symbol.
		return DivOf(MulOf(c, base), s), nil
	}

	if sym, ok := base.(*Sym); ok && sym.name == t {
		return DivOf(c, PowOf(s, N(2))), nil
	}
	if p, ok := base.(*Pow); ok {
		if sym, ok2 := p.base.(*Sym); ok2 && sym.name == t {
			if en, ok3 := p.exp.(*Num); ok3 && en.val.IsInt() && en.val.Sign() > 0 {
				n := en.val.Num().Int64()
				return DivOf(MulOf(c, factorial(n)), PowOf(s, N(n+1))), nil
			}
		}
	}
	if fn, ok := base.(*Fn); ok {
		switch fn.name {
		case "delta":
			return c, nil
		case "exp":
			if a, ok := linearCoeff(fn.arg, t); ok {
				return DivOf(c, SubOf(s, a)), nil
			}
		case "cos":
			if w, ok := linearCoeff(fn.arg, t); ok {
				den := AddOf(PowOf(s, N(2)), PowOf(w, N(2)))
				return DivOf(MulOf(c, s), den), nil
			}
		case "sin":
			if w, ok := linearCoeff(fn.arg, t); ok {
				den := AddOf(PowOf(s, N(2)), PowOf(w, N(2)))
				return DivOf(MulOf(c, w), den), nil
			}
		}
	}
	if m, ok := base.(*Mul); ok {
		// exp(a*t) times a sinusoid or a power of t: shift s by -a.
		for i, f := range m.factors {
			fn, ok := f.(*Fn)
			if !ok || fn.name != "exp" {
				continue
			}
			a, ok := linearCoeff(fn.arg, t)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(m.factors)-1)
			for j, g := range m.factors {
				if j != i {
					rest = append(rest, g)
				}
			}
			inner, err := laplaceTerm(MulOf(append(rest, c)...))
			if err != nil {
				return nil, err
			}
			return inner.Subst(consts.LaplaceVar, SubOf(LaplaceS(), a)), nil
		}
	}
	return nil, fmt.Errorf("expr: no laplace transform for %s", term)
}

// InverseLaplace transforms an s-domain expression to a causal time-domain
// expression.
func InverseLaplace(e Expr) (Expr, error) {
	out := make([]Expr, 0, 4)
	for _, term := range addTerms(e) {
		it, err := inverseTerm(term)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return AddOf(out...), nil
}

func inverseTerm(term Expr) (Expr, error) {
	s := consts.LaplaceVar
	t := TimeT()

	coeff, base := splitCoeff(term)
	c := &Num{val: coeff}
	if base == nil {
		return MulOf(c, DeltaOf(t)), nil
	}
	if !ContainsSym(base, s) {
		return MulOf(c, base, DeltaOf(t)), nil
	}

	// Separate the factor carrying the pole from everything else.
	var den Expr      // denominator body D of a factor D^-n
	var denOrder int64
	numFree := []Expr{}
	hasNumS := false
	for _, f := range mulFactors(base) {
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.val.Sign() < 0 && en.val.IsInt() && ContainsSym(p.base, s) {
				if den != nil {
					return nil, fmt.Errorf("expr: no inverse laplace for %s", term)
				}
				den = p.base
				denOrder = -en.val.Num().Int64()
				continue
			}
		}
		if sym, ok := f.(*Sym); ok && sym.name == s {
			if hasNumS {
				return nil, fmt.Errorf("expr: no inverse laplace for %s", term)
			}
			hasNumS = true
			continue
		}
		if ContainsSym(f, s) {
			return nil, fmt.Errorf("expr: no inverse laplace for %s", term)
		}
		numFree = append(numFree, f)
	}
	free := MulOf(append(numFree, c)...)

	if den == nil {
		// Pure numerator s: the derivative of the delta distribution is
		// outside the expression language.
		return nil, fmt.Errorf("expr: no inverse laplace for %s", term)
	}

	switch d := den.(type) {
	case *Sym:
		if d.name != s {
			break
		}
		if hasNumS {
			denOrder--
			if denOrder == 0 {
				return MulOf(free, DeltaOf(t)), nil
			}
		}
		// c/s^n -> c*t^(n-1)/(n-1)!
		return MulOf(free, PowOf(t, N(denOrder-1)), InvOf(factorial(denOrder-1))), nil
	case *Add:
		// Either s + a (shifted pole) or s^2 + w^2 (sinusoid).
		if a, ok := shiftedPole(d); ok {
			e := ExpOf(MulOf(N(-1), a, t))
			if hasNumS {
				if denOrder != 1 {
					return nil, fmt.Errorf("expr: no inverse laplace for %s", term)
				}
				// s/(s+a) = 1 - a/(s+a)
				return AddOf(MulOf(free, DeltaOf(t)), MulOf(N(-1), free, a, e)), nil
			}
			return MulOf(free, e, PowOf(t, N(denOrder-1)), InvOf(factorial(denOrder-1))), nil
		}
		if w2, ok := quadraticPole(d); ok && denOrder == 1 {
			w := SqrtOf(w2)
			wt := MulOf(w, t)
			if hasNumS {
				return MulOf(free, CosOf(wt)), nil
			}
			return MulOf(free, InvOf(w), SinOf(wt)), nil
		}
	}
	return nil, fmt.Errorf("expr: no inverse laplace for %s", term)
}

// shiftedPole matches s + a with a free of s.
func shiftedPole(d *Add) (Expr, bool) {
	s := consts.LaplaceVar
	var a []Expr
	found := false
	for _, term := range d.terms {
		if sym, ok := term.(*Sym); ok && sym.name == s {
			found = true
			continue
		}
		if ContainsSym(term, s) {
			return nil, false
		}
		a = append(a, term)
	}
	if !found || len(a) == 0 {
		return nil, false
	}
	return AddOf(a...), true
}

// quadraticPole matches s^2 + w^2, returning w^2.
func quadraticPole(d *Add) (Expr, bool) {
	s := consts.LaplaceVar
	var rest []Expr
	found := false
	for _, term := range d.terms {
		if p, ok := term.(*Pow); ok {
			if sym, ok2 := p.base.(*Sym); ok2 && sym.name == s {
				if en, ok3 := p.exp.(*Num); ok3 && en.val.Cmp(ratTwo) == 0 {
					found = true
					continue
				}
			}
		}
		if ContainsSym(term, s) {
			return nil, false
		}
		rest = append(rest, term)
	}
	if !found || len(rest) == 0 {
		return nil, false
	}
	return AddOf(rest...), true
}

// linearCoeff matches a*name with a free of the symbol, returning a.
func linearCoeff(arg Expr, name string) (Expr, bool) {
	if sym, ok := arg.(*Sym); ok && sym.name == name {
		return N(1), true
	}
	m, ok := arg.(*Mul)
	if !ok {
		return nil, false
	}
	rest := make([]Expr, 0, len(m.factors))
	found := false
	for _, f := range m.factors {
		if sym, ok := f.(*Sym); ok && sym.name == name {
			found = true
			continue
		}
		if ContainsSym(f, name) {
			return nil, false
		}
		rest = append(rest, f)
	}
	if !found {
		return nil, false
	}
	return MulOf(rest...), true
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

func mulFactors(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}

func factorial(n int64) Expr {
	acc := new(big.Rat).SetInt64(1)
	for i := int64(2); i <= n; i++ {
		acc.Mul(acc, new(big.Rat).SetInt64(i))
	}
	return &Num{val: acc}
}
