// Package expr is the symbolic kernel for the network algebra.
// Expressions are immutable trees over exact rational numbers; every
// constructor returns a canonically simplified value so that structural
// equality is value equality.
package expr

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/edp1096/symnet/internal/consts"
)

type Expr interface {
	String() string
	Equal(other Expr) bool
	Subst(name string, value Expr) Expr
	Diff(name string) Expr

	simplify() Expr
	key() string
	evalRat() (*big.Rat, bool)
	evalComplex(vars map[string]complex128) (complex128, error)
}

var (
	ratOne  = new(big.Rat).SetInt64(1)
	ratTwo  = new(big.Rat).SetInt64(2)
	ratHalf = big.NewRat(1, 2)
)

func LaplaceS() Expr { return S(consts.LaplaceVar) }
func TimeT() Expr    { return S(consts.TimeVar) }
func Omega() Expr    { return S(consts.OmegaVar) }

// Num - exact rational constant

type Num struct{ val *big.Rat }

func N(n int64) Expr { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) Expr {
	if q == 0 {
		panic("expr: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// Float converts an exact binary float. NaN and infinities have no
// rational form and must be rejected by the caller (see Coerce).
func Float(f float64) Expr { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) key() string     { return "q:" + n.val.RatString() }
func (n *Num) simplify() Expr  { return n }
func (n *Num) Diff(string) Expr { return N(0) }

func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)
	return ok && n.val.Cmp(o.val) == 0
}

func (n *Num) Subst(string, Expr) Expr   { return n }
func (n *Num) evalRat() (*big.Rat, bool) { return n.val, true }

func (n *Num) evalComplex(map[string]complex128) (complex128, error) {
	f, _ := n.val.Float64()
	return complex(f, 0), nil
}

// Sym - free symbol

type Sym struct{ name string }

func S(name string) Expr { return &Sym{name: name} }

func (s *Sym) String() string { return s.name }
func (s *Sym) key() string    { return "v:" + s.name }
func (s *Sym) simplify() Expr { return s }

func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && s.name == o.name
}

func (s *Sym) Subst(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) evalRat() (*big.Rat, bool) { return nil, false }

func (s *Sym) evalComplex(vars map[string]complex128) (complex128, error) {
	v, ok := vars[s.name]
	if !ok {
		return 0, fmt.Errorf("expr: unbound symbol %q", s.name)
	}
	return v, nil
}

// Add - n-ary sum

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr {
	if len(terms) == 0 {
		return N(0)
	}
	return (&Add{terms: terms}).simplify()
}

func SubOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }
func NegOf(a Expr) Expr    { return MulOf(N(-1), a) }

func (a *Add) simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		st := t.simplify()
		if inner, ok := st.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, st)
		}
	}

	numAccum := new(big.Rat)
	coeffs := map[string]*big.Rat{}
	bases := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		c, base := splitCoeff(t)
		if base == nil {
			numAccum.Add(numAccum, c)
			continue
		}
		k := base.key()
		if _, seen := coeffs[k]; !seen {
			order = append(order, k)
			coeffs[k] = new(big.Rat)
			bases[k] = base
		}
		coeffs[k].Add(coeffs[k], c)
	}

	sort.Strings(order)
	result := make([]Expr, 0, len(order)+1)
	for _, k := range order {
		c := coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		result = append(result, joinCoeff(c, bases[k]))
	}
	if numAccum.Sign() != 0 {
		result = append(result, &Num{val: numAccum})
	}

	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - ")
			b.WriteString(s[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (a *Add) key() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.key()
	}
	return "+(" + strings.Join(parts, ",") + ")"
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Subst(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Subst(name, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

func (a *Add) evalRat() (*big.Rat, bool) {
	acc := new(big.Rat)
	for _, t := range a.terms {
		v, ok := t.evalRat()
		if !ok {
			return nil, false
		}
		acc.Add(acc, v)
	}
	return acc, true
}

func (a *Add) evalComplex(vars map[string]complex128) (complex128, error) {
	var acc complex128
	for _, t := range a.terms {
		v, err := t.evalComplex(vars)
		if err != nil {
			return 0, err
		}
		acc += v
	}
	return acc, nil
}

// Mul - n-ary product

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr {
	if len(factors) == 0 {
		return N(1)
	}
	return (&Mul{factors: factors}).simplify()
}

func DivOf(a, b Expr) Expr { return MulOf(a, InvOf(b)) }
func InvOf(a Expr) Expr    { return PowOf(a, N(-1)) }

func (m *Mul) simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		sf := f.simplify()
		if inner, ok := sf.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, sf)
		}
	}

	coeff := new(big.Rat).SetInt64(1)
	type powAcc struct {
		base Expr
		exps []Expr
	}
	accs := map[string]*powAcc{}
	order := []string{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		b, e := splitPow(f)
		k := b.key()
		if acc, ok := accs[k]; ok {
			acc.exps = append(acc.exps, e)
		} else {
			accs[k] = &powAcc{base: b, exps: []Expr{e}}
			order = append(order, k)
		}
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	factors := make([]Expr, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		p := buildPow(acc.base, AddOf(acc.exps...))
		if n, ok := p.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		if inner, ok := p.(*Mul); ok {
			factors = append(factors, inner.factors...)
			continue
		}
		factors = append(factors, p)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].key() < factors[j].key() })

	if len(factors) == 0 {
		return &Num{val: coeff}
	}
	// Products distribute over sums, so like terms collect and quotients
	// of equal sums cancel instead of hiding inside an opaque product.
	for idx, f := range factors {
		sum, ok := f.(*Add)
		if !ok {
			continue
		}
		rest := make([]Expr, 0, len(factors)-1)
		rest = append(rest, factors[:idx]...)
		rest = append(rest, factors[idx+1:]...)
		c := &Num{val: coeff}
		terms := make([]Expr, len(sum.terms))
		for i, tm := range sum.terms {
			terms[i] = MulOf(append([]Expr{c, tm}, rest...)...)
		}
		return AddOf(terms...)
	}
	if coeff.Cmp(ratOne) == 0 {
		if len(factors) == 1 {
			return factors[0]
		}
		return &Mul{factors: factors}
	}
	out := append([]Expr{&Num{val: coeff}}, factors...)
	return &Mul{factors: out}
}

func (m *Mul) String() string {
	numParts := []string{}
	denParts := []string{}

	factors := m.factors
	negative := false
	if n, ok := factors[0].(*Num); ok {
		v := new(big.Rat).Set(n.val)
		if v.Sign() < 0 {
			negative = true
			v.Neg(v)
		}
		if v.Num().Cmp(big.NewInt(1)) != 0 {
			numParts = append(numParts, v.Num().String())
		}
		if !v.IsInt() {
			denParts = append(denParts, v.Denom().String())
		}
		factors = factors[1:]
	}
	for _, f := range factors {
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.val.Sign() < 0 {
				inv := new(big.Rat).Neg(en.val)
				denParts = append(denParts, powFactorString(p.base, &Num{val: inv}))
				continue
			}
		}
		numParts = append(numParts, factorString(f))
	}

	numStr := "1"
	if len(numParts) > 0 {
		numStr = strings.Join(numParts, "*")
	}
	s := numStr
	if len(denParts) > 0 {
		den := strings.Join(denParts, "*")
		if len(denParts) > 1 || strings.ContainsAny(den, "*+-^ ") {
			den = "(" + den + ")"
		}
		s += "/" + den
	}
	if negative {
		s = "-" + s
	}
	return s
}

func (m *Mul) key() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = f.key()
	}
	return "*(" + strings.Join(parts, ",") + ")"
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Subst(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Subst(name, value)
	}
	return MulOf(out...)
}

func (m *Mul) Diff(name string) Expr {
	// Product rule over all factors.
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		for j, f := range m.factors {
			if i == j {
				parts = append(parts, f.Diff(name))
			} else {
				parts = append(parts, f)
			}
		}
		terms = append(terms, MulOf(parts...))
	}
	return AddOf(terms...)
}

func (m *Mul) evalRat() (*big.Rat, bool) {
	acc := new(big.Rat).SetInt64(1)
	for _, f := range m.factors {
		v, ok := f.evalRat()
		if !ok {
			return nil, false
		}
		acc.Mul(acc, v)
	}
	return acc, true
}

func (m *Mul) evalComplex(vars map[string]complex128) (complex128, error) {
	acc := complex(1, 0)
	for _, f := range m.factors {
		v, err := f.evalComplex(vars)
		if err != nil {
			return 0, err
		}
		acc *= v
	}
	return acc, nil
}

// Pow

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr {
	return (&Pow{base: base, exp: exp}).simplify()
}

func (p *Pow) simplify() Expr { return buildPow(p.base.simplify(), p.exp.simplify()) }

// buildPow folds a power of two canonical operands. A negative power of
// literal zero is kept unresolved so that degenerate matrix conversions can
// produce a value instead of panicking.
func buildPow(b, e Expr) Expr {
	if en, ok := e.(*Num); ok {
		if en.val.Sign() == 0 {
			return N(1)
		}
		if en.val.Cmp(ratOne) == 0 {
			return b
		}
		if bn, ok := b.(*Num); ok {
			if bn.val.Sign() == 0 {
				if en.val.Sign() > 0 {
					return N(0)
				}
				return &Pow{base: N(0), exp: en}
			}
			if en.val.IsInt() {
				return &Num{val: ratPow(bn.val, en.val.Num().Int64())}
			}
			if en.val.Cmp(ratHalf) == 0 {
				if r, ok := ratSqrt(bn.val); ok {
					return &Num{val: r}
				}
			}
		}
		if fn, ok := b.(*Fn); ok && fn.name == "sqrt" && en.val.Cmp(ratTwo) == 0 {
			return fn.arg
		}
		if bm, ok := b.(*Mul); ok {
			fs := make([]Expr, 0, len(bm.factors))
			for _, f := range bm.factors {
				fs = append(fs, buildPow(f, e))
			}
			return MulOf(fs...)
		}
		if bp, ok := b.(*Pow); ok {
			return buildPow(bp.base, MulOf(bp.exp, e))
		}
	}
	if bn, ok := b.(*Num); ok && bn.val.Cmp(ratOne) == 0 {
		return N(1)
	}
	return &Pow{base: b, exp: e}
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok && en.val.Sign() < 0 {
		inv := new(big.Rat).Neg(en.val)
		return "1/" + powFactorString(p.base, &Num{val: inv})
	}
	return powFactorString(p.base, p.exp)
}

func (p *Pow) key() string { return "^(" + p.base.key() + "," + p.exp.key() + ")" }

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) Subst(name string, value Expr) Expr {
	return PowOf(p.base.Subst(name, value), p.exp.Subst(name, value))
}

func (p *Pow) Diff(name string) Expr {
	de := p.exp.Diff(name)
	db := p.base.Diff(name)
	if IsZero(de) {
		// d(b^n) = n*b^(n-1)*b'
		return MulOf(p.exp, PowOf(p.base, SubOf(p.exp, N(1))), db)
	}
	// General rule via the logarithm: b^e * (e'*log b + e*b'/b).
	return MulOf(p, AddOf(MulOf(de, LogOf(p.base)), MulOf(p.exp, db, InvOf(p.base))))
}

func (p *Pow) evalRat() (*big.Rat, bool) {
	bv, ok := p.base.evalRat()
	if !ok {
		return nil, false
	}
	ev, ok := p.exp.evalRat()
	if !ok || !ev.IsInt() {
		return nil, false
	}
	if bv.Sign() == 0 && ev.Sign() < 0 {
		return nil, false
	}
	return ratPow(bv, ev.Num().Int64()), true
}

func (p *Pow) evalComplex(vars map[string]complex128) (complex128, error) {
	bv, err := p.base.evalComplex(vars)
	if err != nil {
		return 0, err
	}
	ev, err := p.exp.evalComplex(vars)
	if err != nil {
		return 0, err
	}
	return cmplx.Pow(bv, ev), nil
}

// Fn - unary function application (cos, sin, exp, sqrt, log, delta)

type Fn struct {
	name string
	arg  Expr
}

func CosOf(arg Expr) Expr   { return (&Fn{name: "cos", arg: arg}).simplify() }
func SinOf(arg Expr) Expr   { return (&Fn{name: "sin", arg: arg}).simplify() }
func ExpOf(arg Expr) Expr   { return (&Fn{name: "exp", arg: arg}).simplify() }
func SqrtOf(arg Expr) Expr  { return (&Fn{name: "sqrt", arg: arg}).simplify() }
func LogOf(arg Expr) Expr   { return (&Fn{name: "log", arg: arg}).simplify() }
func DeltaOf(arg Expr) Expr { return (&Fn{name: "delta", arg: arg}).simplify() }

func fnOf(name string, arg Expr) (Expr, error) {
	switch name {
	case "cos", "sin", "exp", "sqrt", "log", "delta":
		return (&Fn{name: name, arg: arg}).simplify(), nil
	}
	return nil, fmt.Errorf("expr: unknown function %q", name)
}

func (f *Fn) simplify() Expr {
	arg := f.arg.simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "cos":
			if n.val.Sign() == 0 {
				return N(1)
			}
		case "sin":
			if n.val.Sign() == 0 {
				return N(0)
			}
		case "exp":
			if n.val.Sign() == 0 {
				return N(1)
			}
		case "log":
			if n.val.Cmp(ratOne) == 0 {
				return N(0)
			}
		case "sqrt":
			if r, ok := ratSqrt(n.val); ok {
				return &Num{val: r}
			}
		}
	}
	if f.name == "sqrt" {
		if pw, ok := arg.(*Pow); ok {
			if en, ok2 := pw.exp.(*Num); ok2 && en.val.Cmp(ratTwo) == 0 {
				return pw.base
			}
		}
	}
	return &Fn{name: f.name, arg: arg}
}

func (f *Fn) String() string { return f.name + "(" + f.arg.String() + ")" }
func (f *Fn) key() string    { return "f:" + f.name + "(" + f.arg.key() + ")" }

func (f *Fn) Equal(other Expr) bool {
	o, ok := other.(*Fn)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Fn) Subst(name string, value Expr) Expr {
	e, _ := fnOf(f.name, f.arg.Subst(name, value))
	return e
}

func (f *Fn) Diff(name string) Expr {
	da := f.arg.Diff(name)
	switch f.name {
	case "cos":
		return MulOf(N(-1), SinOf(f.arg), da)
	case "sin":
		return MulOf(CosOf(f.arg), da)
	case "exp":
		return MulOf(ExpOf(f.arg), da)
	case "log":
		return MulOf(InvOf(f.arg), da)
	case "sqrt":
		return MulOf(F(1, 2), InvOf(SqrtOf(f.arg)), da)
	}
	// Distributions have no expression-level derivative here.
	return N(0)
}

func (f *Fn) evalRat() (*big.Rat, bool) { return nil, false }

func (f *Fn) evalComplex(vars map[string]complex128) (complex128, error) {
	v, err := f.arg.evalComplex(vars)
	if err != nil {
		return 0, err
	}
	switch f.name {
	case "cos":
		return cmplx.Cos(v), nil
	case "sin":
		return cmplx.Sin(v), nil
	case "exp":
		return cmplx.Exp(v), nil
	case "sqrt":
		return cmplx.Sqrt(v), nil
	case "log":
		return cmplx.Log(v), nil
	}
	return 0, fmt.Errorf("expr: %s is not numerically evaluable", f.name)
}

// Helpers

// splitCoeff separates a canonical term into a rational coefficient and the
// remaining symbolic base. A nil base means the term is a pure number.
func splitCoeff(t Expr) (*big.Rat, Expr) {
	switch v := t.(type) {
	case *Num:
		return new(big.Rat).Set(v.val), nil
	case *Mul:
		if n, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return new(big.Rat).Set(n.val), rest[0]
			}
			return new(big.Rat).Set(n.val), &Mul{factors: rest}
		}
		return new(big.Rat).SetInt64(1), v
	default:
		return new(big.Rat).SetInt64(1), t
	}
}

func joinCoeff(c *big.Rat, base Expr) Expr {
	if c.Cmp(ratOne) == 0 {
		return base
	}
	n := &Num{val: new(big.Rat).Set(c)}
	if m, ok := base.(*Mul); ok {
		return &Mul{factors: append([]Expr{n}, m.factors...)}
	}
	return &Mul{factors: []Expr{n, base}}
}

func splitPow(f Expr) (base, exp Expr) {
	if p, ok := f.(*Pow); ok {
		return p.base, p.exp
	}
	return f, N(1)
}

func factorString(f Expr) string {
	if _, ok := f.(*Add); ok {
		return "(" + f.String() + ")"
	}
	return f.String()
}

func powFactorString(base Expr, exp Expr) string {
	bs := base.String()
	switch base.(type) {
	case *Add, *Mul, *Pow:
		bs = "(" + bs + ")"
	default:
		if strings.HasPrefix(bs, "-") {
			bs = "(" + bs + ")"
		}
	}
	if n, ok := exp.(*Num); ok && n.val.Cmp(ratOne) == 0 {
		return bs
	}
	es := exp.String()
	if strings.ContainsAny(es, "+-*/^ ") {
		es = "(" + es + ")"
	}
	return bs + "^" + es
}

func ratPow(r *big.Rat, n int64) *big.Rat {
	neg := n < 0
	if neg {
		n = -n
	}
	acc := new(big.Rat).SetInt64(1)
	base := new(big.Rat).Set(r)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			acc.Mul(acc, base)
		}
		base.Mul(base, base)
	}
	if neg {
		acc.Inv(acc)
	}
	return acc
}

func ratSqrt(r *big.Rat) (*big.Rat, bool) {
	if r.Sign() < 0 {
		return nil, false
	}
	num := new(big.Int).Sqrt(r.Num())
	den := new(big.Int).Sqrt(r.Denom())
	if new(big.Int).Mul(num, num).Cmp(r.Num()) != 0 {
		return nil, false
	}
	if new(big.Int).Mul(den, den).Cmp(r.Denom()) != 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(num, den), true
}

// Predicates and queries

func IsZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Sign() == 0
}

func IsOne(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(ratOne) == 0
}

// IsNumber reports whether the expression folds to an exact rational.
func IsNumber(e Expr) bool {
	_, ok := e.evalRat()
	return ok
}

func RatValue(e Expr) (*big.Rat, bool) { return e.evalRat() }

func Float64(e Expr) (float64, bool) {
	r, ok := e.evalRat()
	if !ok {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

// EvalComplex evaluates the expression with every free symbol bound.
func EvalComplex(e Expr, vars map[string]complex128) (complex128, error) {
	return e.evalComplex(vars)
}

// ContainsSym reports whether the named symbol occurs in the expression.
func ContainsSym(e Expr, name string) bool {
	switch v := e.(type) {
	case *Num:
		return false
	case *Sym:
		return v.name == name
	case *Add:
		for _, t := range v.terms {
			if ContainsSym(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if ContainsSym(f, name) {
				return true
			}
		}
	case *Pow:
		return ContainsSym(v.base, name) || ContainsSym(v.exp, name)
	case *Fn:
		return ContainsSym(v.arg, name)
	}
	return false
}

// Coerce converts a constructor argument to an expression. Strings go
// through the parser, so "1/(s+3)" is as valid as a plain number.
func Coerce(v any) (Expr, error) {
	switch x := v.(type) {
	case Expr:
		return x, nil
	case int:
		return N(int64(x)), nil
	case int64:
		return N(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("expr: %v is not a finite value", x)
		}
		return Float(x), nil
	case string:
		return Parse(x)
	default:
		return nil, fmt.Errorf("expr: cannot use %T as an expression", v)
	}
}
