package expr

import (
	"fmt"
	"math/big"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Grammar for the textual expression form used by element parameters,
// e.g. "10", "2.5e-3", "1/(s + 3)", "4*cos(omega_1*t)".

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/^()]`},
})

type astExpr struct {
	First *astTerm     `parser:"@@"`
	Rest  []*astOpTerm `parser:"@@*"`
}

type astOpTerm struct {
	Op   string   `parser:"@('+' | '-')"`
	Term *astTerm `parser:"@@"`
}

type astTerm struct {
	First *astUnary     `parser:"@@"`
	Rest  []*astOpUnary `parser:"@@*"`
}

type astOpUnary struct {
	Op    string    `parser:"@('*' | '/')"`
	Unary *astUnary `parser:"@@"`
}

type astUnary struct {
	Neg   bool      `parser:"@'-'?"`
	Power *astPower `parser:"@@"`
}

type astPower struct {
	Base *astPrimary `parser:"@@"`
	Exp  *astUnary   `parser:"('^' @@)?"`
}

type astPrimary struct {
	Number *string  `parser:"@Number"`
	Call   *astCall `parser:"| @@"`
	Sub    *astExpr `parser:"| '(' @@ ')'"`
}

type astCall struct {
	Name string   `parser:"@Ident"`
	Arg  *astExpr `parser:"('(' @@ ')')?"`
}

var exprParser = participle.MustBuild[astExpr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse builds a canonical expression from its textual form.
func Parse(input string) (Expr, error) {
	ast, err := exprParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("expr: parse %q: %w", input, err)
	}
	return ast.build()
}

// MustParse is Parse for compile-time-constant inputs.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

func (a *astExpr) build() (Expr, error) {
	acc, err := a.First.build()
	if err != nil {
		return nil, err
	}
	for _, r := range a.Rest {
		t, err := r.Term.build()
		if err != nil {
			return nil, err
		}
		if r.Op == "-" {
			acc = SubOf(acc, t)
		} else {
			acc = AddOf(acc, t)
		}
	}
	return acc, nil
}

func (a *astTerm) build() (Expr, error) {
	acc, err := a.First.build()
	if err != nil {
		return nil, err
	}
	for _, r := range a.Rest {
		u, err := r.Unary.build()
		if err != nil {
			return nil, err
		}
		if r.Op == "/" {
			acc = DivOf(acc, u)
		} else {
			acc = MulOf(acc, u)
		}
	}
	return acc, nil
}

func (a *astUnary) build() (Expr, error) {
	e, err := a.Power.build()
	if err != nil {
		return nil, err
	}
	if a.Neg {
		return NegOf(e), nil
	}
	return e, nil
}

func (a *astPower) build() (Expr, error) {
	base, err := a.Base.build()
	if err != nil {
		return nil, err
	}
	if a.Exp == nil {
		return base, nil
	}
	exp, err := a.Exp.build()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (a *astPrimary) build() (Expr, error) {
	switch {
	case a.Number != nil:
		r, ok := new(big.Rat).SetString(*a.Number)
		if !ok {
			return nil, fmt.Errorf("expr: bad number %q", *a.Number)
		}
		return &Num{val: r}, nil
	case a.Call != nil:
		return a.Call.build()
	case a.Sub != nil:
		return a.Sub.build()
	}
	return nil, fmt.Errorf("expr: empty expression")
}

func (a *astCall) build() (Expr, error) {
	if a.Arg == nil {
		return S(a.Name), nil
	}
	arg, err := a.Arg.build()
	if err != nil {
		return nil, err
	}
	return fnOf(a.Name, arg)
}
