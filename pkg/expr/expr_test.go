package expr

import (
	"math/cmplx"
	"testing"
)

func TestCollectLikeTerms(t *testing.T) {
	s := S("s")
	sum := AddOf(MulOf(N(2), s), MulOf(N(3), s))
	want := MulOf(N(5), s)
	if !sum.Equal(want) {
		t.Errorf("got %s, want %s", sum, want)
	}
}

func TestCancellation(t *testing.T) {
	s := S("s")
	diff := SubOf(MulOf(N(2), s), MulOf(N(2), s))
	if !IsZero(diff) {
		t.Errorf("got %s, want 0", diff)
	}
}

func TestPowerMerge(t *testing.T) {
	s := S("s")
	p := MulOf(s, s, InvOf(s))
	if !p.Equal(s) {
		t.Errorf("got %s, want s", p)
	}
}

func TestNumericFold(t *testing.T) {
	e := MulOf(F(1, 2), N(4), PowOf(N(3), N(2)))
	if !e.Equal(N(18)) {
		t.Errorf("got %s, want 18", e)
	}
}

func TestZeroDivisionUnresolved(t *testing.T) {
	e := InvOf(N(0))
	if IsNumber(e) {
		t.Fatalf("0^-1 folded to a number: %s", e)
	}
	if !e.Equal(PowOf(N(0), N(-1))) {
		t.Errorf("got %s", e)
	}
}

func TestSqrtOfSquare(t *testing.T) {
	w := S("omega_1")
	e := SqrtOf(PowOf(w, N(2)))
	if !e.Equal(w) {
		t.Errorf("got %s, want omega_1", e)
	}
	if !SqrtOf(N(9)).Equal(N(3)) {
		t.Errorf("sqrt(9) = %s", SqrtOf(N(9)))
	}
}

func TestStringForms(t *testing.T) {
	s := S("s")
	cases := []struct {
		e    Expr
		want string
	}{
		{MulOf(N(5), s), "5*s"},
		{InvOf(s), "1/s"},
		{MulOf(F(1, 6), InvOf(s)), "1/(6*s)"},
		{AddOf(s, N(3)), "s + 3"},
		{SubOf(s, N(3)), "s - 3"},
		{DivOf(N(1), AddOf(s, N(3))), "1/(s + 3)"},
		{NegOf(S("a")), "-a"},
		{PowOf(s, N(2)), "s^2"},
		{DivOf(N(1), PowOf(s, N(2))), "1/s^2"},
	}
	for _, c := range cases {
		if got := c.e.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestSubst(t *testing.T) {
	s := S("s")
	e := DivOf(N(1), AddOf(s, N(3)))
	got := e.Subst("s", N(7))
	if !got.Equal(F(1, 10)) {
		t.Errorf("got %s, want 1/10", got)
	}
}

func TestDiff(t *testing.T) {
	s := S("s")
	d := PowOf(s, N(2)).Diff("s")
	if !d.Equal(MulOf(N(2), s)) {
		t.Errorf("got %s, want 2*s", d)
	}
	d = ExpOf(MulOf(N(-3), S("t"))).Diff("t")
	want := MulOf(N(-3), ExpOf(MulOf(N(-3), S("t"))))
	if !d.Equal(want) {
		t.Errorf("got %s, want %s", d, want)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Expr
	}{
		{"10", N(10)},
		{"2.5", F(5, 2)},
		{"1e3", N(1000)},
		{"1/(s + 3)", DivOf(N(1), AddOf(S("s"), N(3)))},
		{"2*s + 3", AddOf(MulOf(N(2), S("s")), N(3))},
		{"-s^2", NegOf(PowOf(S("s"), N(2)))},
		{"4*cos(omega_1*t)", MulOf(N(4), CosOf(MulOf(S("omega_1"), S("t"))))},
		{"sqrt(4)", N(2)},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("parse %q: %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("parse %q: got %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "2 +", "foo(1)", "(s"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("parse %q: expected error", in)
		}
	}
}

func TestCoerce(t *testing.T) {
	for _, v := range []any{10, int64(10), 10.0, "10"} {
		e, err := Coerce(v)
		if err != nil {
			t.Fatalf("coerce %v: %v", v, err)
		}
		if !e.Equal(N(10)) {
			t.Errorf("coerce %v: got %s", v, e)
		}
	}
	if _, err := Coerce(struct{}{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestEvalComplex(t *testing.T) {
	e := DivOf(N(1), AddOf(N(1), MulOf(N(2), S("s"))))
	got, err := EvalComplex(e, map[string]complex128{"s": 1i})
	if err != nil {
		t.Fatal(err)
	}
	want := 1 / (1 + 2i)
	if cmplx.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := EvalComplex(S("x"), nil); err == nil {
		t.Error("expected unbound symbol error")
	}
}
