package expr

import "testing"

func TestLaplaceTable(t *testing.T) {
	s := S("s")
	tt := TimeT()
	w := Omega()
	cases := []struct {
		in   Expr
		want Expr
	}{
		{N(5), DivOf(N(5), s)},
		{tt, DivOf(N(1), PowOf(s, N(2)))},
		{PowOf(tt, N(2)), DivOf(N(2), PowOf(s, N(3)))},
		{ExpOf(MulOf(N(-3), tt)), DivOf(N(1), AddOf(s, N(3)))},
		{CosOf(MulOf(w, tt)), DivOf(s, AddOf(PowOf(s, N(2)), PowOf(w, N(2))))},
		{SinOf(MulOf(w, tt)), DivOf(w, AddOf(PowOf(s, N(2)), PowOf(w, N(2))))},
		{DeltaOf(tt), N(1)},
		{S("V0"), DivOf(S("V0"), s)},
	}
	for _, c := range cases {
		got, err := Laplace(c.in)
		if err != nil {
			t.Errorf("laplace %s: %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("laplace %s: got %s, want %s", c.in, got, c.want)
		}
	}
}

func TestInverseLaplaceTable(t *testing.T) {
	s := S("s")
	tt := TimeT()
	w := Omega()
	cases := []struct {
		in   Expr
		want Expr
	}{
		{DivOf(N(5), s), N(5)},
		{DivOf(N(1), PowOf(s, N(2))), tt},
		{DivOf(N(1), AddOf(s, N(3))), ExpOf(MulOf(N(-3), tt))},
		{DivOf(s, AddOf(PowOf(s, N(2)), PowOf(w, N(2)))), CosOf(MulOf(w, tt))},
		{DivOf(w, AddOf(PowOf(s, N(2)), PowOf(w, N(2)))), SinOf(MulOf(w, tt))},
		{N(1), DeltaOf(tt)},
	}
	for _, c := range cases {
		got, err := InverseLaplace(c.in)
		if err != nil {
			t.Errorf("inverse laplace %s: %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("inverse laplace %s: got %s, want %s", c.in, got, c.want)
		}
	}
}

func TestLaplaceRoundTrip(t *testing.T) {
	tt := TimeT()
	signals := []Expr{
		N(2),
		MulOf(N(3), tt),
		ExpOf(MulOf(N(-1), S("a"), tt)),
		MulOf(N(4), CosOf(MulOf(Omega(), tt))),
	}
	for _, sig := range signals {
		lt, err := Laplace(sig)
		if err != nil {
			t.Fatalf("laplace %s: %v", sig, err)
		}
		back, err := InverseLaplace(lt)
		if err != nil {
			t.Fatalf("inverse laplace %s: %v", lt, err)
		}
		if !back.Equal(sig) {
			t.Errorf("round trip %s: got %s", sig, back)
		}
	}
}

func TestInverseLaplaceUnsupported(t *testing.T) {
	if _, err := InverseLaplace(S("s")); err == nil {
		t.Error("expected error for bare s")
	}
}
