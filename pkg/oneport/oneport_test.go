package oneport

import (
	"errors"
	"testing"

	"github.com/edp1096/symnet/pkg/expr"
)

func mustPort(p *OnePort, err error) *OnePort {
	if err != nil {
		panic(err)
	}
	return p
}

func simplified(t *testing.T, p *OnePort) *OnePort {
	t.Helper()
	s, err := p.Simplify()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSeriesResistors(t *testing.T) {
	net := mustPort(Ser(mustPort(R(10)), mustPort(R(5))))
	got := simplified(t, net)
	if got.Kind() != KindR {
		t.Fatalf("got kind %s, want R", got.Kind())
	}
	if !got.Z().Equal(expr.N(15)) {
		t.Errorf("Z = %s, want 15", got.Z())
	}
	if !got.Voc().IsZero() {
		t.Errorf("Voc = %s, want 0", got.Voc())
	}
}

func TestSeriesInductors(t *testing.T) {
	net := mustPort(Ser(mustPort(L(10)), mustPort(L(5))))
	got := simplified(t, net)
	if got.Kind() != KindL {
		t.Fatalf("got kind %s, want L", got.Kind())
	}
	want := expr.MulOf(expr.N(15), expr.LaplaceS())
	if !got.Z().Equal(want) {
		t.Errorf("Z = %s, want 15*s", got.Z())
	}
}

func TestSeriesInductorInitialCurrentMismatch(t *testing.T) {
	net := mustPort(Ser(mustPort(L(10, 1)), mustPort(L(5, 2))))
	if _, err := net.Simplify(); !errors.Is(err, ErrIncompatibleCombination) {
		t.Errorf("got %v, want ErrIncompatibleCombination", err)
	}
}

func TestSeriesCapacitors(t *testing.T) {
	net := mustPort(Ser(mustPort(C(10)), mustPort(C(15))))
	got := simplified(t, net)
	if got.Kind() != KindC {
		t.Fatalf("got kind %s, want C", got.Kind())
	}
	if !got.Params()[0].Equal(expr.N(6)) {
		t.Errorf("C = %s, want 6", got.Params()[0])
	}
	want := expr.DivOf(expr.N(1), expr.MulOf(expr.N(6), expr.LaplaceS()))
	if !got.Z().Equal(want) {
		t.Errorf("Z = %s, want 1/(6*s)", got.Z())
	}
}

func TestParallelResistors(t *testing.T) {
	net := mustPort(Par(mustPort(R(10)), mustPort(R(15))))
	got := simplified(t, net)
	if got.Kind() != KindR || !got.Z().Equal(expr.N(6)) {
		t.Errorf("got %s with Z = %s, want R(6)", got, got.Z())
	}
}

func TestSeriesDCSources(t *testing.T) {
	net := mustPort(Ser(mustPort(Vdc(10)), mustPort(Vdc(5))))
	got := simplified(t, net)
	if got.Kind() != KindV {
		t.Fatalf("got kind %s, want V", got.Kind())
	}
	want := expr.DivOf(expr.N(15), expr.LaplaceS())
	if !got.Voc().Expr.Equal(want) {
		t.Errorf("Voc = %s, want 15/s", got.Voc())
	}
	if !got.Voc().DC {
		t.Error("dc assumption lost in combination")
	}
	tv, err := got.TimeVoc()
	if err != nil {
		t.Fatal(err)
	}
	if !tv.Equal(expr.N(15)) {
		t.Errorf("voc(t) = %s, want 15", tv)
	}
}

func TestDuality(t *testing.T) {
	r := mustPort(R(10))
	if !r.Y().Equal(expr.F(1, 10)) {
		t.Errorf("Y = %s, want 1/10", r.Y())
	}
	g := mustPort(G(2))
	if !g.Z().Equal(expr.F(1, 2)) {
		t.Errorf("Z = %s, want 1/2", g.Z())
	}
	l := mustPort(L("L_1"))
	want := expr.DivOf(expr.N(1), expr.MulOf(expr.LaplaceS(), expr.S("L_1")))
	if !l.Y().Equal(want) {
		t.Errorf("Y = %s, want 1/(L_1*s)", l.Y())
	}
}

func TestParallelUnequalVoltageSources(t *testing.T) {
	_, err := Par(mustPort(Vdc(1)), mustPort(Vdc(2)))
	if !errors.Is(err, ErrIncompatibleCombination) {
		t.Errorf("got %v, want ErrIncompatibleCombination", err)
	}
}

func TestParallelVoltageSourceDominates(t *testing.T) {
	net := mustPort(Par(mustPort(Vdc(5)), mustPort(R(10))))
	if !expr.IsZero(net.Z()) {
		t.Errorf("Z = %s, want 0", net.Z())
	}
	want := expr.DivOf(expr.N(5), expr.LaplaceS())
	if !net.Voc().Expr.Equal(want) {
		t.Errorf("Voc = %s, want 5/s", net.Voc())
	}
}

func TestSeriesCurrentSourceRejected(t *testing.T) {
	_, err := Ser(mustPort(R(1)), mustPort(Idc(1)))
	if !errors.Is(err, ErrIncompatibleCombination) {
		t.Errorf("got %v, want ErrIncompatibleCombination", err)
	}
}

func TestPureSourceConversionDegenerate(t *testing.T) {
	v := mustPort(V(5))
	n := v.Norton()
	if !n.Degenerate() {
		t.Error("Norton view of a pure voltage source must be degenerate")
	}
	i := mustPort(I(2))
	th := i.Thevenin()
	if !th.Degenerate() {
		t.Error("Thevenin view of a pure current source must be degenerate")
	}
}

func TestFlattenNestedSeries(t *testing.T) {
	inner := mustPort(Ser(mustPort(R(2)), mustPort(R(3))))
	net := mustPort(Ser(mustPort(R(1)), inner))
	got := simplified(t, net)
	if got.Kind() != KindR || !got.Z().Equal(expr.N(6)) {
		t.Errorf("got %s with Z = %s, want R(6)", got, got.Z())
	}
}

func TestZeroSourceElision(t *testing.T) {
	net := mustPort(Ser(mustPort(R(5)), mustPort(V(0))))
	got := simplified(t, net)
	if got.Kind() != KindR || !got.Z().Equal(expr.N(5)) {
		t.Errorf("got %s, want R(5)", got)
	}
}

func TestNegativeParameterRejected(t *testing.T) {
	for _, build := range []func() (*OnePort, error){
		func() (*OnePort, error) { return R(-1) },
		func() (*OnePort, error) { return L(-2) },
		func() (*OnePort, error) { return C(-3) },
		func() (*OnePort, error) { return G(-4) },
	} {
		if _, err := build(); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("got %v, want ErrInvalidParameter", err)
		}
	}
}

func TestACSource(t *testing.T) {
	src := mustPort(Vac(10))
	s := expr.LaplaceS()
	w := expr.Omega()
	den := expr.AddOf(expr.PowOf(s, expr.N(2)), expr.PowOf(w, expr.N(2)))
	want := expr.DivOf(expr.MulOf(expr.N(10), s), den)
	if !src.Voc().Expr.Equal(want) {
		t.Errorf("Voc = %s, want 10*s/(s^2 + omega_1^2)", src.Voc())
	}
	tv, err := src.TimeVoc()
	if err != nil {
		t.Fatal(err)
	}
	wantT := expr.MulOf(expr.N(10), expr.CosOf(expr.MulOf(w, expr.TimeT())))
	if !tv.Equal(wantT) {
		t.Errorf("voc(t) = %s, want 10*cos(omega_1*t)", tv)
	}
}

func TestZeroElementsElide(t *testing.T) {
	ser := simplified(t, mustPort(Ser(mustPort(R(10)), mustPort(Z(0)))))
	if ser.Kind() != KindR {
		t.Fatalf("got kind %s, want R", ser.Kind())
	}
	if !ser.Z().Equal(expr.N(10)) {
		t.Errorf("series Z = %s, want 10", ser.Z())
	}
	par := simplified(t, mustPort(Par(mustPort(R(10)), mustPort(Y(0)))))
	if par.Kind() != KindR {
		t.Fatalf("got kind %s, want R", par.Kind())
	}
	if !par.Z().Equal(expr.N(10)) {
		t.Errorf("parallel Z = %s, want 10", par.Z())
	}
}

func TestTimeDomainImmittance(t *testing.T) {
	c := mustPort(C(2))
	tz, err := c.TimeZ()
	if err != nil {
		t.Fatal(err)
	}
	if !tz.Equal(expr.F(1, 2)) {
		t.Errorf("z(t) = %s, want 1/2", tz)
	}
	l := mustPort(L(4))
	ty, err := l.TimeY()
	if err != nil {
		t.Fatal(err)
	}
	if !ty.Equal(expr.F(1, 4)) {
		t.Errorf("y(t) = %s, want 1/4", ty)
	}
}

func TestConnectionMethods(t *testing.T) {
	ser := simplified(t, mustPort(mustPort(R(10)).SeriesWith(mustPort(R(5)))))
	if !ser.Z().Equal(expr.N(15)) {
		t.Errorf("series Z = %s, want 15", ser.Z())
	}
	par := simplified(t, mustPort(mustPort(R(10)).ParallelWith(mustPort(R(40)))))
	if !par.Z().Equal(expr.N(8)) {
		t.Errorf("parallel Z = %s, want 8", par.Z())
	}
}

func TestACSourcePhase(t *testing.T) {
	src := mustPort(Vac(10, "phi"))
	s := expr.LaplaceS()
	w := expr.Omega()
	phi := expr.S("phi")
	num := expr.AddOf(
		expr.MulOf(s, expr.CosOf(phi)),
		expr.MulOf(w, expr.SinOf(phi)),
	)
	den := expr.AddOf(expr.PowOf(s, expr.N(2)), expr.PowOf(w, expr.N(2)))
	want := expr.DivOf(expr.MulOf(expr.N(10), num), den)
	if !src.Voc().Expr.Equal(want) {
		t.Errorf("Voc = %s, want 10*(s*cos(phi) + omega_1*sin(phi))/(s^2 + omega_1^2)", src.Voc())
	}
	if !src.Voc().AC {
		t.Error("ac source should carry the ac assumption")
	}
}

func TestTimeDomainSource(t *testing.T) {
	src := mustPort(Vt("4*cos(omega_1*t)"))
	s := expr.LaplaceS()
	w := expr.Omega()
	den := expr.AddOf(expr.PowOf(s, expr.N(2)), expr.PowOf(w, expr.N(2)))
	want := expr.DivOf(expr.MulOf(expr.N(4), s), den)
	if !src.Voc().Expr.Equal(want) {
		t.Errorf("Voc = %s", src.Voc())
	}
}

func TestXtal(t *testing.T) {
	x := mustPort(Xtal(30, 20, 10, 5))
	if x.Kind() != KindXtal {
		t.Fatalf("got kind %s", x.Kind())
	}
	net, err := x.Expand()
	if err != nil {
		t.Fatal(err)
	}
	if !x.Y().Equal(net.Y()) {
		t.Errorf("compound admittance %s differs from expansion %s", x.Y(), net.Y())
	}
	if _, err := mustPort(R(1)).Expand(); !errors.Is(err, ErrUnsupportedShape) {
		t.Error("expected ErrUnsupportedShape for primitive expansion")
	}
}

func TestFerriteBead(t *testing.T) {
	fb := mustPort(FerriteBead(1, 100, 2, 3))
	if fb.Kind() != KindFerriteBead {
		t.Fatalf("got kind %s", fb.Kind())
	}
	if fb.IsVoltageSource() || fb.IsCurrentSource() {
		t.Error("passive compound classified as a source")
	}
}
