package analysis

import (
	"math"
	"testing"

	"github.com/edp1096/symnet/pkg/oneport"
	"github.com/edp1096/symnet/pkg/twoport"
)

func TestFrequencyPointGeneration(t *testing.T) {
	ac, err := NewAC(1, 1000, 4, "DEC")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 10, 100, 1000}
	got := ac.Frequencies()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i, w := range want {
		if math.Abs(got[i]-w)/w > 1e-9 {
			t.Errorf("point %d = %g, want %g", i, got[i], w)
		}
	}

	lin, err := NewAC(0.5, 1.5, 3, "LIN")
	if err != nil {
		t.Fatal(err)
	}
	if f := lin.Frequencies(); f[1] != 1.0 {
		t.Errorf("middle LIN point = %g, want 1", f[1])
	}
}

func TestRejectsBadSweepParams(t *testing.T) {
	if _, err := NewAC(0, 10, 5, "DEC"); err == nil {
		t.Error("zero start frequency accepted")
	}
	if _, err := NewAC(1, 10, 1, "DEC"); err == nil {
		t.Error("single point accepted")
	}
	if _, err := NewAC(1, 10, 5, "LOG"); err == nil {
		t.Error("unknown sweep type accepted")
	}
}

func TestLowpassCorner(t *testing.T) {
	// RC lowpass with RC = 1/(2*pi): corner at 1 Hz.
	r, err := oneport.R(1)
	if err != nil {
		t.Fatal(err)
	}
	c, err := oneport.C(1 / (2 * math.Pi))
	if err != nil {
		t.Fatal(err)
	}
	network, err := twoport.LSection(r, c)
	if err != nil {
		t.Fatal(err)
	}

	vsrc, err := oneport.V(1)
	if err != nil {
		t.Fatal(err)
	}
	rs, err := oneport.R(1e-6)
	if err != nil {
		t.Fatal(err)
	}
	src, err := oneport.Ser(vsrc, rs)
	if err != nil {
		t.Fatal(err)
	}
	load, err := oneport.R(1e9)
	if err != nil {
		t.Fatal(err)
	}

	ac, err := NewAC(0.5, 1.5, 3, "LIN")
	if err != nil {
		t.Fatal(err)
	}
	if err := ac.Execute(src, network, load); err != nil {
		t.Fatal(err)
	}

	res := ac.GetResults()
	mags := res["H_MAG"]
	if len(mags) != 3 {
		t.Fatalf("got %d H_MAG points, want 3", len(mags))
	}
	corner := mags[1]
	if math.Abs(corner-1/math.Sqrt2) > 1e-3 {
		t.Errorf("|H| at corner = %g, want %g", corner, 1/math.Sqrt2)
	}
	if !(mags[0] > mags[1] && mags[1] > mags[2]) {
		t.Errorf("lowpass magnitude not decreasing: %v", mags)
	}
	phases := res["H_PHASE"]
	if math.Abs(phases[1]+45) > 0.5 {
		t.Errorf("phase at corner = %g, want -45", phases[1])
	}
}

func TestSweepRejectsDegenerateNetwork(t *testing.T) {
	r, err := oneport.R(10)
	if err != nil {
		t.Fatal(err)
	}
	network, err := twoport.Shunt(r)
	if err != nil {
		t.Fatal(err)
	}
	src, err := oneport.R(1)
	if err != nil {
		t.Fatal(err)
	}
	load, err := oneport.R(1)
	if err != nil {
		t.Fatal(err)
	}
	ac, err := NewAC(1, 10, 3, "LIN")
	if err != nil {
		t.Fatal(err)
	}
	if err := ac.Execute(src, network, load); err == nil {
		t.Error("shunt network has no Y representation, sweep should fail")
	}
}
