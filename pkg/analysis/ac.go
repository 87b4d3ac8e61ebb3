package analysis

import (
	"fmt"
	"math"

	"github.com/edp1096/symnet/internal/consts"
	"github.com/edp1096/symnet/pkg/expr"
	"github.com/edp1096/symnet/pkg/numeric"
	"github.com/edp1096/symnet/pkg/oneport"
	"github.com/edp1096/symnet/pkg/twoport"
)

// ACAnalysis sweeps a terminated two-port over frequency. The source and
// load one-ports are taken in Norton form and stamped together with the
// two-port's Y parameters into a 2-node complex system; port voltages and
// the forward transfer are recorded per point.
type ACAnalysis struct {
	BaseAnalysis
	startFreq   float64
	stopFreq    float64
	numPoints   int
	pointsType  string // "DEC", "OCT", "LIN"
	frequencies []float64
}

func NewAC(fStart, fStop float64, nPoints int, pType string) (*ACAnalysis, error) {
	if fStart <= 0 || fStop <= 0 || fStop < fStart {
		return nil, fmt.Errorf("analysis: bad frequency range %g..%g", fStart, fStop)
	}
	if nPoints < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 points, got %d", nPoints)
	}
	switch pType {
	case "DEC", "OCT", "LIN":
	default:
		return nil, fmt.Errorf("analysis: unknown sweep type %q", pType)
	}
	ac := &ACAnalysis{
		BaseAnalysis: *NewBaseAnalysis(),
		startFreq:    fStart,
		stopFreq:     fStop,
		numPoints:    nPoints,
		pointsType:   pType,
	}
	ac.generateFrequencyPoints()
	return ac, nil
}

func (ac *ACAnalysis) Frequencies() []float64 { return ac.frequencies }

// Execute solves the terminated network at every sweep point. The two-port
// must have a Y representation; the terminations must have finite Norton
// admittances.
func (ac *ACAnalysis) Execute(src *oneport.OnePort, network *twoport.TwoPort, load *oneport.OnePort) error {
	if src == nil || network == nil || load == nil {
		return fmt.Errorf("analysis: nil sweep operand")
	}
	y := network.Y()
	if y.Degenerate() {
		return fmt.Errorf("analysis: network has no Y representation")
	}
	srcN := src.Norton()
	loadN := load.Norton()
	if srcN.Degenerate() || loadN.Degenerate() {
		return fmt.Errorf("analysis: termination has no Norton form")
	}

	sys, err := numeric.NewSystem(2)
	if err != nil {
		return err
	}
	defer sys.Destroy()

	i1y := network.I1y()
	i2y := network.I2y()

	for _, freq := range ac.frequencies {
		omega := 2 * math.Pi * freq
		vars := map[string]complex128{
			consts.LaplaceVar: complex(0, omega),
			consts.OmegaVar:   complex(omega, 0),
		}

		eval := func(e expr.Expr) (complex128, error) {
			v, err := expr.EvalComplex(e, vars)
			if err != nil {
				return 0, fmt.Errorf("analysis: f=%g: %v", freq, err)
			}
			return v, nil
		}

		y11, err := eval(y.M11())
		if err != nil {
			return err
		}
		y12, err := eval(y.M12())
		if err != nil {
			return err
		}
		y21, err := eval(y.M21())
		if err != nil {
			return err
		}
		y22, err := eval(y.M22())
		if err != nil {
			return err
		}
		ys, err := eval(srcN.Y())
		if err != nil {
			return err
		}
		yl, err := eval(loadN.Y())
		if err != nil {
			return err
		}
		isrc, err := eval(srcN.Isc().Expr)
		if err != nil {
			return err
		}
		iload, err := eval(loadN.Isc().Expr)
		if err != nil {
			return err
		}
		i1, err := eval(i1y.Expr)
		if err != nil {
			return err
		}
		i2, err := eval(i2y.Expr)
		if err != nil {
			return err
		}

		sys.Clear()
		sys.AddElement(1, 1, y11+ys)
		sys.AddElement(1, 2, y12)
		sys.AddElement(2, 1, y21)
		sys.AddElement(2, 2, y22+yl)
		sys.AddRHS(1, isrc-i1)
		sys.AddRHS(2, iload-i2)

		if err := sys.Solve(); err != nil {
			return fmt.Errorf("analysis: f=%g: %v", freq, err)
		}

		v1 := sys.Solution(1)
		v2 := sys.Solution(2)
		solution := map[string]complex128{
			"V(1)": v1,
			"V(2)": v2,
		}
		if v1 != 0 {
			solution["H"] = v2 / v1
		}
		ac.StoreACResult(freq, solution)
	}
	return nil
}

func (ac *ACAnalysis) generateFrequencyPoints() {
	ac.frequencies = make([]float64, ac.numPoints)

	switch ac.pointsType {
	case "DEC":
		logStart := math.Log10(ac.startFreq)
		logStop := math.Log10(ac.stopFreq)
		step := (logStop - logStart) / float64(ac.numPoints-1)
		for i := range ac.numPoints {
			ac.frequencies[i] = math.Pow(10, logStart+float64(i)*step)
		}

	case "OCT":
		logStart := math.Log2(ac.startFreq)
		logStop := math.Log2(ac.stopFreq)
		step := (logStop - logStart) / float64(ac.numPoints-1)
		for i := range ac.numPoints {
			ac.frequencies[i] = math.Pow(2, logStart+float64(i)*step)
		}

	case "LIN":
		step := (ac.stopFreq - ac.startFreq) / float64(ac.numPoints-1)
		for i := range ac.numPoints {
			ac.frequencies[i] = ac.startFreq + float64(i)*step
		}
	}
}
