// Package analysis runs numeric frequency sweeps over the symbolic network
// algebra: a source one-port driving a two-port into a load one-port.
package analysis

import (
	"math"
	"math/cmplx"
)

type BaseAnalysis struct {
	results map[string][]float64
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{results: make(map[string][]float64)}
}

// StoreACResult appends one frequency point, splitting each complex value
// into NAME_MAG and NAME_PHASE series. Phase is in degrees.
func (a *BaseAnalysis) StoreACResult(freq float64, solution map[string]complex128) {
	a.results["FREQ"] = append(a.results["FREQ"], freq)

	for name, value := range solution {
		magName := name + "_MAG"
		a.results[magName] = append(a.results[magName], cmplx.Abs(value))

		phaseName := name + "_PHASE"
		phase := cmplx.Phase(value) * 180.0 / math.Pi
		a.results[phaseName] = append(a.results[phaseName], phase)
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}
