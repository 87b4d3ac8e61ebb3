package twoport

import (
	"github.com/edp1096/symnet/pkg/expr"
	"github.com/edp1096/symnet/pkg/oneport"
)

// Terminal reductions close one port of a two-port and hand back the
// Thevenin or Norton equivalent seen at the other.

// Load terminates port 2 with a one-port and returns the Thevenin
// equivalent seen looking into port 1.
func (tp *TwoPort) Load(op *oneport.OnePort) (*oneport.OnePort, error) {
	if err := checkOnePorts(op); err != nil {
		return nil, err
	}
	sh, err := Shunt(op)
	if err != nil {
		return nil, err
	}
	loaded, err := Chain(tp, sh)
	if err != nil {
		return nil, err
	}
	return loaded.theveninAt(1)
}

// Source terminates port 1 with a one-port and returns the Thevenin
// equivalent seen looking into port 2.
func (tp *TwoPort) Source(op *oneport.OnePort) (*oneport.OnePort, error) {
	if err := checkOnePorts(op); err != nil {
		return nil, err
	}
	sh, err := Shunt(op)
	if err != nil {
		return nil, err
	}
	driven, err := Chain(sh, tp)
	if err != nil {
		return nil, err
	}
	return driven.theveninAt(2)
}

// ShortCircuit shorts the given port and returns the Norton equivalent
// seen at the other one.
func (tp *TwoPort) ShortCircuit(port int) (*oneport.OnePort, error) {
	if err := checkPort(port); err != nil {
		return nil, err
	}
	other := 3 - port
	y := tp.Y()
	yp, err := oneport.Y(y.At(other-1, other-1))
	if err != nil {
		return nil, err
	}
	var isc expr.Quantity
	if other == 1 {
		isc = tp.I1sc()
	} else {
		isc = tp.I2sc()
	}
	out, err := oneport.Par(yp, oneport.Iq(isc))
	if err != nil {
		return nil, err
	}
	if y.Degenerate() {
		out = out.MarkDegenerate()
	}
	return out, nil
}

// OpenCircuit opens the given port and returns the Thevenin equivalent
// seen at the other one.
func (tp *TwoPort) OpenCircuit(port int) (*oneport.OnePort, error) {
	if err := checkPort(port); err != nil {
		return nil, err
	}
	return tp.theveninAt(3 - port)
}

func (tp *TwoPort) theveninAt(port int) (*oneport.OnePort, error) {
	z := tp.Z()
	zp, err := oneport.Z(z.At(port-1, port-1))
	if err != nil {
		return nil, err
	}
	var voc expr.Quantity
	if port == 1 {
		voc = tp.V1oc()
	} else {
		voc = tp.V2oc()
	}
	out, err := oneport.Ser(zp, oneport.Vq(voc))
	if err != nil {
		return nil, err
	}
	if z.Degenerate() {
		out = out.MarkDegenerate()
	}
	return out, nil
}
