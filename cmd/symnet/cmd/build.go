package cmd

import (
	"fmt"

	"github.com/edp1096/symnet/pkg/oneport"
	"github.com/edp1096/symnet/pkg/twoport"
)

// sectionArity maps the buildable section names to the number of element
// arguments each takes. Elements are impedance expressions in s.
var sectionArity = map[string]int{
	"series":      1,
	"shunt":       1,
	"lsection":    2,
	"tsection":    3,
	"pisection":   3,
	"transformer": 1,
	"gyrator":     1,
}

func buildSection(name string, args []string) (*twoport.TwoPort, error) {
	want, ok := sectionArity[name]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", name)
	}
	if len(args) != want {
		return nil, fmt.Errorf("section %q takes %d element(s), got %d", name, want, len(args))
	}

	switch name {
	case "transformer":
		return twoport.IdealTransformer(args[0])
	case "gyrator":
		return twoport.IdealGyrator(args[0])
	}

	ops := make([]*oneport.OnePort, len(args))
	for i, a := range args {
		op, err := oneport.Z(a)
		if err != nil {
			return nil, fmt.Errorf("element %d: %v", i+1, err)
		}
		ops[i] = op
	}

	switch name {
	case "series":
		return twoport.Series(ops[0])
	case "shunt":
		return twoport.Shunt(ops[0])
	case "lsection":
		return twoport.LSection(ops[0], ops[1])
	case "tsection":
		return twoport.TSection(ops[0], ops[1], ops[2])
	case "pisection":
		return twoport.PiSection(ops[0], ops[1], ops[2])
	}
	return nil, fmt.Errorf("unknown section %q", name)
}
