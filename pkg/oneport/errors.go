package oneport

import "errors"

var (
	// ErrInvalidParameter reports a primitive built from a value that
	// violates a construction constraint.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrIncompatibleCombination reports a physically inconsistent
	// combination of pure sources or stored initial conditions.
	ErrIncompatibleCombination = errors.New("incompatible combination")

	// ErrUnsupportedShape reports an operand count or type an operation
	// cannot accept.
	ErrUnsupportedShape = errors.New("unsupported shape")
)
