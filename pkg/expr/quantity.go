package expr

// Quantity couples an s-domain expression with its electrical kind and the
// signal assumptions that survive algebraic combination.

type Kind int

const (
	KindVoltage Kind = iota
	KindCurrent
	KindImpedance
	KindAdmittance
	KindTransfer
)

func (k Kind) String() string {
	switch k {
	case KindVoltage:
		return "V"
	case KindCurrent:
		return "I"
	case KindImpedance:
		return "Z"
	case KindAdmittance:
		return "Y"
	case KindTransfer:
		return "H"
	}
	return "?"
}

type Quantity struct {
	Expr Expr
	Kind Kind

	// Signal assumptions. DC and AC are exclusive in practice; Causal
	// marks signals that are zero for t < 0.
	DC     bool
	AC     bool
	Causal bool
}

func Voltage(e Expr) Quantity    { return Quantity{Expr: e, Kind: KindVoltage} }
func Current(e Expr) Quantity    { return Quantity{Expr: e, Kind: KindCurrent} }
func Impedance(e Expr) Quantity  { return Quantity{Expr: e, Kind: KindImpedance} }
func Admittance(e Expr) Quantity { return Quantity{Expr: e, Kind: KindAdmittance} }
func Transfer(e Expr) Quantity   { return Quantity{Expr: e, Kind: KindTransfer} }

func (q Quantity) IsZero() bool { return IsZero(q.Expr) }

func (q Quantity) String() string { return q.Expr.String() }

// As reinterprets the value under another kind; used when an impedance
// scales a current into a voltage and similar conversions.
func (q Quantity) As(k Kind) Quantity {
	q.Kind = k
	return q
}

// Add sums two quantities. The assumptions survive only when both operands
// share them; a zero operand is neutral and imposes nothing.
func (q Quantity) Add(o Quantity) Quantity {
	if o.IsZero() {
		return q
	}
	if q.IsZero() {
		o.Kind = q.Kind
		return o
	}
	return Quantity{
		Expr:   AddOf(q.Expr, o.Expr),
		Kind:   q.Kind,
		DC:     q.DC && o.DC,
		AC:     q.AC && o.AC,
		Causal: q.Causal && o.Causal,
	}
}

func (q Quantity) Sub(o Quantity) Quantity { return q.Add(o.Neg()) }

func (q Quantity) Neg() Quantity {
	q.Expr = NegOf(q.Expr)
	return q
}

// MulE scales by a dimensionless or immittance expression, keeping the
// signal assumptions.
func (q Quantity) MulE(e Expr) Quantity {
	q.Expr = MulOf(q.Expr, e)
	return q
}

func (q Quantity) DivE(e Expr) Quantity {
	q.Expr = DivOf(q.Expr, e)
	return q
}

func (q Quantity) Equal(o Quantity) bool { return q.Expr.Equal(o.Expr) }

// Time returns the causal time-domain form of an s-domain signal.
func (q Quantity) Time() (Expr, error) { return InverseLaplace(q.Expr) }
