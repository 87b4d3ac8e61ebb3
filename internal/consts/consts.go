package consts

const (
	LaplaceVar = "s"       // Complex frequency symbol
	TimeVar    = "t"       // Time symbol
	OmegaVar   = "omega_1" // Shared angular frequency symbol for ac sources
)
