package toolchain

// DefaultCC is the compiler driver used when none is configured.
const DefaultCC = "cc"

// Toolchain names the driver binary and any extra flags appended to every
// compile or link invocation.
type Toolchain struct {
	CC      string
	CFlags  []string
	LDFlags []string
	Runner  Runner
}

// Default returns a toolchain that runs "cc" through real processes.
func Default() Toolchain {
	return Toolchain{CC: DefaultCC, Runner: NewExecRunner()}
}

// Driver returns the configured driver binary, falling back to DefaultCC.
func (t Toolchain) Driver() string {
	if t.CC == "" {
		return DefaultCC
	}
	return t.CC
}
