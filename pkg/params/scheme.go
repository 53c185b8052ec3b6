package params

import "fmt"

// Scheme selects how a wrapped call's arguments are resolved onto declared
// parameters.
type Scheme int

const (
	// Positional binds parameters to arguments in declaration order: each
	// binder call consumes the next argument slot.
	Positional Scheme = iota
	// Named treats the argument list as alternating name/value pairs and
	// binds each parameter to the value following its declared name.
	Named
)

func (s Scheme) String() string {
	switch s {
	case Positional:
		return "positional"
	case Named:
		return "named"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// Mode selects between copying an argument's value into a parameter and
// aliasing the parameter to the caller's storage.
type Mode int

const (
	// Copy gives the parameter an independent value; later writes to the
	// parameter never reach the caller.
	Copy Mode = iota
	// RW shares storage with the caller's variable, so writes are visible
	// in both directions.
	RW
)

func (m Mode) String() string {
	switch m {
	case Copy:
		return "copy"
	case RW:
		return "rw"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Kind tags the shape a declared parameter expects. It is fixed by which
// binder function the declaration uses, never inferred from the argument.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}
