// Package signal implements the typed, timestamped signal data model: the
// Empty / Constant / Sampled variants, their interpolation semantics, and
// the pairwise arithmetic/comparison/lattice algebra over them.
package signal

// Element is the closed set of element kinds a Signal can carry. bool
// cannot satisfy golang.org/x/exp/constraints.Ordered (it isn't ordered),
// so the constraint is declared locally rather than reused from there; see
// DESIGN.md.
type Element interface {
	bool | int64 | uint64 | float64
}

// Kind tags which concrete Element a signal carries, so kind can be
// inspected without type parameters leaking into non-generic call sites
// (trace lookups, parser error messages, CLI output).
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindUInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind tag for an Element type, selected via a type
// switch on the zero value so it works uniformly across the generic Signal
// constructors.
func KindOf[T Element]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int64:
		return KindInt
	case uint64:
		return KindUInt
	case float64:
		return KindFloat
	default:
		panic("unreachable element kind")
	}
}

// Interpolation selects how values between samples are produced.
type Interpolation int

const (
	Constant Interpolation = iota
	Linear
)

func (i Interpolation) String() string {
	if i == Linear {
		return "linear"
	}
	return "constant"
}
