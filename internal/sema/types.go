package sema

// Type is the static type tag of an expression or variable.
type Type uint8

const (
	// TypeUnknown is not yet known, or already reported as wrong.
	// It never triggers a second diagnostic.
	TypeUnknown Type = iota
	TypeInt
	TypeBool
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// IsKnown reports whether t is a concrete type.
func (t Type) IsKnown() bool { return t != TypeUnknown }

// accepts reports whether a value of type got may be used where want is
// required. Unknown on either side is accepted.
func accepts(want, got Type) bool {
	return !want.IsKnown() || !got.IsKnown() || want == got
}
