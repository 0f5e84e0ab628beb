// Package value defines the closed set of values a program manipulates.
package value

import (
	"strconv"
)

// Kind identifies which field of a Value is meaningful.
type Kind uint8

const (
	// KindInvalid is the zero Value; it is never produced by evaluation.
	KindInvalid Kind = iota
	// KindInt represents a signed integer value.
	KindInt
	// KindBool represents a boolean value.
	KindBool
	// KindString represents a string value (color names).
	KindString
)

// String returns a human-readable name for the value kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a tagged union {Int, Bool, Str}.
type Value struct {
	Kind Kind
	Int  int
	Bool bool
	Str  string
}

func Int(n int) Value       { return Value{Kind: KindInt, Int: n} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// IsValid reports whether v holds one of the three variants.
func (v Value) IsValid() bool { return v.Kind != KindInvalid }

// AsInt returns the integer payload when v is an Int.
func (v Value) AsInt() (int, bool) {
	return v.Int, v.Kind == KindInt
}

// AsBool returns the boolean payload when v is a Bool.
func (v Value) AsBool() (bool, bool) {
	return v.Bool, v.Kind == KindBool
}

// AsString returns the string payload when v is a String.
func (v Value) AsString() (string, bool) {
	return v.Str, v.Kind == KindString
}

// Equal compares kind and payload. Values of different kinds are never equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindBool:
		return v.Bool == o.Bool
	case KindString:
		return v.Str == o.Str
	}
	return true
}

// String renders ints and bools as literals and strings quoted.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return strconv.Quote(v.Str)
	}
	return "<invalid>"
}
