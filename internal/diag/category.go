package diag

import (
	"fmt"
	"strings"
)

// Category is the pipeline phase a diagnostic comes from.
type Category uint8

const (
	CatUnknown Category = iota
	// CatLexical is reported by the lexer.
	CatLexical
	// CatSyntax is reported by the parser.
	CatSyntax
	// CatSemantic is reported by the validator (and by the parser for undefined labels).
	CatSemantic
	// CatRuntime is reported by the interpreter; at most one per run.
	CatRuntime
)

// String returns the stable upper-case name used in every output format.
func (c Category) String() string {
	switch c {
	case CatLexical:
		return "LEXICAL"
	case CatSyntax:
		return "SYNTAX"
	case CatSemantic:
		return "SEMANTIC"
	case CatRuntime:
		return "RUNTIME"
	}
	return "UNKNOWN"
}

// ParseCategory is the inverse of Category.String (case-insensitive).
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LEXICAL":
		return CatLexical, nil
	case "SYNTAX":
		return CatSyntax, nil
	case "SEMANTIC":
		return CatSemantic, nil
	case "RUNTIME":
		return CatRuntime, nil
	}
	return CatUnknown, fmt.Errorf("invalid diagnostic category: %q (expected: lexical|syntax|semantic|runtime)", s)
}
