package qdimacs

import "fmt"

// ErrorKind classifies parse failures.
type ErrorKind byte

const (
	// MalformedLine means a line did not match any form expected at
	// its position.
	MalformedLine ErrorKind = iota
	// UndeclaredVariable means a clause or quantifier block referenced
	// a variable id of zero or beyond the declared bound.
	UndeclaredVariable
	// DuplicateQuantification means a variable appeared in more than
	// one quantifier block.
	DuplicateQuantification
	// StructuralMismatch means a clause or block was missing its
	// terminating 0, or the input ended prematurely.
	StructuralMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedLine:
		return "malformed line"
	case UndeclaredVariable:
		return "undeclared variable"
	case DuplicateQuantification:
		return "duplicate quantification"
	case StructuralMismatch:
		return "structural mismatch"
	default:
		return "unknown error"
	}
}

// ParseError reports a parse failure with its position. Line and Col
// are 1-based; Col is 0 when the failure concerns the whole line.
type ParseError struct {
	Kind ErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("line %d, column %d: %s: %s", e.Line, e.Col, e.Kind, e.Msg)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
}
