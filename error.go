package sqlparse

import "fmt"

// ParseError is the single error kind produced by a parse. It carries the
// optional source label and the 1-based position of the offending token. The
// parser never recovers; the first error aborts the whole parse and no
// partial tree is returned.
type ParseError struct {
	// Label names the source, typically a file name. May be empty.
	Label string
	// Line and Col locate the offending token, both 1-based.
	Line int
	Col  int
	// Msg is a short description naming what was expected or found.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Label, e.Line, e.Col, e.Msg)
}
