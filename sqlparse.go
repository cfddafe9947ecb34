// Package sqlparse converts SQL source text into a syntax tree and
// serializes trees back into SQL text. It covers ANSI SQL plus common
// PostgreSQL syntax for SELECT, INSERT, UPDATE, DELETE, CREATE TABLE,
// CREATE INDEX, and CREATE TYPE. The package validates syntax only; it
// knows nothing about catalogs, types, or execution.
//
// Parsing is a pure function of its input. Distinct parses share only the
// read-only keyword and operator tables, so independent inputs may be
// parsed concurrently without locking.
package sqlparse

import "io"

// Parse converts src into a syntax tree rooted at a statement list node.
// label names the source in error positions and may be empty. When
// considerTypeParams is set, a parenthesized type parameter list in a
// column definition such as VARCHAR(255) is captured in the tree; otherwise
// it is parsed and discarded. On malformed input Parse returns a
// *ParseError and no tree.
func Parse(src, label string, considerTypeParams bool) (*SqlNode, error) {
	return newParser(src, label, considerTypeParams).parse()
}

// ParseReader reads r to the end, closes it, and parses the contents. The
// reader is closed even when reading fails; the parser does not support
// re-entry into a half consumed stream.
func ParseReader(r io.ReadCloser, label string, considerTypeParams bool) (*SqlNode, error) {
	b, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return Parse(string(b), label, considerTypeParams)
}
