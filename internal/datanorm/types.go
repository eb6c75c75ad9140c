package datanorm

import "fmt"

// Record is one parsed CSV data row: header name -> cell value. Headers keeps
// the original column order so callers can iterate deterministically.
type Record struct {
	Line    int
	Headers []string
	Values  map[string]string
}

// Get returns the cell under header, or "" when the column is missing.
func (r Record) Get(header string) string {
	return r.Values[header]
}

// ParseError reports CSV text that is not well-formed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed CSV at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed CSV: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
