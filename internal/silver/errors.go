package silver

import "fmt"

// ParseError reports a field that could not be parsed into its target
// representation (dates, mostly). Fatal: there is no row-level recovery.
type ParseError struct {
	Source string
	Column string
	Value  string
	Row    int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %d: cannot parse %s value %q: %v",
		e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TypeError reports a field that failed numeric coercion.
type TypeError struct {
	Source string
	Column string
	Value  string
	Row    int
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s row %d: %s value %q is not numeric",
		e.Source, e.Row, e.Column, e.Value)
}
