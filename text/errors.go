package text

import "fmt"

// ParseError describes a content line that could not be split into group,
// name, parameters and value. The reader reports it as a warning and skips
// the line.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcard: syntax error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}
