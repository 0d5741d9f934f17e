package scribe

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
)

// Outcome tells the reader what to do with a parsed property occurrence.
type Outcome int

const (
	// OK means the value was decoded into Result.Property.
	OK Outcome = iota
	// Skipped means the property is intentionally left out of the record.
	Skipped
	// Embedded means the value is a nested record that the reader has to
	// read and hand to Result.Nested.Inject. Result.Property is added to the
	// record like an OK result.
	Embedded
	// Failed means the value could not be interpreted at all.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Skipped:
		return "skipped"
	case Embedded:
		return "embedded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Nested describes where the nested record of an Embedded result comes from.
// Text holds an inline record (version 3.0); when it is empty in the text
// syntax, the record follows as a BEGIN/END block (version 2.1). Element is
// the nested hCard element.
type Nested struct {
	Text    string
	Element *html.Node
	Inject  func(*vcard.VCard)
}

// Result is the outcome of parsing one property occurrence.
type Result struct {
	Outcome  Outcome
	Property vcard.Property
	Code     diag.Code
	Message  string
	Nested   *Nested
}

// Decoded returns an OK result.
func Decoded(p vcard.Property) Result {
	return Result{Outcome: OK, Property: p}
}

// Skip returns a Skipped result.
func Skip(code diag.Code, args ...any) Result {
	return Result{Outcome: Skipped, Code: code, Message: diag.Message(code, args...)}
}

// Fail returns a Failed result.
func Fail(code diag.Code, args ...any) Result {
	return Result{Outcome: Failed, Code: code, Message: diag.Message(code, args...)}
}

// Embed returns an Embedded result for p.
func Embed(p vcard.Property, nested *Nested) Result {
	return Result{Outcome: Embedded, Property: p, Nested: nested}
}
