// Package diag holds the diagnostics produced while reading and writing
// vCards: warnings tied to one property occurrence, never fatal to the record.
package diag

import (
	"fmt"
	"strings"
)

// Code identifies the kind of problem a warning reports.
type Code int

const (
	CodeMalformedLine Code = iota + 1
	CodeUnknownVersion
	CodeVersionUnsupported
	CodeQuotedPrintable
	CodeCharset
	CodeSkipped
	CodeParseFailed
	CodeEmbeddedUnsupported
	CodeEmbeddedDepth
	CodeEmbeddedOrphan
	CodeUnparseableDate
	CodeTextDateUnsupported
	CodeBadGeo
	CodeBadBase64
	CodeNoValue
	CodeBadXML
	CodeBadTimestamp
	CodeUnexpectedEnd
	CodeWriteFailed
	CodeJSONValue
)

var messages = map[Code]string{
	CodeMalformedLine:       "line is not a valid property line",
	CodeUnknownVersion:      "unknown version %q, keeping %s",
	CodeVersionUnsupported:  "property is not supported in version %s",
	CodeQuotedPrintable:     "quoted-printable value could not be decoded: %v",
	CodeCharset:             "unknown charset %q, using UTF-8",
	CodeSkipped:             "property skipped: %s",
	CodeParseFailed:         "property value could not be parsed: %s",
	CodeEmbeddedUnsupported: "embedded vCards are not supported by this syntax",
	CodeEmbeddedDepth:       "embedded vCard exceeds the maximum nesting depth of %d",
	CodeEmbeddedOrphan:      "nested vCard does not belong to any property",
	CodeUnparseableDate:     "date %q could not be parsed, kept as text",
	CodeTextDateUnsupported: "text dates are only supported in version 4.0",
	CodeBadGeo:              "invalid geo value %q",
	CodeBadBase64:           "invalid base64 data: %v",
	CodeNoValue:             "property has neither a URL nor data",
	CodeBadXML:              "invalid XML value: %v",
	CodeBadTimestamp:        "timestamp %q could not be parsed",
	CodeUnexpectedEnd:       "END without matching BEGIN",
	CodeWriteFailed:         "property could not be written: %v",
	CodeJSONValue:           "unexpected JSON value: %v",
}

// Message renders the message of code with args.
func Message(code Code, args ...any) string {
	format, ok := messages[code]
	if !ok {
		return fmt.Sprint(args...)
	}
	if strings.Contains(format, "%") {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Warning is a single problem found in one property occurrence. Line is the
// line number in the text syntax, or 0 when not known.
type Warning struct {
	Code     Code
	Message  string
	Property string
	Line     int
}

func (w Warning) String() string {
	var b strings.Builder
	switch {
	case w.Line > 0 && w.Property != "":
		fmt.Fprintf(&b, "line %d (%s property): ", w.Line, w.Property)
	case w.Line > 0:
		fmt.Fprintf(&b, "line %d: ", w.Line)
	case w.Property != "":
		fmt.Fprintf(&b, "%s property: ", w.Property)
	}
	b.WriteString(w.Message)
	return b.String()
}

// Warnings is a list of warnings that implements the error interface, so that
// callers who want to treat warnings as failures can return it as-is.
type Warnings []Warning

func (ws Warnings) Error() string {
	if len(ws) == 0 {
		return ""
	}
	if len(ws) == 1 {
		return "vcard: " + ws[0].String()
	}
	return fmt.Sprintf("vcard: %s (and %d more warnings)", ws[0].String(), len(ws)-1)
}

// Strings renders every warning.
func (ws Warnings) Strings() []string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = w.String()
	}
	return s
}

// Has reports whether a warning with the given code is present.
func (ws Warnings) Has(code Code) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
