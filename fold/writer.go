package fold

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/eluv-io/errors-go"
)

const (
	// DefaultLineLength is the folding width recommended by RFC 6350.
	DefaultLineLength = 75
	// DefaultIndent is the whitespace that starts a continuation line.
	DefaultIndent = " "
	// DefaultNewline is the line terminator of the text syntax.
	DefaultNewline = "\r\n"
)

// Option configures a Writer.
type Option func(*Writer) error

// LineLength sets the column at which lines are folded. A length of zero or
// less disables folding.
func LineLength(n int) Option {
	return func(w *Writer) error {
		w.lineLength = n
		return nil
	}
}

// Indent sets the whitespace written at the start of continuation lines.
func Indent(indent string) Option {
	return func(w *Writer) error {
		if indent == "" || strings.Trim(indent, " \t") != "" {
			return errors.E("fold.Indent", errors.K.Invalid,
				"reason", "indent must be spaces or tabs", "indent", indent)
		}
		w.indent = indent
		return nil
	}
}

// Newline sets the line terminator.
func Newline(nl string) Option {
	return func(w *Writer) error {
		if nl == "" || strings.Trim(nl, "\r\n") != "" {
			return errors.E("fold.Newline", errors.K.Invalid,
				"reason", "newline must be CR, LF or CRLF", "newline", nl)
		}
		w.newline = nl
		return nil
	}
}

// Writer folds the lines written to it. Columns are counted in runes, and
// the column is carried across calls to Write until Writeln ends the line.
type Writer struct {
	w          io.Writer
	lineLength int
	indent     string
	newline    string
	col        int
}

// NewWriter returns a Writer writing to w. The indent must be shorter than
// the line length.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	fw := &Writer{
		w:          w,
		lineLength: DefaultLineLength,
		indent:     DefaultIndent,
		newline:    DefaultNewline,
	}
	for _, opt := range opts {
		if err := opt(fw); err != nil {
			return nil, err
		}
	}
	if fw.lineLength > 0 && utf8.RuneCountInString(fw.indent) >= fw.lineLength {
		return nil, errors.E("fold.NewWriter", errors.K.Invalid,
			"reason", "indent must be shorter than the line length",
			"indent", fw.indent, "line_length", fw.lineLength)
	}
	return fw, nil
}

// Newline returns the configured line terminator.
func (w *Writer) Newline() string {
	return w.newline
}

// Write writes s, folding it as needed.
func (w *Writer) Write(s string) error {
	return w.write(s, false)
}

// WriteQuotedPrintable encodes s with quoted-printable in the given charset
// and writes it. Folded lines end with a soft line break, and no escape
// triplet is ever split across lines.
func (w *Writer) WriteQuotedPrintable(s, charset string) error {
	encoded, err := EncodeQuotedPrintable(s, charset)
	if err != nil {
		return err
	}
	return w.write(encoded, true)
}

// Writeln ends the current line.
func (w *Writer) Writeln() error {
	w.col = 0
	return w.emit(w.newline)
}

func (w *Writer) write(s string, qp bool) error {
	if w.lineLength <= 0 {
		w.col += utf8.RuneCountInString(s)
		return w.emit(s)
	}

	limit := w.lineLength
	if qp {
		limit-- // room for the soft line break
	}
	indentLen := utf8.RuneCountInString(w.indent)

	runes := []rune(s)
	var b strings.Builder
	start := 0
	for i := 0; i < len(runes); {
		c := runes[i]
		if c == '\n' || (c == '\r' && (i+1 == len(runes) || runes[i+1] != '\n')) {
			w.col = 0
			i++
			continue
		}
		if c == '\r' {
			i++
			continue
		}
		if w.col < limit {
			w.col++
			i++
			continue
		}

		j := foldPoint(runes, i, qp)
		if j >= len(runes) {
			w.col += len(runes) - i
			break
		}
		if runes[j] == '\r' || runes[j] == '\n' {
			i = j
			continue
		}
		b.WriteString(string(runes[start:j]))
		if qp {
			b.WriteByte('=')
		}
		b.WriteString(w.newline)
		b.WriteString(w.indent)
		start = j
		i = j + 1
		w.col = indentLen + 1
	}
	b.WriteString(string(runes[start:]))
	return w.emit(b.String())
}

// foldPoint moves a candidate fold position forward past whitespace, which
// would be lost on unfolding, and past the rest of an escape triplet.
func foldPoint(runes []rune, i int, qp bool) int {
	j := i
	for {
		k := j
		for k < len(runes) && (runes[k] == ' ' || runes[k] == '\t') {
			k++
		}
		if qp && k < len(runes) {
			if k >= 1 && runes[k-1] == '=' {
				k += 2
			} else if k >= 2 && runes[k-2] == '=' {
				k++
			}
		}
		if k == j {
			return j
		}
		j = k
	}
}

func (w *Writer) emit(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		return errors.E("fold.Writer.Write", errors.K.IO, err)
	}
	return nil
}
