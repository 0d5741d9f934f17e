// Package fold implements the line transport of the vCard text syntax:
// unfolding of continuation lines on read, folding of long lines on write,
// and the quoted-printable encoding used by version 2.1.
package fold

import (
	"bufio"
	"io"
	"strings"

	"github.com/eluv-io/errors-go"
)

// Reader returns the logical lines of a folded text stream.
//
// A physical line starting with a space or tab continues the previous line;
// all of its leading whitespace is dropped. Empty physical lines are ignored.
//
// Some mail clients fold quoted-printable values with soft line breaks only,
// without the leading whitespace. A line that contains an unquoted colon,
// mentions QUOTED-PRINTABLE before that colon and ends in "=" therefore
// continues on the following physical lines for as long as they end in "=".
type Reader struct {
	r *bufio.Reader

	pending    *string // one line of lookahead
	physical   int     // number of physical lines read
	pendingNum int     // physical number of the pending line
	lineNumber int
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return &Reader{r: br}
	}
	return &Reader{r: bufio.NewReader(r)}
}

// LineNumber returns the physical line number on which the last logical line
// returned by ReadLine started. Line numbers start at 1.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// ReadLine returns the next logical line, without its line terminator. It
// returns io.EOF once the stream is exhausted.
func (r *Reader) ReadLine() (string, error) {
	var b strings.Builder
	started := false
	for {
		line, num, err := r.next()
		if err == io.EOF {
			if started {
				return b.String(), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		if !started {
			if strings.Trim(line, " \t") == "" {
				continue
			}
			started = true
			r.lineNumber = num
			b.WriteString(line)
		} else {
			if line == "" {
				continue
			}
			if !isFoldSpace(line[0]) {
				r.unread(line, num)
				return b.String(), nil
			}
			b.WriteString(strings.TrimLeft(line, " \t"))
		}

		if s := b.String(); IsQuotedPrintableSoftBreak(s) {
			return r.readSoftBroken(s[:len(s)-1])
		}
	}
}

// readSoftBroken appends raw physical lines to logical for as long as they
// end in a soft line break.
func (r *Reader) readSoftBroken(logical string) (string, error) {
	var b strings.Builder
	b.WriteString(logical)
	for {
		line, _, err := r.next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		line = strings.TrimLeft(line, " \t")
		if strings.HasSuffix(line, "=") {
			b.WriteString(line[:len(line)-1])
			continue
		}
		b.WriteString(line)
		return b.String(), nil
	}
}

// IsQuotedPrintableSoftBreak reports whether line is the start of a
// quoted-printable value that continues on the next physical line without
// folding whitespace. The check is a heuristic: a line that merely mentions
// QUOTED-PRINTABLE in a parameter value also qualifies.
func IsQuotedPrintableSoftBreak(line string) bool {
	if !strings.HasSuffix(line, "=") {
		return false
	}
	colon := unquotedColon(line)
	if colon < 0 {
		return false
	}
	return strings.Contains(strings.ToUpper(line[:colon]), "QUOTED-PRINTABLE")
}

// unquotedColon returns the index of the first colon outside of double
// quotes, or -1.
func unquotedColon(s string) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ':':
			if !quoted {
				return i
			}
		}
	}
	return -1
}

func isFoldSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func (r *Reader) unread(line string, num int) {
	r.pending = &line
	r.pendingNum = num
}

// next returns the next physical line. CRLF, LF and a bare CR all end a line.
func (r *Reader) next() (string, int, error) {
	if r.pending != nil {
		line := *r.pending
		r.pending = nil
		return line, r.pendingNum, nil
	}

	var b strings.Builder
	for {
		ch, err := r.r.ReadByte()
		if err == io.EOF {
			if b.Len() == 0 {
				return "", 0, io.EOF
			}
			r.physical++
			return b.String(), r.physical, nil
		}
		if err != nil {
			return "", 0, errors.E("fold.Reader.ReadLine", errors.K.IO, err, "line", r.physical+1)
		}
		switch ch {
		case '\n':
			r.physical++
			return b.String(), r.physical, nil
		case '\r':
			if next, err := r.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = r.r.ReadByte()
			}
			r.physical++
			return b.String(), r.physical, nil
		}
		b.WriteByte(ch)
	}
}
