package fold

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type line struct {
	text string
	num  int
}

func readAll(t *testing.T, input string) []line {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var lines []line
	for {
		s, err := r.ReadLine()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line{s, r.LineNumber()})
	}
}

func TestReader(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []line
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "crlf with fold",
			input: "BEGIN:VCARD\r\nNOTE:hello\r\n  world\r\nEND:VCARD\r\n",
			expected: []line{
				{"BEGIN:VCARD", 1},
				{"NOTE:helloworld", 2},
				{"END:VCARD", 4},
			},
		},
		{
			name:     "tab fold",
			input:    "NOTE:a\n\tb\n \t c",
			expected: []line{{"NOTE:abc", 1}},
		},
		{
			name:     "bare cr",
			input:    "A:1\rB:2",
			expected: []line{{"A:1", 1}, {"B:2", 2}},
		},
		{
			name:     "blank lines between logical lines",
			input:    "A:1\n\nB:2\r\n\r\n",
			expected: []line{{"A:1", 1}, {"B:2", 3}},
		},
		{
			name:     "blank line inside folded value",
			input:    "NOTE:a\n\n b\nFN:x",
			expected: []line{{"NOTE:ab", 1}, {"FN:x", 4}},
		},
		{
			name:  "quoted-printable soft breaks",
			input: "NOTE;ENCODING=QUOTED-PRINTABLE:line1=\nline2=\n  line3\nFN:x\n",
			expected: []line{
				{"NOTE;ENCODING=QUOTED-PRINTABLE:line1line2line3", 1},
				{"FN:x", 4},
			},
		},
		{
			name:  "quoted-printable soft break before blank line",
			input: "NOTE;QUOTED-PRINTABLE:a=\n\nFN:x",
			expected: []line{
				{"NOTE;QUOTED-PRINTABLE:a", 1},
				{"FN:x", 3},
			},
		},
		{
			name:  "quoted-printable after whitespace fold",
			input: "NOTE;CHARSET=UTF-8;\n ENCODING=QUOTED-PRINTABLE:a=\nb\n",
			expected: []line{
				{"NOTE;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:ab", 1},
			},
		},
		{
			name:  "quoted colon hides encoding",
			input: "X-A;P=\"a:b\":QUOTED-PRINTABLE=\nB:1",
			expected: []line{
				{"X-A;P=\"a:b\":QUOTED-PRINTABLE=", 1},
				{"B:1", 2},
			},
		},
		{
			name:  "encoding mentioned after colon",
			input: "NOTE:QUOTED-PRINTABLE=\nFN:x",
			expected: []line{
				{"NOTE:QUOTED-PRINTABLE=", 1},
				{"FN:x", 2},
			},
		},
		{
			// The heuristic fires on any parameter mentioning the encoding.
			name:  "heuristic misfire",
			input: "NOTE;X-INFO=quoted-printable:x=\nFN:y",
			expected: []line{
				{"NOTE;X-INFO=quoted-printable:xFN:y", 1},
			},
		},
		{
			name:     "no trailing newline",
			input:    "FN:John\n Doe",
			expected: []line{{"FN:JohnDoe", 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, readAll(t, tc.input))
		})
	}
}

func TestIsQuotedPrintableSoftBreak(t *testing.T) {
	require.True(t, IsQuotedPrintableSoftBreak("NOTE;ENCODING=QUOTED-PRINTABLE:a="))
	require.True(t, IsQuotedPrintableSoftBreak("NOTE;Quoted-Printable:="))
	require.False(t, IsQuotedPrintableSoftBreak("NOTE;ENCODING=QUOTED-PRINTABLE:a"))
	require.False(t, IsQuotedPrintableSoftBreak("NOTE;ENCODING=QUOTED-PRINTABLE="))
	require.False(t, IsQuotedPrintableSoftBreak("NOTE:a="))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReaderIOError(t *testing.T) {
	r := NewReader(failingReader{})
	_, err := r.ReadLine()
	require.Error(t, err)
	require.NotEqual(t, io.EOF, err)
}
