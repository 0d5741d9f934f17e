// Package grammar implements the value grammar shared by all vCard syntaxes:
// backslash escaping, comma lists, and semicolon-delimited structured values.
//
// Escaping only covers backslash, comma and semicolon. Newlines are left to
// the line transport, because how they are written depends on the version.
package grammar

import "strings"

// Escape backslash-escapes backslashes, commas and semicolons.
func Escape(s string) string {
	return escape(s, true)
}

// EscapeSemi escapes backslashes and semicolons but leaves commas alone, as
// required for the semi-structured values of version 2.1.
func EscapeSemi(s string) string {
	return escape(s, false)
}

func escape(s string, commas bool) string {
	if !strings.ContainsAny(s, `\,;`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '\\', ';':
			b.WriteByte('\\')
		case ',':
			if commas {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// Unescape reverses Escape. An escaped n or N becomes a line break; any other
// escaped character is kept without its backslash. A lone trailing backslash
// is kept.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			if ch == 'n' || ch == 'N' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(ch)
			}
			continue
		}
		if ch == '\\' {
			escaped = true
			continue
		}
		b.WriteByte(ch)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// SplitUnescaped splits s at every delimiter that is not preceded by an
// escaping backslash. The pieces are returned still escaped. If limit > 0,
// at most limit pieces are returned and the last one holds the unsplit
// remainder.
func SplitUnescaped(s string, delim byte, limit int) []string {
	var pieces []string
	start := 0
	escaped := false
	for i := 0; i < len(s); i++ {
		if limit > 0 && len(pieces) == limit-1 {
			break
		}
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case delim:
			pieces = append(pieces, s[start:i])
			start = i + 1
		}
	}
	return append(pieces, s[start:])
}

// SplitList splits a comma-delimited list and unescapes every item. An empty
// value yields an empty list.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	pieces := SplitUnescaped(s, ',', -1)
	for i, p := range pieces {
		pieces[i] = Unescape(p)
	}
	return pieces
}

// JoinList escapes every item and joins them with commas.
func JoinList(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = Escape(v)
	}
	return strings.Join(escaped, ",")
}
