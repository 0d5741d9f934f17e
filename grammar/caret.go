package grammar

import "strings"

// CaretEncode applies the parameter value encoding of RFC 6868: a caret
// becomes ^^, a line break ^n and a double quote ^'.
func CaretEncode(s string) string {
	if !strings.ContainsAny(s, "^\r\n\"") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '^':
			b.WriteString("^^")
		case '"':
			b.WriteString("^'")
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			b.WriteString("^n")
		case '\n':
			b.WriteString("^n")
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// CaretDecode reverses CaretEncode. Unknown sequences are kept as they are.
func CaretDecode(s string) string {
	if strings.IndexByte(s, '^') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '^' || i+1 == len(s) {
			b.WriteByte(ch)
			continue
		}
		switch s[i+1] {
		case '^':
			b.WriteByte('^')
		case 'n':
			b.WriteByte('\n')
		case '\'':
			b.WriteByte('"')
		default:
			b.WriteByte(ch)
			continue
		}
		i++
	}
	return b.String()
}
