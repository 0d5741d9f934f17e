package text

// lexState tells the lexer which part of the content line it is in, since
// the set of delimiters depends on it.
type lexState int

const (
	stateName       lexState = iota // [group.]NAME
	stateParamName                  // after a semicolon
	stateParamValue                 // after an equals sign
	stateValue                      // after the first unquoted colon
	stateDone
)

// lexer splits one logical content line into tokens:
//
//	[group.]NAME[;PARAM[=VALUE[,VALUE]*]]*:VALUE
type lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	state        lexState
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// nextToken returns the next token of the line.
func (l *lexer) nextToken() token {
	tok := token{Column: l.position + 1}

	if l.state == stateDone {
		tok.Type = tokenEOL
		return tok
	}
	if l.state == stateValue {
		tok.Type = tokenValue
		tok.Literal = l.input[l.position:]
		l.position = len(l.input)
		l.state = stateDone
		return tok
	}
	if l.atEnd() {
		tok.Type = tokenEOL
		l.state = stateDone
		return tok
	}

	switch l.ch {
	case ':':
		tok.Type = tokenColon
		l.state = stateValue
	case ';':
		tok.Type = tokenSemicolon
		l.state = stateParamName
	case '=':
		if l.state != stateParamName {
			tok.Type, tok.Literal = tokenWord, l.readWord()
			return tok
		}
		tok.Type = tokenEquals
		l.state = stateParamValue
	case ',':
		tok.Type = tokenComma
	case '.':
		if l.state != stateName {
			tok.Type, tok.Literal = tokenWord, l.readWord()
			return tok
		}
		tok.Type = tokenDot
	case '"':
		lit, ok := l.readQuoted()
		tok.Type, tok.Literal = tokenQuoted, lit
		if !ok {
			tok.Type = tokenIllegal
			l.state = stateDone
		}
		return tok
	default:
		tok.Type, tok.Literal = tokenWord, l.readWord()
		return tok
	}
	tok.Literal = string(l.ch)
	l.readChar()
	return tok
}

// readWord reads up to the next delimiter of the current state.
func (l *lexer) readWord() string {
	position := l.position
	for !l.atEnd() && !l.isDelimiter(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *lexer) isDelimiter(ch byte) bool {
	switch ch {
	case ':', ';', '"':
		return true
	case '.':
		return l.state == stateName
	case '=':
		return l.state == stateParamName
	case ',':
		return l.state == stateParamValue
	}
	return false
}

// readQuoted reads a double-quoted parameter value and returns it without
// the quotes. It reports false when the closing quote is missing.
func (l *lexer) readQuoted() (string, bool) {
	position := l.position + 1
	for {
		l.readChar()
		if l.atEnd() {
			return l.input[position:], false
		}
		if l.ch == '"' {
			break
		}
	}
	lit := l.input[position:l.position]
	l.readChar()
	return lit, true
}
