package text

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// contentLine is one logical line split into its parts. Parameter values
// are unquoted and caret-decoded; the value is still escaped.
type contentLine struct {
	Group  string
	Name   string
	Params *vcard.Parameters
	Value  string
}

// is reports whether the line is NAME:value, ignoring case and surrounding
// whitespace of the value.
func (c *contentLine) is(name, value string) bool {
	return strings.EqualFold(c.Name, name) && strings.EqualFold(strings.TrimSpace(c.Value), value)
}

// parser turns the tokens of one content line into a contentLine.
type parser struct {
	l   *lexer
	err *ParseError

	// caret enables RFC 6868 decoding of parameter values.
	caret bool
	// trim strips whitespace around parameter names and values, which
	// version 2.1 allows.
	trim bool

	curToken  token
	peekToken token
}

func newParser(l *lexer, v vcard.Version, caret bool) *parser {
	p := &parser{l: l, caret: caret && v != vcard.V2_1, trim: v == vcard.V2_1}
	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// parseLine parses one logical line read in version v.
func parseLine(s string, v vcard.Version, caret bool) (*contentLine, *ParseError) {
	p := newParser(newLexer(s), v, caret)
	line := p.parseContentLine()
	if p.err != nil {
		return nil, p.err
	}
	return line, nil
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.nextToken()
}

func (p *parser) parseContentLine() *contentLine {
	line := &contentLine{Params: &vcard.Parameters{}}

	names := []string{}
	for {
		if !p.curTokenIs(tokenWord) {
			p.errorf("expected property name, got %s", p.curToken.Type)
			return nil
		}
		names = append(names, strings.TrimSpace(p.curToken.Literal))
		p.nextToken()
		if !p.curTokenIs(tokenDot) {
			break
		}
		p.nextToken()
	}
	line.Name = names[len(names)-1]
	line.Group = strings.Join(names[:len(names)-1], ".")
	if line.Name == "" {
		p.errorf("empty property name")
		return nil
	}

	for {
		switch p.curToken.Type {
		case tokenSemicolon:
			p.nextToken()
			p.parseParameter(line.Params)
			if p.err != nil {
				return nil
			}
		case tokenColon:
			p.nextToken()
			line.Value = p.curToken.Literal
			return line
		case tokenIllegal:
			p.errorf("unterminated quoted parameter value")
			return nil
		case tokenEOL:
			p.errorf("missing colon")
			return nil
		default:
			p.errorf("unexpected %s", p.curToken.Type)
			return nil
		}
	}
}

// parseParameter parses the parameter after a semicolon, leaving the
// parser on the token that ends it.
func (p *parser) parseParameter(params *vcard.Parameters) {
	switch p.curToken.Type {
	case tokenSemicolon, tokenColon:
		return
	case tokenWord:
	default:
		p.errorf("expected parameter name, got %s", p.curToken.Type)
		return
	}

	name := p.curToken.Literal
	if p.trim {
		name = strings.TrimSpace(name)
	}
	if !p.peekTokenIs(tokenEquals) {
		// 2.1 allows the value alone, such as TEL;WORK;VOICE.
		p.nextToken()
		if name != "" {
			params.Add(namelessParameter(name), name)
		}
		return
	}
	p.nextToken()
	p.nextToken()

	for {
		switch p.curToken.Type {
		case tokenWord:
			params.Add(name, p.paramValue(p.curToken.Literal))
			p.nextToken()
		case tokenQuoted:
			params.Add(name, p.paramValue(p.curToken.Literal))
			p.nextToken()
		case tokenComma, tokenSemicolon, tokenColon:
			params.Add(name, "")
		case tokenIllegal:
			p.errorf("unterminated quoted parameter value")
			return
		default:
			p.errorf("expected parameter value, got %s", p.curToken.Type)
			return
		}
		if !p.curTokenIs(tokenComma) {
			return
		}
		p.nextToken()
	}
}

func (p *parser) paramValue(s string) string {
	if p.trim {
		s = strings.TrimSpace(s)
	}
	if p.caret {
		s = grammar.CaretDecode(s)
	}
	return s
}

// namelessParameter resolves the name of a 2.1 parameter given by its value
// alone.
func namelessParameter(value string) string {
	switch strings.ToUpper(value) {
	case "QUOTED-PRINTABLE", "BASE64", "B", "8BIT", "7BIT":
		return vcard.ParamEncoding
	case "INLINE", "URL", "CONTENT-ID", "CID":
		return vcard.ParamValue
	}
	return vcard.ParamType
}

func (p *parser) curTokenIs(t tokenType) bool {
	return p.curToken.Type == t
}

func (p *parser) peekTokenIs(t tokenType) bool {
	return p.peekToken.Type == t
}

func (p *parser) errorf(format string, args ...any) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{Message: fmt.Sprintf(format, args...), Column: p.curToken.Column}
}
