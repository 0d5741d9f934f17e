package text

// tokenType is the type of a token of a content line.
type tokenType string

// token is one lexical token of a content line. Column is the byte offset
// in the logical line, starting at 1.
type token struct {
	Type    tokenType
	Literal string
	Column  int
}

const (
	tokenIllegal tokenType = "ILLEGAL" // an unterminated quoted string
	tokenEOL     tokenType = "EOL"     // end of the logical line

	tokenWord   tokenType = "WORD"   // group, property name, parameter name or value
	tokenQuoted tokenType = "QUOTED" // "parameter value"
	tokenValue  tokenType = "VALUE"  // everything after the first unquoted colon

	tokenDot       tokenType = "."
	tokenSemicolon tokenType = ";"
	tokenEquals    tokenType = "="
	tokenComma     tokenType = ","
	tokenColon     tokenType = ":"
)
