package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextToken(t *testing.T) {
	input := `item1.TEL;TYPE=work,voice;LABEL="a:b;c":+1:555`

	expectedTokens := []struct {
		expectedType    tokenType
		expectedLiteral string
	}{
		{tokenWord, "item1"},
		{tokenDot, "."},
		{tokenWord, "TEL"},
		{tokenSemicolon, ";"},
		{tokenWord, "TYPE"},
		{tokenEquals, "="},
		{tokenWord, "work"},
		{tokenComma, ","},
		{tokenWord, "voice"},
		{tokenSemicolon, ";"},
		{tokenWord, "LABEL"},
		{tokenEquals, "="},
		{tokenQuoted, "a:b;c"},
		{tokenColon, ":"},
		{tokenValue, "+1:555"},
		{tokenEOL, ""},
		{tokenEOL, ""},
	}

	l := newLexer(input)

	for i, tt := range expectedTokens {
		tok := l.nextToken()
		require.Equal(t, tt.expectedType, tok.Type, "test[%d] - wrong token type", i)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "test[%d] - wrong literal", i)
	}
}

func TestNextTokenDelimitersByState(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []token
	}{
		{
			name:  "dots and equals inside parameter values",
			input: "X;A=b.c=d:v",
			expected: []token{
				{Type: tokenWord, Literal: "X", Column: 1},
				{Type: tokenSemicolon, Literal: ";", Column: 2},
				{Type: tokenWord, Literal: "A", Column: 3},
				{Type: tokenEquals, Literal: "=", Column: 4},
				{Type: tokenWord, Literal: "b.c=d", Column: 5},
				{Type: tokenColon, Literal: ":", Column: 10},
				{Type: tokenValue, Literal: "v", Column: 11},
			},
		},
		{
			name:  "nameless parameters",
			input: "TEL;WORK;VOICE:1",
			expected: []token{
				{Type: tokenWord, Literal: "TEL", Column: 1},
				{Type: tokenSemicolon, Literal: ";", Column: 4},
				{Type: tokenWord, Literal: "WORK", Column: 5},
				{Type: tokenSemicolon, Literal: ";", Column: 9},
				{Type: tokenWord, Literal: "VOICE", Column: 10},
				{Type: tokenColon, Literal: ":", Column: 15},
				{Type: tokenValue, Literal: "1", Column: 16},
			},
		},
		{
			name:  "empty value",
			input: "NOTE:",
			expected: []token{
				{Type: tokenWord, Literal: "NOTE", Column: 1},
				{Type: tokenColon, Literal: ":", Column: 5},
				{Type: tokenValue, Literal: "", Column: 6},
				{Type: tokenEOL, Column: 6},
			},
		},
		{
			name:  "unterminated quote",
			input: `X;A="open:v`,
			expected: []token{
				{Type: tokenWord, Literal: "X", Column: 1},
				{Type: tokenSemicolon, Literal: ";", Column: 2},
				{Type: tokenWord, Literal: "A", Column: 3},
				{Type: tokenEquals, Literal: "=", Column: 4},
				{Type: tokenIllegal, Literal: "open:v", Column: 5},
				{Type: tokenEOL, Column: 12},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newLexer(tc.input)
			for i, expected := range tc.expected {
				tok := l.nextToken()
				require.Equal(t, expected, tok, "token %d", i)
			}
		})
	}
}
