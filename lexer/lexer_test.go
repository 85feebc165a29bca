package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/kode/diag"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := Tokenize("== = != ! <= < >= > && || + - * / % ( ) { } [ ] , ; .")
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		Equal, Assign, NotEqual, Not, LessEqual, Less, GreaterEqual, Greater,
		And, Or, Plus, Minus, Star, Slash, Percent,
		LParen, RParen, LBrace, RBrace, LBracket, RBracket, Comma, Semicolon, Dot,
		EOF,
	}, kinds(tokens))
}

func TestTokenizeKeywordsAndIdents(t *testing.T) {
	tokens, err := Tokenize("let fn return if else while for print main import try catch true false _x9 café")
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		Let, Fn, Return, If, Else, While, For, Print, Main, Import, Try, Catch,
		Bool, Bool, Ident, Ident, EOF,
	}, kinds(tokens))
	assert.True(t, tokens[12].Bool)
	assert.False(t, tokens[13].Bool)
	assert.Equal(t, "_x9", tokens[14].Text)
	assert.Equal(t, "café", tokens[15].Text)
}

func TestTokenizeNumbers(t *testing.T) {
	tokens, err := Tokenize("42 3.25 7.x 99999999999999999999")
	require.NoError(t, err)
	require.Equal(t, []Kind{Int, Float, Int, Dot, Ident, Int, EOF}, kinds(tokens))
	assert.Equal(t, int64(42), tokens[0].Int)
	assert.Equal(t, 3.25, tokens[1].Float)
	assert.Equal(t, int64(7), tokens[2].Int)
	// overflow falls back to zero
	assert.Equal(t, int64(0), tokens[5].Int)
}

func TestTokenizeStrings(t *testing.T) {
	tokens, err := Tokenize(`"a\nb\t\"q\"\\ \r"`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, "a\nb\t\"q\"\\ \r", tokens[0].Text)
}

func TestTokenizeComments(t *testing.T) {
	src := "let // trailing\n/* outer /* inner */ still */ x"
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, []Kind{Let, Ident, EOF}, kinds(tokens))
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"lone ampersand", "a & b", "Unexpected character '&' at line 1, column 3"},
		{"lone pipe", "\n |", "Unexpected character '|' at line 2, column 2"},
		{"bad escape", `"a\q"`, `Invalid escape sequence '\q' at line 1, column 4`},
		{"unterminated string", "x\n \"abc", "Unterminated string literal at line 2, column 2"},
		{"unterminated comment", "/* /* */", "Unterminated block comment at line 1, column 1"},
		{"unknown char", "let @", "Unexpected character '@' at line 1, column 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			require.Error(t, err)
			assert.Equal(t, tt.msg, err.Error())
			assert.Equal(t, diag.KindLex, diag.KindOf(err))
		})
	}
}

func TestPositions(t *testing.T) {
	lx := New("let x = 1;\n  print x;\n")
	tokens, err := lx.Tokenize()
	require.NoError(t, err)
	pos := lx.Positions()
	require.Len(t, pos, len(tokens))
	assert.Equal(t, diag.Pos{Line: 1, Column: 1}, pos[0])
	assert.Equal(t, diag.Pos{Line: 1, Column: 5}, pos[1])
	assert.Equal(t, diag.Pos{Line: 2, Column: 3}, pos[5])
	// EOF sits after the last line's text
	assert.Equal(t, diag.Pos{Line: 2, Column: 11}, pos[len(pos)-1])
}

func TestEmptySource(t *testing.T) {
	lx := New("")
	tokens, err := lx.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []Kind{EOF}, kinds(tokens))
	assert.Equal(t, diag.Pos{Line: 1, Column: 1}, lx.Positions()[0])
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "Int(5)", Token{Kind: Int, Int: 5}.String())
	assert.Equal(t, `String("hi")`, Token{Kind: String, Text: "hi"}.String())
	assert.Equal(t, "Identifier(x)", Token{Kind: Ident, Text: "x"}.String())
	assert.Equal(t, "<=", Token{Kind: LessEqual}.String())
	assert.True(t, IsKeyword("while"))
	assert.False(t, IsKeyword("true"))
}
