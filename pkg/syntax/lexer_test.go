package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppytools/cppy/pkg/syntax"
)

func kinds(toks []syntax.Token) []syntax.Kind {
	out := make([]syntax.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	toks, err := syntax.Tokenize("int a = 5;")
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{
		syntax.KW_INT, syntax.IDENT, syntax.ASSIGN, syntax.INT_LIT,
		syntax.SEMICOLON, syntax.EOF,
	}, kinds(toks))
	assert.Equal(t, "a", toks[1].Text)
	assert.Equal(t, "5", toks[3].Text)
}

func TestTokenizeStreamOperators(t *testing.T) {
	toks, err := syntax.Tokenize(`cout << "Hello" << a << endl; cin >> b;`)
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{
		syntax.KW_COUT, syntax.LSHIFT, syntax.STRING_LIT, syntax.LSHIFT,
		syntax.IDENT, syntax.LSHIFT, syntax.KW_ENDL, syntax.SEMICOLON,
		syntax.KW_CIN, syntax.RSHIFT, syntax.IDENT, syntax.SEMICOLON,
		syntax.EOF,
	}, kinds(toks))
}

func TestTokenizeMaximalMunch(t *testing.T) {
	toks, err := syntax.Tokenize("a <= b < c == d != e && f || g++ --h")
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{
		syntax.IDENT, syntax.LE, syntax.IDENT, syntax.LT, syntax.IDENT,
		syntax.EQ, syntax.IDENT, syntax.NEQ, syntax.IDENT, syntax.AND,
		syntax.IDENT, syntax.OR, syntax.IDENT, syntax.INC, syntax.DEC,
		syntax.IDENT, syntax.EOF,
	}, kinds(toks))
}

func TestTokenizeSkipsTrivia(t *testing.T) {
	src := `#include <iostream>
// line comment
/* block
   comment */
int x; // trailing
`
	toks, err := syntax.Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{
		syntax.KW_INT, syntax.IDENT, syntax.SEMICOLON, syntax.EOF,
	}, kinds(toks))
	// Line numbers survive the skipped trivia.
	assert.Equal(t, 5, toks[0].Line)
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := syntax.Tokenize("1 42 3.14 0.5 2e3")
	require.NoError(t, err)
	assert.Equal(t, []syntax.Kind{
		syntax.INT_LIT, syntax.INT_LIT, syntax.FLOAT_LIT, syntax.FLOAT_LIT,
		syntax.FLOAT_LIT, syntax.EOF,
	}, kinds(toks))
}

func TestTokenizeCharAndString(t *testing.T) {
	toks, err := syntax.Tokenize(`'a' '\n' "hi\n"`)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, syntax.CHAR_LIT, toks[0].Kind)
	assert.Equal(t, `'a'`, toks[0].Text)
	assert.Equal(t, syntax.CHAR_LIT, toks[1].Kind)
	assert.Equal(t, syntax.STRING_LIT, toks[2].Kind)
	assert.Equal(t, `"hi\n"`, toks[2].Text)
}

func TestTokenizeErrors(t *testing.T) {
	_, err := syntax.Tokenize("int a = @;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal character")

	_, err = syntax.Tokenize(`"unterminated`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")

	_, err = syntax.Tokenize("/* never closed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated block comment")
}
