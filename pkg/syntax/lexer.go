// Package syntax tokenizes and parses the supported C++ subset into an AST.
package syntax

import (
	"fmt"
	"strings"
)

// Lexer scans a source buffer into tokens. Zero value is not usable;
// construct with NewLexer.
type Lexer struct {
	src  string
	pos  int
	line int
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokenize scans the whole input and returns the token stream, terminated
// by an EOF token.
func Tokenize(src string) ([]Token, error) {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// twoCharOps maps a two-character operator to its kind. Checked before
// single characters so << wins over < and ++ over +.
var twoCharOps = map[string]Kind{
	"==": EQ,
	"!=": NEQ,
	"<=": LE,
	">=": GE,
	"&&": AND,
	"||": OR,
	"<<": LSHIFT,
	">>": RSHIFT,
	"++": INC,
	"--": DEC,
}

var oneCharOps = map[byte]Kind{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'=': ASSIGN,
	'<': LT,
	'>': GT,
	'!': NOT,
	';': SEMICOLON,
	',': COMMA,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
}

// Next returns the next token in the stream.
func (lx *Lexer) Next() (Token, error) {
	if err := lx.skipTrivia(); err != nil {
		return Token{}, err
	}
	if lx.pos >= len(lx.src) {
		return Token{Kind: EOF, Line: lx.line}, nil
	}

	start := lx.pos
	line := lx.line
	c := lx.src[lx.pos]

	switch {
	case isIdentStart(c):
		for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
			lx.pos++
		}
		text := lx.src[start:lx.pos]
		if kw, ok := keywords[text]; ok {
			return Token{Kind: kw, Text: text, Line: line}, nil
		}
		return Token{Kind: IDENT, Text: text, Line: line}, nil

	case isDigit(c) || (c == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1])):
		return lx.scanNumber()

	case c == '"':
		return lx.scanString()

	case c == '\'':
		return lx.scanChar()
	}

	if lx.pos+1 < len(lx.src) {
		if kind, ok := twoCharOps[lx.src[lx.pos:lx.pos+2]]; ok {
			lx.pos += 2
			return Token{Kind: kind, Text: lx.src[start:lx.pos], Line: line}, nil
		}
	}
	if kind, ok := oneCharOps[c]; ok {
		lx.pos++
		return Token{Kind: kind, Text: string(c), Line: line}, nil
	}

	return Token{}, fmt.Errorf("line %d: illegal character %q", line, c)
}

// skipTrivia consumes whitespace, comments and preprocessor lines.
func (lx *Lexer) skipTrivia() error {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case c == '\n':
			lx.line++
			lx.pos++
		case c == '#':
			// Preprocessor directive: discard to end of line.
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '/':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == '/' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '*':
			end := strings.Index(lx.src[lx.pos+2:], "*/")
			if end < 0 {
				return fmt.Errorf("line %d: unterminated block comment", lx.line)
			}
			lx.line += strings.Count(lx.src[lx.pos:lx.pos+2+end+2], "\n")
			lx.pos += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

func (lx *Lexer) scanNumber() (Token, error) {
	start := lx.pos
	line := lx.line
	isFloat := false
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' {
		isFloat = true
		lx.pos++
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		mark := lx.pos
		lx.pos++
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		if lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			isFloat = true
			for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
				lx.pos++
			}
		} else {
			// Not an exponent after all (e.g. "3e" followed by an ident).
			lx.pos = mark
		}
	}
	kind := INT_LIT
	if isFloat {
		kind = FLOAT_LIT
	}
	return Token{Kind: kind, Text: lx.src[start:lx.pos], Line: line}, nil
}

func (lx *Lexer) scanString() (Token, error) {
	start := lx.pos
	line := lx.line
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '\n':
			return Token{}, fmt.Errorf("line %d: newline in string literal", line)
		case '"':
			lx.pos++
			return Token{Kind: STRING_LIT, Text: lx.src[start:lx.pos], Line: line}, nil
		default:
			lx.pos++
		}
	}
	return Token{}, fmt.Errorf("line %d: unterminated string literal", line)
}

func (lx *Lexer) scanChar() (Token, error) {
	start := lx.pos
	line := lx.line
	lx.pos++ // opening quote
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '\\' {
		lx.pos++
	}
	if lx.pos < len(lx.src) {
		lx.pos++ // the character itself
	}
	if lx.pos >= len(lx.src) || lx.src[lx.pos] != '\'' {
		return Token{}, fmt.Errorf("line %d: malformed char literal", line)
	}
	lx.pos++
	return Token{Kind: CHAR_LIT, Text: lx.src[start:lx.pos], Line: line}, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
