package syntax

import "fmt"

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	IDENT
	INT_LIT
	FLOAT_LIT
	CHAR_LIT
	STRING_LIT

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	ASSIGN  // =
	EQ      // ==
	NEQ     // !=
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	AND     // &&
	OR      // ||
	NOT     // !
	LSHIFT  // <<
	RSHIFT  // >>
	INC     // ++
	DEC     // --

	// Punctuation
	SEMICOLON
	COMMA
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET

	// Keywords
	KW_INT
	KW_FLOAT
	KW_DOUBLE
	KW_CHAR
	KW_BOOL
	KW_STRING
	KW_IF
	KW_ELSE
	KW_FOR
	KW_WHILE
	KW_RETURN
	KW_CIN
	KW_COUT
	KW_ENDL
	KW_TRUE
	KW_FALSE
	KW_USING
	KW_NAMESPACE
)

var keywords = map[string]Kind{
	"int":       KW_INT,
	"float":     KW_FLOAT,
	"double":    KW_DOUBLE,
	"char":      KW_CHAR,
	"bool":      KW_BOOL,
	"string":    KW_STRING,
	"if":        KW_IF,
	"else":      KW_ELSE,
	"for":       KW_FOR,
	"while":     KW_WHILE,
	"return":    KW_RETURN,
	"cin":       KW_CIN,
	"cout":      KW_COUT,
	"endl":      KW_ENDL,
	"true":      KW_TRUE,
	"false":     KW_FALSE,
	"using":     KW_USING,
	"namespace": KW_NAMESPACE,
}

var kindNames = map[Kind]string{
	EOF:          "EOF",
	IDENT:        "identifier",
	INT_LIT:      "integer literal",
	FLOAT_LIT:    "float literal",
	CHAR_LIT:     "char literal",
	STRING_LIT:   "string literal",
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	ASSIGN:       "=",
	EQ:           "==",
	NEQ:          "!=",
	LT:           "<",
	GT:           ">",
	LE:           "<=",
	GE:           ">=",
	AND:          "&&",
	OR:           "||",
	NOT:          "!",
	LSHIFT:       "<<",
	RSHIFT:       ">>",
	INC:          "++",
	DEC:          "--",
	SEMICOLON:    ";",
	COMMA:        ",",
	LPAREN:       "(",
	RPAREN:       ")",
	LBRACE:       "{",
	RBRACE:       "}",
	LBRACKET:     "[",
	RBRACKET:     "]",
	KW_INT:       "int",
	KW_FLOAT:     "float",
	KW_DOUBLE:    "double",
	KW_CHAR:      "char",
	KW_BOOL:      "bool",
	KW_STRING:    "string",
	KW_IF:        "if",
	KW_ELSE:      "else",
	KW_FOR:       "for",
	KW_WHILE:     "while",
	KW_RETURN:    "return",
	KW_CIN:       "cin",
	KW_COUT:      "cout",
	KW_ENDL:      "endl",
	KW_TRUE:      "true",
	KW_FALSE:     "false",
	KW_USING:     "using",
	KW_NAMESPACE: "namespace",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsType reports whether the kind is a type specifier keyword.
func (k Kind) IsType() bool {
	switch k {
	case KW_INT, KW_FLOAT, KW_DOUBLE, KW_CHAR, KW_BOOL, KW_STRING:
		return true
	}
	return false
}

// Token is a single lexical unit with its source line.
type Token struct {
	Kind Kind
	Text string // raw text as it appeared in the source
	Line int
}

func (t Token) String() string {
	switch t.Kind {
	case IDENT, INT_LIT, FLOAT_LIT, CHAR_LIT, STRING_LIT:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return t.Kind.String()
}
