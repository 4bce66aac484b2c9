package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser consumes a token stream produced by the lexer.
type Parser struct {
	toks []Token
	pos  int
}

// Parse tokenizes and parses a complete source buffer.
func Parse(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) at(k Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k Kind) (Token, error) {
	if !p.at(k) {
		return Token{}, fmt.Errorf("line %d: expected %s, found %s", p.cur().Line, k, p.cur())
	}
	return p.advance(), nil
}

// parseProgram reads global items until EOF. The body of main is flattened
// into top-level statements in source order; other function definitions stay
// as declarations.
func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for !p.at(EOF) {
		// using namespace X; — accepted and discarded
		if p.at(KW_USING) {
			p.advance()
			if _, err := p.expect(KW_NAMESPACE); err != nil {
				return nil, err
			}
			if _, err := p.expect(IDENT); err != nil {
				return nil, err
			}
			if _, err := p.expect(SEMICOLON); err != nil {
				return nil, err
			}
			continue
		}

		if p.cur().Kind.IsType() && p.peek().Kind == IDENT && p.afterIdentIsCall() {
			fn, err := p.parseFuncDecl()
			if err != nil {
				return nil, err
			}
			if fn.Name == "main" {
				prog.Stmts = append(prog.Stmts, fn.Body.Stmts...)
			} else {
				prog.Stmts = append(prog.Stmts, fn)
			}
			continue
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

// afterIdentIsCall reports whether the token after "type ident" is an open
// paren, which distinguishes a function definition from a declaration.
func (p *Parser) afterIdentIsCall() bool {
	return p.pos+2 < len(p.toks) && p.toks[p.pos+2].Kind == LPAREN
}

func (p *Parser) parseFuncDecl() (*FuncDecl, error) {
	retTok := p.advance()
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var params []Param
	for !p.at(RPAREN) {
		if len(params) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}
		if !p.cur().Kind.IsType() {
			return nil, fmt.Errorf("line %d: expected parameter type, found %s", p.cur().Line, p.cur())
		}
		typTok := p.advance()
		pname, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Type: typTok.Text, Name: pname.Text})
	}
	p.advance() // )
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Line:    retTok.Line,
		RetType: retTok.Text,
		Name:    nameTok.Text,
		Params:  params,
		Body:    body,
	}, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	blk := &Block{Line: open.Line}
	for !p.at(RBRACE) {
		if p.at(EOF) {
			return nil, fmt.Errorf("line %d: unexpected end of input in block", open.Line)
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, stmt)
	}
	p.advance() // }
	return blk, nil
}

// parseStmtAsBlock parses either a braced block or a single statement
// wrapped in a one-element block, so if/while/for bodies are uniform.
func (p *Parser) parseStmtAsBlock() (*Block, error) {
	if p.at(LBRACE) {
		return p.parseBlock()
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &Block{Line: stmt.Pos(), Stmts: []Stmt{stmt}}, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	tok := p.cur()
	switch {
	case tok.Kind.IsType():
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return decl, nil

	case tok.Kind == KW_IF:
		return p.parseIf()

	case tok.Kind == KW_WHILE:
		return p.parseWhile()

	case tok.Kind == KW_FOR:
		return p.parseFor()

	case tok.Kind == KW_COUT:
		return p.parseCout()

	case tok.Kind == KW_CIN:
		return p.parseCin()

	case tok.Kind == KW_RETURN:
		p.advance()
		ret := &ReturnStmt{Line: tok.Line}
		if !p.at(SEMICOLON) {
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			ret.Value = val
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return ret, nil

	case tok.Kind == LBRACE:
		return p.parseBlock()

	case tok.Kind == IDENT:
		stmt, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil
	}
	return nil, fmt.Errorf("line %d: unexpected %s at start of statement", tok.Line, tok)
}

// parseVarDecl parses "type name", "type name[N]" and "type name = expr"
// without the trailing semicolon (for-init reuses it).
func (p *Parser) parseVarDecl() (*VarDecl, error) {
	typTok := p.advance()
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	decl := &VarDecl{Line: typTok.Line, Type: typTok.Text, Name: nameTok.Text}
	if p.at(LBRACKET) {
		p.advance()
		length, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET); err != nil {
			return nil, err
		}
		decl.ArrayLen = length
		return decl, nil
	}
	if p.at(ASSIGN) {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	return decl, nil
}

// parseSimpleStmt parses an assignment, inc/dec or call statement without
// the trailing semicolon.
func (p *Parser) parseSimpleStmt() (Stmt, error) {
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	ident := &Ident{Line: nameTok.Line, Name: nameTok.Text}

	switch p.cur().Kind {
	case INC, DEC:
		op := p.advance()
		return &IncDecStmt{Line: nameTok.Line, X: ident, Dec: op.Kind == DEC}, nil

	case LBRACKET:
		p.advance()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RBRACKET); err != nil {
			return nil, err
		}
		target := &IndexExpr{Line: nameTok.Line, X: ident, Index: idx}
		if _, err := p.expect(ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Assign{Line: nameTok.Line, Target: target, Value: val}, nil

	case ASSIGN:
		p.advance()
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Assign{Line: nameTok.Line, Target: ident, Value: val}, nil

	case LPAREN:
		call, err := p.parseCallArgs(ident)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Line: nameTok.Line, X: call}, nil
	}
	return nil, fmt.Errorf("line %d: unexpected %s after %q", p.cur().Line, p.cur(), nameTok.Text)
}

func (p *Parser) parseIf() (Stmt, error) {
	tok := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStmtAsBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Line: tok.Line, Cond: cond, Then: then}
	if p.at(KW_ELSE) {
		p.advance()
		els, err := p.parseStmtAsBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	tok := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStmtAsBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Line: tok.Line, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	tok := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	stmt := &ForStmt{Line: tok.Line}

	if !p.at(SEMICOLON) {
		var init Stmt
		var err error
		if p.cur().Kind.IsType() {
			init, err = p.parseVarDecl()
		} else {
			init, err = p.parseSimpleStmt()
		}
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	if !p.at(SEMICOLON) {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	if !p.at(RPAREN) {
		post, err := p.parseSimpleStmt()
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStmtAsBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseCout() (Stmt, error) {
	tok := p.advance()
	stmt := &CoutStmt{Line: tok.Line}
	if !p.at(LSHIFT) {
		return nil, fmt.Errorf("line %d: expected << after cout", p.cur().Line)
	}
	for p.at(LSHIFT) {
		p.advance()
		if p.at(KW_ENDL) {
			e := p.advance()
			stmt.Items = append(stmt.Items, &Endl{Line: e.Line})
			continue
		}
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Items = append(stmt.Items, item)
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCin() (Stmt, error) {
	tok := p.advance()
	stmt := &CinStmt{Line: tok.Line}
	if !p.at(RSHIFT) {
		return nil, fmt.Errorf("line %d: expected >> after cin", p.cur().Line)
	}
	for p.at(RSHIFT) {
		p.advance()
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		stmt.Targets = append(stmt.Targets, &Ident{Line: nameTok.Line, Name: nameTok.Text})
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// --- Expressions ---
//
// Precedence, lowest to highest: || && ==/!= relational additive
// multiplicative unary.

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseBinaryLevel(ops []Kind, next func() (Expr, error)) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.at(op) {
				tok := p.advance()
				right, err := next()
				if err != nil {
					return nil, err
				}
				left = &BinaryExpr{Line: tok.Line, Op: op, X: left, Y: right}
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
	}
}

func (p *Parser) parseOr() (Expr, error) {
	return p.parseBinaryLevel([]Kind{OR}, p.parseAnd)
}

func (p *Parser) parseAnd() (Expr, error) {
	return p.parseBinaryLevel([]Kind{AND}, p.parseEquality)
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinaryLevel([]Kind{EQ, NEQ}, p.parseRelational)
}

func (p *Parser) parseRelational() (Expr, error) {
	return p.parseBinaryLevel([]Kind{LT, LE, GT, GE}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (Expr, error) {
	return p.parseBinaryLevel([]Kind{PLUS, MINUS}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	return p.parseBinaryLevel([]Kind{STAR, SLASH, PERCENT}, p.parseUnary)
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.at(MINUS) || p.at(NOT) {
		tok := p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Line: tok.Line, Op: tok.Kind, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case INT_LIT:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad integer literal %q: %w", tok.Line, tok.Text, err)
		}
		return &IntLit{Line: tok.Line, Value: v}, nil

	case FLOAT_LIT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad float literal %q: %w", tok.Line, tok.Text, err)
		}
		return &FloatLit{Line: tok.Line, Value: v, Raw: tok.Text}, nil

	case STRING_LIT:
		p.advance()
		val, err := unquoteString(tok.Text)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad string literal %s: %w", tok.Line, tok.Text, err)
		}
		return &StringLit{Line: tok.Line, Value: val, Raw: tok.Text}, nil

	case CHAR_LIT:
		p.advance()
		val, err := unquoteChar(tok.Text)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad char literal %s: %w", tok.Line, tok.Text, err)
		}
		return &CharLit{Line: tok.Line, Value: val, Raw: tok.Text}, nil

	case KW_TRUE:
		p.advance()
		return &BoolLit{Line: tok.Line, Value: true}, nil

	case KW_FALSE:
		p.advance()
		return &BoolLit{Line: tok.Line, Value: false}, nil

	case LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &ParenExpr{Line: tok.Line, X: inner}, nil

	case IDENT:
		p.advance()
		ident := &Ident{Line: tok.Line, Name: tok.Text}
		switch p.cur().Kind {
		case LPAREN:
			return p.parseCallArgs(ident)
		case LBRACKET:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			return &IndexExpr{Line: tok.Line, X: ident, Index: idx}, nil
		}
		return ident, nil
	}
	return nil, fmt.Errorf("line %d: unexpected %s in expression", tok.Line, tok)
}

func (p *Parser) parseCallArgs(fun *Ident) (Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	call := &CallExpr{Line: fun.Line, Fun: fun.Name}
	for !p.at(RPAREN) {
		if len(call.Args) > 0 {
			if _, err := p.expect(COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	p.advance() // )
	return call, nil
}

// unquoteString strips quotes and resolves the escapes the lexer accepts.
func unquoteString(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("not a quoted string")
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String(), nil
}

func unquoteChar(raw string) (rune, error) {
	if len(raw) < 3 || raw[0] != '\'' || raw[len(raw)-1] != '\'' {
		return 0, fmt.Errorf("not a char literal")
	}
	body := raw[1 : len(raw)-1]
	if body[0] != '\\' {
		return rune(body[0]), nil
	}
	switch body[1] {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '0':
		return 0, nil
	}
	return rune(body[1]), nil
}
