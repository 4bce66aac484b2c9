package syntax

// Node is the interface implemented by every AST node.
type Node interface {
	Pos() int // source line
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node. Function definitions keep their declaration
// order; the body of main is flattened into top-level statements.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Pos() int {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return 1
}

// Block is a braced statement list.
type Block struct {
	Line  int
	Stmts []Stmt
}

// VarDecl declares a scalar or a fixed-length array. ArrayLen is nil for
// scalars. Init is nil when no initializer is present.
type VarDecl struct {
	Line     int
	Type     string // "int", "float", "double", "char", "bool", "string"
	Name     string
	ArrayLen Expr
	Init     Expr
}

// Assign assigns to an identifier or an index expression.
type Assign struct {
	Line   int
	Target Expr // *Ident or *IndexExpr
	Value  Expr
}

// IfStmt with an optional else block.
type IfStmt struct {
	Line int
	Cond Expr
	Then *Block
	Else *Block // nil when absent
}

// WhileStmt is a precondition loop.
type WhileStmt struct {
	Line int
	Cond Expr
	Body *Block
}

// ForStmt is a C-style counting loop. Init and Post may be nil.
type ForStmt struct {
	Line int
	Init Stmt
	Cond Expr // nil means always true
	Post Stmt
	Body *Block
}

// CoutStmt is a chain of << insertions. Endl markers appear inline.
type CoutStmt struct {
	Line  int
	Items []Expr
}

// CinStmt is a chain of >> extractions into identifiers.
type CinStmt struct {
	Line    int
	Targets []*Ident
}

// ReturnStmt with an optional value.
type ReturnStmt struct {
	Line  int
	Value Expr
}

// ExprStmt is an expression evaluated for effect (a call, typically).
type ExprStmt struct {
	Line int
	X    Expr
}

// IncDecStmt is x++ or x-- in statement position.
type IncDecStmt struct {
	Line int
	X    *Ident
	Dec  bool
}

// FuncDecl is a non-main function definition.
type FuncDecl struct {
	Line    int
	RetType string
	Name    string
	Params  []Param
	Body    *Block
}

// Param is a single function parameter.
type Param struct {
	Type string
	Name string
}

func (b *Block) Pos() int      { return b.Line }
func (d *VarDecl) Pos() int    { return d.Line }
func (a *Assign) Pos() int     { return a.Line }
func (s *IfStmt) Pos() int     { return s.Line }
func (s *WhileStmt) Pos() int  { return s.Line }
func (s *ForStmt) Pos() int    { return s.Line }
func (s *CoutStmt) Pos() int   { return s.Line }
func (s *CinStmt) Pos() int    { return s.Line }
func (s *ReturnStmt) Pos() int { return s.Line }
func (s *ExprStmt) Pos() int   { return s.Line }
func (s *IncDecStmt) Pos() int { return s.Line }
func (d *FuncDecl) Pos() int   { return d.Line }

func (*Block) stmtNode()      {}
func (*VarDecl) stmtNode()    {}
func (*Assign) stmtNode()     {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()    {}
func (*CoutStmt) stmtNode()   {}
func (*CinStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*IncDecStmt) stmtNode() {}
func (*FuncDecl) stmtNode()   {}

// Ident is a variable reference.
type Ident struct {
	Line int
	Name string
}

// IntLit is an integer constant.
type IntLit struct {
	Line  int
	Value int64
}

// FloatLit is a floating constant. Raw keeps the source spelling.
type FloatLit struct {
	Line  int
	Value float64
	Raw   string
}

// StringLit is a double-quoted literal. Raw keeps the quotes and escapes;
// Value is the unescaped content.
type StringLit struct {
	Line  int
	Value string
	Raw   string
}

// CharLit is a single-quoted character constant.
type CharLit struct {
	Line  int
	Value rune
	Raw   string
}

// BoolLit is true or false.
type BoolLit struct {
	Line  int
	Value bool
}

// BinaryExpr applies an infix operator.
type BinaryExpr struct {
	Line int
	Op   Kind
	X, Y Expr
}

// UnaryExpr applies a prefix operator (- or !).
type UnaryExpr struct {
	Line int
	Op   Kind
	X    Expr
}

// ParenExpr preserves explicit grouping.
type ParenExpr struct {
	Line int
	X    Expr
}

// CallExpr is a call to a user-defined function.
type CallExpr struct {
	Line int
	Fun  string
	Args []Expr
}

// IndexExpr is a fixed-array element access.
type IndexExpr struct {
	Line  int
	X     *Ident
	Index Expr
}

// Endl is the endl stream manipulator inside a cout chain.
type Endl struct {
	Line int
}

func (e *Ident) Pos() int      { return e.Line }
func (e *IntLit) Pos() int     { return e.Line }
func (e *FloatLit) Pos() int   { return e.Line }
func (e *StringLit) Pos() int  { return e.Line }
func (e *CharLit) Pos() int    { return e.Line }
func (e *BoolLit) Pos() int    { return e.Line }
func (e *BinaryExpr) Pos() int { return e.Line }
func (e *UnaryExpr) Pos() int  { return e.Line }
func (e *ParenExpr) Pos() int  { return e.Line }
func (e *CallExpr) Pos() int   { return e.Line }
func (e *IndexExpr) Pos() int  { return e.Line }
func (e *Endl) Pos() int       { return e.Line }

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*StringLit) exprNode()  {}
func (*CharLit) exprNode()    {}
func (*BoolLit) exprNode()    {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*ParenExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*Endl) exprNode()       {}
