// Package interp executes parsed C++-subset programs directly against an
// input and output stream, without going through the Python backend.
package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/cppytools/cppy/pkg/syntax"
)

// Options configure an interpreter run.
type Options struct {
	// Stdin is the source for cin extractions. Defaults to os.Stdin.
	Stdin io.Reader

	// Stdout receives cout insertions. Defaults to os.Stdout.
	Stdout io.Writer
}

// DefaultOptions returns options wired to the process streams.
func DefaultOptions() *Options {
	return &Options{Stdin: os.Stdin, Stdout: os.Stdout}
}

// Interp is a tree-walking evaluator for one program run.
type Interp struct {
	in      io.Reader
	out     io.Writer
	funcs   map[string]*syntax.FuncDecl
	globals *Scope
}

// New returns an interpreter with the given options. A nil config uses
// the process streams.
func New(opts *Options) *Interp {
	if opts == nil {
		opts = DefaultOptions()
	}
	in := opts.Stdin
	if in == nil {
		in = os.Stdin
	}
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &Interp{
		in:      in,
		out:     out,
		funcs:   make(map[string]*syntax.FuncDecl),
		globals: NewScope(nil),
	}
}

// Run executes a parsed program. A top-level return ends the run with
// success, matching a return from main.
func (it *Interp) Run(prog *syntax.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	for _, stmt := range prog.Stmts {
		if fn, ok := stmt.(*syntax.FuncDecl); ok {
			it.funcs[fn.Name] = fn
		}
	}
	for _, stmt := range prog.Stmts {
		if _, ok := stmt.(*syntax.FuncDecl); ok {
			continue
		}
		if err := it.exec(stmt, it.globals); err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil
			}
			return err
		}
	}
	return nil
}

// RunSource parses and executes src in one step.
func RunSource(src string, opts *Options) error {
	prog, err := syntax.Parse(src)
	if err != nil {
		return err
	}
	return New(opts).Run(prog)
}

// returnSignal unwinds a return statement up to the enclosing call (or the
// top level).
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return" }

func (it *Interp) exec(stmt syntax.Stmt, sc *Scope) error {
	switch s := stmt.(type) {

	case *syntax.VarDecl:
		return it.declare(s, sc)

	case *syntax.Assign:
		val, err := it.eval(s.Value, sc)
		if err != nil {
			return err
		}
		return it.assign(s.Target, val, sc)

	case *syntax.IncDecStmt:
		c, ok := sc.lookup(s.X.Name)
		if !ok {
			return fmt.Errorf("line %d: undefined variable %q", s.Line, s.X.Name)
		}
		n, ok := c.val.(int64)
		if !ok {
			return fmt.Errorf("line %d: %q is not an integer", s.Line, s.X.Name)
		}
		if s.Dec {
			c.val = n - 1
		} else {
			c.val = n + 1
		}
		return nil

	case *syntax.IfStmt:
		cond, err := it.eval(s.Cond, sc)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return it.execBlock(s.Then, NewScope(sc))
		}
		if s.Else != nil {
			return it.execBlock(s.Else, NewScope(sc))
		}
		return nil

	case *syntax.WhileStmt:
		for {
			cond, err := it.eval(s.Cond, sc)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			if err := it.execBlock(s.Body, NewScope(sc)); err != nil {
				return err
			}
		}

	case *syntax.ForStmt:
		loop := NewScope(sc)
		if s.Init != nil {
			if err := it.exec(s.Init, loop); err != nil {
				return err
			}
		}
		for {
			if s.Cond != nil {
				cond, err := it.eval(s.Cond, loop)
				if err != nil {
					return err
				}
				if !truthy(cond) {
					return nil
				}
			}
			if err := it.execBlock(s.Body, NewScope(loop)); err != nil {
				return err
			}
			if s.Post != nil {
				if err := it.exec(s.Post, loop); err != nil {
					return err
				}
			}
		}

	case *syntax.CoutStmt:
		for _, item := range s.Items {
			if _, ok := item.(*syntax.Endl); ok {
				if _, err := io.WriteString(it.out, "\n"); err != nil {
					return err
				}
				continue
			}
			val, err := it.eval(item, sc)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(it.out, formatValue(val)); err != nil {
				return err
			}
		}
		return nil

	case *syntax.CinStmt:
		return it.readInto(s, sc)

	case *syntax.ReturnStmt:
		var val Value = int64(0)
		if s.Value != nil {
			v, err := it.eval(s.Value, sc)
			if err != nil {
				return err
			}
			val = v
		}
		return returnSignal{value: val}

	case *syntax.ExprStmt:
		_, err := it.eval(s.X, sc)
		return err

	case *syntax.Block:
		return it.execBlock(s, NewScope(sc))

	case *syntax.FuncDecl:
		it.funcs[s.Name] = s
		return nil
	}
	return fmt.Errorf("line %d: cannot execute %T", stmt.Pos(), stmt)
}

func (it *Interp) execBlock(blk *syntax.Block, sc *Scope) error {
	for _, stmt := range blk.Stmts {
		if err := it.exec(stmt, sc); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) declare(d *syntax.VarDecl, sc *Scope) error {
	if d.ArrayLen != nil {
		lv, err := it.eval(d.ArrayLen, sc)
		if err != nil {
			return err
		}
		n, ok := lv.(int64)
		if !ok || n < 0 {
			return fmt.Errorf("line %d: bad array length for %q", d.Line, d.Name)
		}
		arr := make([]Value, n)
		for i := range arr {
			arr[i] = zeroOf(d.Type)
		}
		sc.define(d.Name, &cell{typ: d.Type, arr: arr})
		return nil
	}

	val := zeroOf(d.Type)
	if d.Init != nil {
		v, err := it.eval(d.Init, sc)
		if err != nil {
			return err
		}
		cv, err := convert(d.Type, v)
		if err != nil {
			return fmt.Errorf("line %d: %w", d.Line, err)
		}
		val = cv
	}
	sc.define(d.Name, &cell{typ: d.Type, val: val})
	return nil
}

func (it *Interp) assign(target syntax.Expr, val Value, sc *Scope) error {
	switch t := target.(type) {
	case *syntax.Ident:
		c, ok := sc.lookup(t.Name)
		if !ok {
			return fmt.Errorf("line %d: undefined variable %q", t.Line, t.Name)
		}
		cv, err := convert(c.typ, val)
		if err != nil {
			return fmt.Errorf("line %d: %w", t.Line, err)
		}
		c.val = cv
		return nil

	case *syntax.IndexExpr:
		c, ok := sc.lookup(t.X.Name)
		if !ok {
			return fmt.Errorf("line %d: undefined variable %q", t.Line, t.X.Name)
		}
		if c.arr == nil {
			return fmt.Errorf("line %d: %q is not an array", t.Line, t.X.Name)
		}
		iv, err := it.eval(t.Index, sc)
		if err != nil {
			return err
		}
		idx, ok := iv.(int64)
		if !ok {
			return fmt.Errorf("line %d: array index must be an integer", t.Line)
		}
		if idx < 0 || idx >= int64(len(c.arr)) {
			return fmt.Errorf("line %d: index %d out of range for %q (length %d)",
				t.Line, idx, t.X.Name, len(c.arr))
		}
		cv, err := convert(c.typ, val)
		if err != nil {
			return fmt.Errorf("line %d: %w", t.Line, err)
		}
		c.arr[idx] = cv
		return nil
	}
	return fmt.Errorf("line %d: invalid assignment target %T", target.Pos(), target)
}

// readInto performs cin extraction. A failed scan leaves the target at its
// current (zero) value and execution continues; the source language leaves
// malformed input unhandled and so does this.
func (it *Interp) readInto(s *syntax.CinStmt, sc *Scope) error {
	for _, target := range s.Targets {
		c, ok := sc.lookup(target.Name)
		if !ok {
			return fmt.Errorf("line %d: undefined variable %q", s.Line, target.Name)
		}
		switch c.typ {
		case "int":
			var n int64
			if _, err := fmt.Fscan(it.in, &n); err == nil {
				c.val = n
			}
		case "float", "double":
			var f float64
			if _, err := fmt.Fscan(it.in, &f); err == nil {
				c.val = f
			}
		case "char":
			var str string
			if _, err := fmt.Fscan(it.in, &str); err == nil && str != "" {
				c.val = Char(str[0])
			}
		case "bool":
			var str string
			if _, err := fmt.Fscan(it.in, &str); err == nil {
				c.val = str == "1" || str == "true"
			}
		default:
			var str string
			if _, err := fmt.Fscan(it.in, &str); err == nil {
				c.val = str
			}
		}
	}
	return nil
}

func (it *Interp) eval(expr syntax.Expr, sc *Scope) (Value, error) {
	switch e := expr.(type) {

	case *syntax.IntLit:
		return e.Value, nil
	case *syntax.FloatLit:
		return e.Value, nil
	case *syntax.StringLit:
		return e.Value, nil
	case *syntax.CharLit:
		return Char(e.Value), nil
	case *syntax.BoolLit:
		return e.Value, nil

	case *syntax.Ident:
		c, ok := sc.lookup(e.Name)
		if !ok {
			return nil, fmt.Errorf("line %d: undefined variable %q", e.Line, e.Name)
		}
		if c.arr != nil {
			return nil, fmt.Errorf("line %d: array %q used without index", e.Line, e.Name)
		}
		return c.val, nil

	case *syntax.IndexExpr:
		c, ok := sc.lookup(e.X.Name)
		if !ok {
			return nil, fmt.Errorf("line %d: undefined variable %q", e.Line, e.X.Name)
		}
		if c.arr == nil {
			return nil, fmt.Errorf("line %d: %q is not an array", e.Line, e.X.Name)
		}
		iv, err := it.eval(e.Index, sc)
		if err != nil {
			return nil, err
		}
		idx, ok := iv.(int64)
		if !ok {
			return nil, fmt.Errorf("line %d: array index must be an integer", e.Line)
		}
		if idx < 0 || idx >= int64(len(c.arr)) {
			return nil, fmt.Errorf("line %d: index %d out of range for %q (length %d)",
				e.Line, idx, e.X.Name, len(c.arr))
		}
		return c.arr[idx], nil

	case *syntax.ParenExpr:
		return it.eval(e.X, sc)

	case *syntax.UnaryExpr:
		v, err := it.eval(e.X, sc)
		if err != nil {
			return nil, err
		}
		if e.Op == syntax.NOT {
			return !truthy(v), nil
		}
		switch x := v.(type) {
		case int64:
			return -x, nil
		case float64:
			return -x, nil
		case Char:
			return -int64(x), nil
		}
		return nil, fmt.Errorf("line %d: cannot negate %s", e.Line, typeName(v))

	case *syntax.BinaryExpr:
		return it.evalBinary(e, sc)

	case *syntax.CallExpr:
		return it.call(e, sc)

	case *syntax.Endl:
		return "\n", nil
	}
	return nil, fmt.Errorf("line %d: cannot evaluate %T", expr.Pos(), expr)
}

func (it *Interp) call(e *syntax.CallExpr, sc *Scope) (Value, error) {
	fn, ok := it.funcs[e.Fun]
	if !ok {
		return nil, fmt.Errorf("line %d: undefined function %q", e.Line, e.Fun)
	}
	if len(e.Args) != len(fn.Params) {
		return nil, fmt.Errorf("line %d: %q expects %d arguments, got %d",
			e.Line, e.Fun, len(fn.Params), len(e.Args))
	}

	// Arguments evaluate in the caller's scope; the body sees only its
	// parameters and globals.
	frame := NewScope(it.globals)
	for i, param := range fn.Params {
		v, err := it.eval(e.Args[i], sc)
		if err != nil {
			return nil, err
		}
		cv, err := convert(param.Type, v)
		if err != nil {
			return nil, fmt.Errorf("line %d: argument %d of %q: %w", e.Line, i+1, e.Fun, err)
		}
		frame.define(param.Name, &cell{typ: param.Type, val: cv})
	}

	if err := it.execBlock(fn.Body, frame); err != nil {
		if ret, ok := err.(returnSignal); ok {
			return convert(fn.RetType, ret.value)
		}
		return nil, err
	}
	return zeroOf(fn.RetType), nil
}

func (it *Interp) evalBinary(e *syntax.BinaryExpr, sc *Scope) (Value, error) {
	// Short-circuit forms evaluate the right side only when needed.
	if e.Op == syntax.AND || e.Op == syntax.OR {
		left, err := it.eval(e.X, sc)
		if err != nil {
			return nil, err
		}
		if e.Op == syntax.AND && !truthy(left) {
			return false, nil
		}
		if e.Op == syntax.OR && truthy(left) {
			return true, nil
		}
		right, err := it.eval(e.Y, sc)
		if err != nil {
			return nil, err
		}
		return truthy(right), nil
	}

	left, err := it.eval(e.X, sc)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(e.Y, sc)
	if err != nil {
		return nil, err
	}

	if ls, lok := left.(string); lok {
		if rs, rok := right.(string); rok {
			return stringOp(e, ls, rs)
		}
	}

	lf, lIsFloat, lok := numeric(left)
	rf, rIsFloat, rok := numeric(right)
	if !lok || !rok {
		return nil, fmt.Errorf("line %d: invalid operands %s and %s for %s",
			e.Line, typeName(left), typeName(right), e.Op)
	}

	if lIsFloat || rIsFloat {
		return floatOp(e, lf, rf)
	}
	return intOp(e, int64(lf), int64(rf))
}

// numeric widens a numeric value to float64 and reports whether the
// original was floating.
func numeric(v Value) (f float64, isFloat, ok bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), false, true
	case float64:
		return x, true, true
	case Char:
		return float64(x), false, true
	case bool:
		if x {
			return 1, false, true
		}
		return 0, false, true
	}
	return 0, false, false
}

func intOp(e *syntax.BinaryExpr, l, r int64) (Value, error) {
	switch e.Op {
	case syntax.PLUS:
		return l + r, nil
	case syntax.MINUS:
		return l - r, nil
	case syntax.STAR:
		return l * r, nil
	case syntax.SLASH:
		if r == 0 {
			return nil, fmt.Errorf("line %d: integer division by zero", e.Line)
		}
		return l / r, nil
	case syntax.PERCENT:
		if r == 0 {
			return nil, fmt.Errorf("line %d: integer division by zero", e.Line)
		}
		return l % r, nil
	case syntax.EQ:
		return l == r, nil
	case syntax.NEQ:
		return l != r, nil
	case syntax.LT:
		return l < r, nil
	case syntax.GT:
		return l > r, nil
	case syntax.LE:
		return l <= r, nil
	case syntax.GE:
		return l >= r, nil
	}
	return nil, fmt.Errorf("line %d: unsupported operator %s", e.Line, e.Op)
}

func floatOp(e *syntax.BinaryExpr, l, r float64) (Value, error) {
	switch e.Op {
	case syntax.PLUS:
		return l + r, nil
	case syntax.MINUS:
		return l - r, nil
	case syntax.STAR:
		return l * r, nil
	case syntax.SLASH:
		if r == 0 {
			return nil, fmt.Errorf("line %d: division by zero", e.Line)
		}
		return l / r, nil
	case syntax.EQ:
		return l == r, nil
	case syntax.NEQ:
		return l != r, nil
	case syntax.LT:
		return l < r, nil
	case syntax.GT:
		return l > r, nil
	case syntax.LE:
		return l <= r, nil
	case syntax.GE:
		return l >= r, nil
	}
	return nil, fmt.Errorf("line %d: unsupported operator %s for floats", e.Line, e.Op)
}

func stringOp(e *syntax.BinaryExpr, l, r string) (Value, error) {
	switch e.Op {
	case syntax.PLUS:
		return l + r, nil
	case syntax.EQ:
		return l == r, nil
	case syntax.NEQ:
		return l != r, nil
	case syntax.LT:
		return l < r, nil
	case syntax.GT:
		return l > r, nil
	case syntax.LE:
		return l <= r, nil
	case syntax.GE:
		return l >= r, nil
	}
	return nil, fmt.Errorf("line %d: unsupported operator %s for strings", e.Line, e.Op)
}
