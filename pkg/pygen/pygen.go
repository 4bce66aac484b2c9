// Package pygen emits Python source from a parsed C++-subset AST.
package pygen

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cppytools/cppy/pkg/syntax"
)

// Options control the emitted Python.
type Options struct {
	// Indent is the number of spaces per indentation level.
	Indent int `yaml:"indent"`
	// Header is a comment line placed at the top of every generated file.
	// Empty disables the header.
	Header string `yaml:"header"`
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		Indent: 4,
		Header: "# Translated from C++ (subset) to Python",
	}
}

// Emitter converts an AST into Python text. It tracks declared variable
// types so cin targets convert input with the right constructor.
type Emitter struct {
	opts   Options
	types  map[string]string // variable name -> declared C++ type
	inFunc bool
}

// NewEmitter returns an emitter with the given options. Zero-value fields
// fall back to defaults.
func NewEmitter(opts Options) *Emitter {
	def := DefaultOptions()
	if opts.Indent <= 0 {
		opts.Indent = def.Indent
	}
	return &Emitter{opts: opts, types: make(map[string]string)}
}

// Emit renders a whole program. The header line is not included; see
// Translate for the full-file form.
func (em *Emitter) Emit(prog *syntax.Program) (string, error) {
	if prog == nil {
		return "", fmt.Errorf("nil program")
	}
	var lines []string
	for _, stmt := range prog.Stmts {
		lines = append(lines, em.stmt(stmt, 0)...)
	}
	var out []string
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n"), nil
}

// Translate parses src and returns a complete Python file.
func Translate(src string) (string, error) {
	return TranslateWith(src, DefaultOptions())
}

// TranslateWith parses src and emits with the given options.
func TranslateWith(src string, opts Options) (string, error) {
	prog, err := syntax.Parse(src)
	if err != nil {
		return "", err
	}
	body, err := NewEmitter(opts).Emit(prog)
	if err != nil {
		return "", err
	}
	if opts.Header != "" {
		return opts.Header + "\n" + body + "\n", nil
	}
	return body + "\n", nil
}

// TranslateFile reads inputPath, translates it and writes outputPath.
func TranslateFile(inputPath, outputPath string) error {
	return TranslateFileWith(inputPath, outputPath, DefaultOptions())
}

// TranslateFileWith is TranslateFile with explicit options.
func TranslateFileWith(inputPath, outputPath string, opts Options) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	py, err := TranslateWith(string(src), opts)
	if err != nil {
		return fmt.Errorf("failed to translate %s: %w", inputPath, err)
	}
	if err := os.WriteFile(outputPath, []byte(py), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}

func (em *Emitter) prefix(depth int) string {
	return strings.Repeat(" ", em.opts.Indent*depth)
}

// stmt returns fully indented output lines for a single statement.
func (em *Emitter) stmt(s syntax.Stmt, depth int) []string {
	ind := em.prefix(depth)
	switch s := s.(type) {

	case *syntax.VarDecl:
		em.types[s.Name] = s.Type
		if s.ArrayLen != nil {
			return []string{fmt.Sprintf("%s%s = [%s] * %s",
				ind, s.Name, zeroValue(s.Type), em.expr(s.ArrayLen))}
		}
		if s.Init != nil {
			return []string{fmt.Sprintf("%s%s = %s", ind, s.Name, em.expr(s.Init))}
		}
		return []string{fmt.Sprintf("%s%s = %s", ind, s.Name, defaultValue(s.Type))}

	case *syntax.Assign:
		return []string{fmt.Sprintf("%s%s = %s", ind, em.expr(s.Target), em.expr(s.Value))}

	case *syntax.IncDecStmt:
		op := "+="
		if s.Dec {
			op = "-="
		}
		return []string{fmt.Sprintf("%s%s %s 1", ind, s.X.Name, op)}

	case *syntax.IfStmt:
		lines := []string{fmt.Sprintf("%sif %s:", ind, em.expr(s.Cond))}
		lines = append(lines, em.body(s.Then, depth+1)...)
		if s.Else != nil {
			lines = append(lines, ind+"else:")
			lines = append(lines, em.body(s.Else, depth+1)...)
		}
		return lines

	case *syntax.WhileStmt:
		lines := []string{fmt.Sprintf("%swhile %s:", ind, em.expr(s.Cond))}
		return append(lines, em.body(s.Body, depth+1)...)

	case *syntax.ForStmt:
		return em.forStmt(s, depth)

	case *syntax.CoutStmt:
		return []string{ind + em.coutCall(s)}

	case *syntax.CinStmt:
		var lines []string
		for _, t := range s.Targets {
			lines = append(lines, ind+em.cinAssign(t))
		}
		return lines

	case *syntax.ReturnStmt:
		// Top-level return comes from the flattened main body; a Python
		// script has no enclosing function to return from.
		if !em.inFunc {
			return nil
		}
		if s.Value == nil {
			return []string{ind + "return"}
		}
		return []string{fmt.Sprintf("%sreturn %s", ind, em.expr(s.Value))}

	case *syntax.ExprStmt:
		return []string{ind + em.expr(s.X)}

	case *syntax.FuncDecl:
		return em.funcDecl(s, depth)

	case *syntax.Block:
		var lines []string
		for _, inner := range s.Stmts {
			lines = append(lines, em.stmt(inner, depth)...)
		}
		return lines
	}
	return nil
}

// body emits a block, substituting pass when nothing remains.
func (em *Emitter) body(blk *syntax.Block, depth int) []string {
	var lines []string
	for _, s := range blk.Stmts {
		lines = append(lines, em.stmt(s, depth)...)
	}
	var out []string
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return []string{em.prefix(depth) + "pass"}
	}
	return out
}

func (em *Emitter) funcDecl(fn *syntax.FuncDecl, depth int) []string {
	var params []string
	for _, p := range fn.Params {
		em.types[p.Name] = p.Type
		params = append(params, p.Name)
	}
	lines := []string{fmt.Sprintf("%sdef %s(%s):", em.prefix(depth), fn.Name, strings.Join(params, ", "))}
	em.inFunc = true
	lines = append(lines, em.body(fn.Body, depth+1)...)
	em.inFunc = false
	return lines
}

// forStmt lowers a C-style counting loop to range() when it matches the
// var = start; var < end; var++ shape, falling back to a while loop with
// the post statement appended to the body.
func (em *Emitter) forStmt(s *syntax.ForStmt, depth int) []string {
	ind := em.prefix(depth)

	if header, ok := em.rangeHeader(s); ok {
		lines := []string{ind + header}
		return append(lines, em.body(s.Body, depth+1)...)
	}

	var lines []string
	if s.Init != nil {
		lines = append(lines, em.stmt(s.Init, depth)...)
	}
	cond := "True"
	if s.Cond != nil {
		cond = em.expr(s.Cond)
	}
	lines = append(lines, fmt.Sprintf("%swhile %s:", ind, cond))
	inner := em.body(s.Body, depth+1)
	if s.Post != nil {
		post := em.stmt(s.Post, depth+1)
		if len(inner) == 1 && strings.TrimSpace(inner[0]) == "pass" {
			inner = post
		} else {
			inner = append(inner, post...)
		}
	}
	return append(lines, inner...)
}

// rangeHeader recognizes the counting-loop shape and builds the Python
// for-range header.
func (em *Emitter) rangeHeader(s *syntax.ForStmt) (string, bool) {
	if s.Init == nil || s.Cond == nil || s.Post == nil {
		return "", false
	}

	var loopVar, start string
	switch init := s.Init.(type) {
	case *syntax.VarDecl:
		if init.ArrayLen != nil {
			return "", false
		}
		loopVar = init.Name
		em.types[loopVar] = init.Type
		start = "0"
		if init.Init != nil {
			start = em.expr(init.Init)
		}
	case *syntax.Assign:
		ident, ok := init.Target.(*syntax.Ident)
		if !ok {
			return "", false
		}
		loopVar = ident.Name
		start = em.expr(init.Value)
	default:
		return "", false
	}

	cond, ok := s.Cond.(*syntax.BinaryExpr)
	if !ok || (cond.Op != syntax.LT && cond.Op != syntax.LE) {
		return "", false
	}
	condVar, ok := cond.X.(*syntax.Ident)
	if !ok || condVar.Name != loopVar {
		return "", false
	}
	end := em.expr(cond.Y)
	if cond.Op == syntax.LE {
		end = "(" + end + ") + 1"
	}

	step := ""
	switch post := s.Post.(type) {
	case *syntax.IncDecStmt:
		if post.X.Name != loopVar || post.Dec {
			return "", false
		}
	case *syntax.Assign:
		ident, ok := post.Target.(*syntax.Ident)
		if !ok || ident.Name != loopVar {
			return "", false
		}
		// var = var + k
		bin, ok := post.Value.(*syntax.BinaryExpr)
		if !ok || bin.Op != syntax.PLUS {
			return "", false
		}
		lhs, ok := bin.X.(*syntax.Ident)
		if !ok || lhs.Name != loopVar {
			return "", false
		}
		step = em.expr(bin.Y)
		if step == "1" {
			step = ""
		}
	default:
		return "", false
	}

	header := fmt.Sprintf("for %s in range(%s, %s", loopVar, start, end)
	if step != "" {
		header += ", " + step
	}
	return header + "):", true
}

// coutCall renders a cout chain as a single print call. sep/end keywords
// are added only when the defaults would diverge from the stream output.
func (em *Emitter) coutCall(s *syntax.CoutStmt) string {
	var args []string
	endsWithEndl := false
	for i, item := range s.Items {
		if _, ok := item.(*syntax.Endl); ok {
			endsWithEndl = i == len(s.Items)-1
			continue
		}
		args = append(args, em.expr(item))
	}
	if len(args) == 0 {
		return "print()"
	}
	var kwargs []string
	if len(args) > 1 {
		kwargs = append(kwargs, `sep=""`)
	}
	if !endsWithEndl {
		kwargs = append(kwargs, `end=""`)
	}
	all := append(args, kwargs...)
	return "print(" + strings.Join(all, ", ") + ")"
}

// cinAssign converts one extraction target using its declared type.
func (em *Emitter) cinAssign(target *syntax.Ident) string {
	switch em.types[target.Name] {
	case "int":
		return fmt.Sprintf("%s = int(input())", target.Name)
	case "float", "double":
		return fmt.Sprintf("%s = float(input())", target.Name)
	case "bool":
		return fmt.Sprintf("%s = input().lower() in ('1', 'true', 'yes')", target.Name)
	default:
		return fmt.Sprintf("%s = input()", target.Name)
	}
}

func (em *Emitter) expr(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.Ident:
		return e.Name
	case *syntax.IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *syntax.FloatLit:
		return e.Raw
	case *syntax.StringLit:
		return e.Raw
	case *syntax.CharLit:
		return e.Raw
	case *syntax.BoolLit:
		if e.Value {
			return "True"
		}
		return "False"
	case *syntax.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", em.expr(e.X), pyOperator(e.Op), em.expr(e.Y))
	case *syntax.UnaryExpr:
		if e.Op == syntax.NOT {
			return "not " + em.expr(e.X)
		}
		return "-" + em.expr(e.X)
	case *syntax.ParenExpr:
		return "(" + em.expr(e.X) + ")"
	case *syntax.CallExpr:
		var args []string
		for _, a := range e.Args {
			args = append(args, em.expr(a))
		}
		return fmt.Sprintf("%s(%s)", e.Fun, strings.Join(args, ", "))
	case *syntax.IndexExpr:
		return fmt.Sprintf("%s[%s]", e.X.Name, em.expr(e.Index))
	case *syntax.Endl:
		return ""
	}
	return ""
}

func pyOperator(op syntax.Kind) string {
	switch op {
	case syntax.AND:
		return "and"
	case syntax.OR:
		return "or"
	}
	return op.String()
}

// zeroValue is the element used to fill translated fixed arrays.
func zeroValue(cppType string) string {
	switch cppType {
	case "float", "double":
		return "0.0"
	case "char", "string":
		return "''"
	case "bool":
		return "False"
	default:
		return "0"
	}
}

// defaultValue mirrors value initialization for bare declarations.
func defaultValue(cppType string) string {
	switch cppType {
	case "int":
		return "0"
	case "float", "double":
		return "0.0"
	case "char", "string":
		return "''"
	case "bool":
		return "False"
	default:
		return "None"
	}
}
