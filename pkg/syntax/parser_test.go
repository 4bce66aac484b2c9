package syntax_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppytools/cppy/pkg/syntax"
)

func parseFixture(t *testing.T, name string) *syntax.Program {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	prog, err := syntax.Parse(string(src))
	require.NoError(t, err)
	return prog
}

func TestParseSample(t *testing.T) {
	prog := parseFixture(t, "sample.cpp")

	// square stays a declaration; the main body is flattened after it.
	require.NotEmpty(t, prog.Stmts)
	fn, ok := prog.Stmts[0].(*syntax.FuncDecl)
	require.True(t, ok, "first statement should be the square declaration")
	assert.Equal(t, "square", fn.Name)
	assert.Equal(t, "int", fn.RetType)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, syntax.Param{Type: "int", Name: "x"}, fn.Params[0])

	// int a = 5;
	decl, ok := prog.Stmts[1].(*syntax.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "a", decl.Name)
	init, ok := decl.Init.(*syntax.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(5), init.Value)

	// int arr[3];
	arr, ok := prog.Stmts[2].(*syntax.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "arr", arr.Name)
	length, ok := arr.ArrayLen.(*syntax.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(3), length.Value)
	assert.Nil(t, arr.Init)

	// No FuncDecl named main survives flattening.
	for _, s := range prog.Stmts {
		if fd, ok := s.(*syntax.FuncDecl); ok {
			assert.NotEqual(t, "main", fd.Name)
		}
	}

	// Last flattened statement is return 0.
	ret, ok := prog.Stmts[len(prog.Stmts)-1].(*syntax.ReturnStmt)
	require.True(t, ok)
	val, ok := ret.Value.(*syntax.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(0), val.Value)
}

func TestParseCoutChain(t *testing.T) {
	prog, err := syntax.Parse(`int main() {
    string msg = "Hello";
    int a = 5;
    cout << msg << " " << a << endl;
    return 0;
}`)
	require.NoError(t, err)

	var cout *syntax.CoutStmt
	for _, s := range prog.Stmts {
		if c, ok := s.(*syntax.CoutStmt); ok {
			cout = c
		}
	}
	require.NotNil(t, cout)
	require.Len(t, cout.Items, 4)
	assert.IsType(t, &syntax.Ident{}, cout.Items[0])
	assert.IsType(t, &syntax.StringLit{}, cout.Items[1])
	assert.IsType(t, &syntax.Ident{}, cout.Items[2])
	assert.IsType(t, &syntax.Endl{}, cout.Items[3])
}

func TestParseCinChain(t *testing.T) {
	prog, err := syntax.Parse(`int main() {
    int x;
    int y;
    cin >> x >> y;
    return 0;
}`)
	require.NoError(t, err)

	var cin *syntax.CinStmt
	for _, s := range prog.Stmts {
		if c, ok := s.(*syntax.CinStmt); ok {
			cin = c
		}
	}
	require.NotNil(t, cin)
	require.Len(t, cin.Targets, 2)
	assert.Equal(t, "x", cin.Targets[0].Name)
	assert.Equal(t, "y", cin.Targets[1].Name)
}

func TestParsePrecedence(t *testing.T) {
	prog, err := syntax.Parse(`int main() {
    int r = 1 + 2 * 3;
    return 0;
}`)
	require.NoError(t, err)

	decl := prog.Stmts[0].(*syntax.VarDecl)
	bin, ok := decl.Init.(*syntax.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.PLUS, bin.Op)
	right, ok := bin.Y.(*syntax.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, syntax.STAR, right.Op)
}

func TestParseSingleStatementBodies(t *testing.T) {
	// if/while/for bodies without braces wrap into one-element blocks.
	prog, err := syntax.Parse(`int main() {
    int a = 0;
    if (a > 0) a = 1;
    while (a < 3) a++;
    return 0;
}`)
	require.NoError(t, err)

	ifs, ok := prog.Stmts[1].(*syntax.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.Then.Stmts, 1)
	assert.Nil(t, ifs.Else)

	whiles, ok := prog.Stmts[2].(*syntax.WhileStmt)
	require.True(t, ok)
	require.Len(t, whiles.Body.Stmts, 1)
	assert.IsType(t, &syntax.IncDecStmt{}, whiles.Body.Stmts[0])
}

func TestParseErrorsCarryLine(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"missing semicolon", "int main() {\n    int a = 5\n    return 0;\n}", "line 3"},
		{"missing paren", "int main() {\n    if (a > 0 {\n    }\n}", "line 2"},
		{"bare cout", "int main() {\n    cout;\n}", "expected << after cout"},
		{"bare cin", "int main() {\n    cin;\n}", "expected >> after cin"},
		{"garbage", "int main() {\n    $;\n}", "illegal character"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := syntax.Parse(tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseFixtures(t *testing.T) {
	for _, name := range []string{"sample.cpp", "loops.cpp", "functions.cpp", "io.cpp"} {
		t.Run(name, func(t *testing.T) {
			prog := parseFixture(t, name)
			assert.NotEmpty(t, prog.Stmts)
		})
	}
}
