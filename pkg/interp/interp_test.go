package interp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppytools/cppy/pkg/interp"
)

func runFixture(t *testing.T, name, input string) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return runSource(t, string(src), input)
}

func runSource(t *testing.T, src, input string) string {
	t.Helper()
	var out strings.Builder
	err := interp.RunSource(src, &interp.Options{
		Stdin:  strings.NewReader(input),
		Stdout: &out,
	})
	require.NoError(t, err)
	return out.String()
}

func TestSampleWithZero(t *testing.T) {
	got := runFixture(t, "sample.cpp", "0\n")
	want := "Enter a number: " +
		"Hello 5\nHello 6\nHello 7\nHello 8\nHello 9\n" +
		"Small number!\n" +
		"Array values: 0 1 4 \n"
	assert.Equal(t, want, got)
}

func TestSampleSquaresOffset(t *testing.T) {
	got := runFixture(t, "sample.cpp", "3\n")
	assert.Contains(t, got, "Array values: 9 16 25 \n")
}

func TestSampleThresholdBoundary(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"11\n", "Big number!"},
		{"10\n", "Small number!"}, // strict >, so 10 is small
		{"9\n", "Small number!"},
	}
	for _, tc := range cases {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			got := runFixture(t, "sample.cpp", tc.input)
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestSampleGreetingCountIsInputIndependent(t *testing.T) {
	for _, input := range []string{"0\n", "7\n", "100\n"} {
		got := runFixture(t, "sample.cpp", input)
		assert.Equal(t, 5, strings.Count(got, "Hello "),
			"greeting loop must run exactly 5 times for input %q", input)
		for a := 5; a <= 9; a++ {
			assert.Contains(t, got, "Hello "+string(rune('0'+a))+"\n")
		}
	}
}

func TestSampleMalformedInputKeepsZero(t *testing.T) {
	// Extraction failure leaves b value-initialized; the run continues.
	got := runFixture(t, "sample.cpp", "not-a-number\n")
	assert.Contains(t, got, "Small number!")
	assert.Contains(t, got, "Array values: 0 1 4 \n")

	// Absent input behaves the same way.
	got = runFixture(t, "sample.cpp", "")
	assert.Contains(t, got, "Array values: 0 1 4 \n")
}

func TestSquareFunction(t *testing.T) {
	src := `int square(int x) {
    return x * x;
}

int main() {
    cout << square(0) << " " << square(1) << " " << square(12) << " " << square(-4) << endl;
    return 0;
}
`
	got := runSource(t, src, "")
	assert.Equal(t, "0 1 144 16\n", got)
}

func TestNestedFunctionCalls(t *testing.T) {
	got := runFixture(t, "functions.cpp", "")
	assert.Equal(t, "total=20\n", got)
}

func TestLoopsFixture(t *testing.T) {
	got := runFixture(t, "loops.cpp", "")
	// a goes 5,6,7 over three iterations, always below b=10.
	assert.Equal(t, "a is less\na is less\na is less\n", got)
}

func TestIOFixture(t *testing.T) {
	got := runFixture(t, "io.cpp", "3 2.5\n")
	want := "n? scale? 3\n2\n1\nlarge scale\n"
	assert.Equal(t, want, got)
}

func TestWhileCountdown(t *testing.T) {
	src := `int main() {
    int n = 3;
    while (n > 0) {
        cout << n << endl;
        n--;
    }
    cout << "done" << endl;
    return 0;
}
`
	assert.Equal(t, "3\n2\n1\ndone\n", runSource(t, src, ""))
}

func TestIntegerDivisionTruncates(t *testing.T) {
	src := `int main() {
    cout << 7 / 2 << " " << 7 % 2 << endl;
    return 0;
}
`
	assert.Equal(t, "3 1\n", runSource(t, src, ""))
}

func TestDivisionByZeroFails(t *testing.T) {
	src := `int main() {
    int z = 0;
    cout << 1 / z << endl;
    return 0;
}
`
	err := interp.RunSource(src, &interp.Options{
		Stdin:  strings.NewReader(""),
		Stdout: &strings.Builder{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestArrayBounds(t *testing.T) {
	src := `int main() {
    int arr[3];
    arr[5] = 1;
    return 0;
}
`
	err := interp.RunSource(src, &interp.Options{
		Stdin:  strings.NewReader(""),
		Stdout: &strings.Builder{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestUndefinedVariable(t *testing.T) {
	err := interp.RunSource(`int main() { x = 1; return 0; }`, &interp.Options{
		Stdin:  strings.NewReader(""),
		Stdout: &strings.Builder{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undefined variable "x"`)
}

func TestBlockScoping(t *testing.T) {
	src := `int main() {
    int x = 1;
    if (x > 0) {
        int y = 2;
        x = x + y;
    }
    cout << x << endl;
    return 0;
}
`
	assert.Equal(t, "3\n", runSource(t, src, ""))
}

func TestShortCircuit(t *testing.T) {
	// The right operand would divide by zero; && must not evaluate it.
	src := `int main() {
    int z = 0;
    if (z != 0 && 1 / z > 0) {
        cout << "bad" << endl;
    } else {
        cout << "ok" << endl;
    }
    return 0;
}
`
	assert.Equal(t, "ok\n", runSource(t, src, ""))
}

func TestTopLevelReturnStopsExecution(t *testing.T) {
	src := `int main() {
    cout << "before" << endl;
    return 0;
    cout << "after" << endl;
}
`
	assert.Equal(t, "before\n", runSource(t, src, ""))
}

func TestBoolAndCharOutput(t *testing.T) {
	src := `int main() {
    bool ok = true;
    char c = 'A';
    cout << ok << " " << c << endl;
    return 0;
}
`
	assert.Equal(t, "1 A\n", runSource(t, src, ""))
}
