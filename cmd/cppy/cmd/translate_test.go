package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "testdata/sample.py", outputPath("testdata/sample.cpp", ""))
	assert.Equal(t, "sample_gen.py", outputPath("sample.cpp", "_gen"))
	assert.Equal(t, "a/b/x_out.py", outputPath("a/b/x.cpp", "_out"))
}

func TestTranslateCommand(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "..", "testdata", "sample.cpp"))
	require.NoError(t, err)

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.cpp")
	require.NoError(t, os.WriteFile(input, src, 0644))

	rootCmd.SetArgs([]string{"translate", "-i", input})
	require.NoError(t, rootCmd.Execute())

	out, err := os.ReadFile(filepath.Join(dir, "sample.py"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "for i in range(0, 3):")
	assert.Contains(t, string(out), "b = int(input())")
}

func TestCheckCommandReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.cpp")
	require.NoError(t, os.WriteFile(input, []byte("int main() { int a = ; }\n"), 0644))

	rootCmd.SetArgs([]string{"check", input})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bad.cpp"))
}
