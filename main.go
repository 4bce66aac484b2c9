package main

import (
	"fmt"
	"os"

	"github.com/cppytools/cppy/pkg/pygen"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: cppy /path/to/source.cpp")
		return
	}
	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Translate with default options and print the Python to stdout
	py, err := pygen.Translate(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(py)
}
