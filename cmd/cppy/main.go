package main

import "github.com/cppytools/cppy/cmd/cppy/cmd"

func main() {
	cmd.Execute()
}
