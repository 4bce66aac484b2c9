package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cppytools/cppy/pkg/syntax"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.cpp>...",
	Short: "parse files and report diagnostics",
	Long:  ``,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var jerr error
		for _, input := range args {
			src, err := os.ReadFile(input)
			if err != nil {
				jerr = errors.Join(jerr, err)
				continue
			}
			if _, err := syntax.Parse(string(src)); err != nil {
				jerr = errors.Join(jerr, fmt.Errorf("%s: %w", input, err))
				continue
			}
			cmd.Printf("%s: ok\n", input)
		}
		return jerr
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
