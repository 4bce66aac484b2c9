package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cppytools/cppy/pkg/interp"
	"github.com/cppytools/cppy/pkg/syntax"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file.cpp>",
	Short: "interpret a source file directly",
	Long: `run parses the file and executes it against the process standard
input and output, without generating Python.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		prog, err := syntax.Parse(string(src))
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		logger.Debug("parsed", zap.String("input", args[0]),
			zap.Int("statements", len(prog.Stmts)))

		it := interp.New(&interp.Options{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
		})
		if err := it.Run(prog); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
