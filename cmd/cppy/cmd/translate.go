package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cppytools/cppy/pkg/pygen"
)

// translateCmd represents the translate command
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "translate given files to Python",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs := append([]string{}, inputFiles...)
		inputs = append(inputs, args...)
		if len(inputs) == 0 {
			return nil
		}
		if postfix == "" && cfg.Translate.Postfix != "" {
			postfix = cfg.Translate.Postfix
		}
		opts := emitterOptions()

		var jerr error
		for _, input := range inputs {
			output := outputPath(input, postfix)
			if _, err := os.Stat(output); err == nil && !force {
				logger.Warn("output exists, skipping (use --force to overwrite)",
					zap.String("output", output))
				continue
			}
			if err := pygen.TranslateFileWith(input, output, opts); err != nil {
				jerr = errors.Join(jerr, err)
				continue
			}
			logger.Debug("translated",
				zap.String("input", input), zap.String("output", output))
			cmd.Printf("Translation complete. Wrote %s\n", output)
		}
		return jerr
	},
}

var inputFiles []string
var postfix string
var force bool

// outputPath places the .py file next to the input, replacing the
// extension and appending the postfix.
func outputPath(input, postfix string) string {
	dir, filename := filepath.Split(input)
	ext := filepath.Ext(filename)
	return dir + filename[:len(filename)-len(ext)] + postfix + ".py"
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringArrayVarP(&inputFiles, "input", "i",
		[]string{}, "path of input files")
	translateCmd.Flags().StringVarP(&postfix, "postfix", "p", "",
		"postfix of generated files (alongside input files)")
	translateCmd.Flags().BoolVarP(&force, "force", "f", false,
		"force override files")
}
