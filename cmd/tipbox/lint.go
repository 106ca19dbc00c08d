package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/tipbox/internal/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [patterns...]",
	Short: "Check widget CSS for class names the tip page will not match",
	Long: `Check CSS against the widget's markup. Without arguments the current
editor CSS is checked; otherwise every file matching the glob patterns.

Errors (short class names, misspelled widget classes) exit 1. With --strict
warnings fail too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := buildLintConfig()
		quiet := getBoolWithFallback("quiet", "quiet", false)

		var result *lint.Result
		if len(args) == 0 {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			result = lint.Lint([]lint.Input{{Name: "current.css", Content: a.session.CSSText()}}, config)
		} else {
			var err error
			result, err = lint.LintFiles(args, config)
			if err != nil {
				return fmt.Errorf("lint failed: %w", err)
			}
		}

		format, err := lint.ParseOutputFormat(getStringWithFallback("output-format", "lint.output-format", ""))
		if err != nil {
			return err
		}
		if !quiet {
			if err := lint.WriteOutput(cmd.OutOrStdout(), result, format, config); err != nil {
				return err
			}
		}

		// Soft gate: only errors fail unless strict
		strict := getBoolWithFallback("strict", "lint.strict", false)
		if result.HasErrors() || (strict && len(result.Issues) > 0) {
			return &exitError{code: 1}
		}
		return nil
	},
}

func init() {
	f := lintCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Bool("require-overflow-fix", true, "Warn when the Fix overflow block is missing")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (linter) suffix on issues")
}
