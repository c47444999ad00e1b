package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/ailang/internal/diagnostics"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tomoc",
	Short: "Exercise the compiler core against a JSON AST fixture",
	Long: `tomoc drives internal/check and internal/codegen end to end over a
JSON-serialized AST fixture (see internal/fixture). There is no lexer or
parser here: fixtures stand in for source text the real frontend would
otherwise produce.`,
	Version: Version,
}

var (
	colorFlag string
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("tomoc version %%s (%s)\n", GitCommit))
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "color output: auto, always, never")
}

func applyColorFlag() {
	switch colorFlag {
	case "always":
		on := true
		diagnostics.UseColor = &on
	case "never":
		off := false
		diagnostics.UseColor = &off
	default:
		diagnostics.UseColor = nil
	}
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "tomoc: "+msg+"\n", args...)
	os.Exit(1)
}
