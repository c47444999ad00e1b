package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [fixture.json]",
	Short: "Type-check a JSON AST fixture without generating C",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	applyColorFlag()
	prog, _, ok := loadAndCheck(args[0])
	if !ok {
		return fmt.Errorf("type checking failed")
	}
	fmt.Printf("OK: %d top-level statement(s) checked\n", len(prog.Statements))
	return nil
}
