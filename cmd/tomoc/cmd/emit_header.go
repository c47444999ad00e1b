package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/codegen"
)

var emitHeaderOutput string

var emitHeaderCmd = &cobra.Command{
	Use:   "emit-header [fixture.json]",
	Short: "Emit C struct/enum typedefs for a fixture's type definitions",
	Long: `emit-header checks the fixture, then walks its top-level type
definitions in the topological order visit_topologically requires (a type
must be declared before anything referencing it, §4.2), emitting each as a
C typedef. Function bodies are left to emit-c.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmitHeader,
}

func init() {
	rootCmd.AddCommand(emitHeaderCmd)
	emitHeaderCmd.Flags().StringVarP(&emitHeaderOutput, "output", "o", "", "output file (default: stdout)")
}

func runEmitHeader(_ *cobra.Command, args []string) error {
	applyColorFlag()
	prog, e, ok := loadAndCheck(args[0])
	if !ok {
		return fmt.Errorf("type checking failed")
	}

	out := os.Stdout
	if emitHeaderOutput != "" {
		f, err := os.Create(emitHeaderOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", emitHeaderOutput, err)
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintln(out, "#pragma once")
	ast.VisitTopologically(prog.Statements, func(n ast.Node) {
		switch n.(type) {
		case *ast.StructDef, *ast.EnumDef, *ast.LangDef:
			fmt.Fprintln(out, codegen.CompileTypeDef(e, n))
		}
	})
	return nil
}
