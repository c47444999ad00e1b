package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/codegen"
)

var (
	emitCOutput      string
	emitCHeaderName  string
	emitCSourceMap   bool
)

var emitCCmd = &cobra.Command{
	Use:   "emit-c [fixture.json]",
	Short: "Emit a complete C translation unit for a fixture",
	Long: `emit-c checks the fixture and emits typedefs (topologically ordered,
same as emit-header) followed by every remaining top-level statement
compiled in source order (functions, externs, asserts, doctests, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: runEmitC,
}

func init() {
	rootCmd.AddCommand(emitCCmd)
	emitCCmd.Flags().StringVarP(&emitCOutput, "output", "o", "", "output file (default: stdout)")
	emitCCmd.Flags().StringVar(&emitCHeaderName, "include", "", "header to #include at the top of the unit")
	emitCCmd.Flags().BoolVar(&emitCSourceMap, "source-map", true, "emit #line directives back to the fixture")
}

func runEmitC(_ *cobra.Command, args []string) error {
	applyColorFlag()
	prog, e, ok := loadAndCheck(args[0])
	if !ok {
		return fmt.Errorf("type checking failed")
	}
	e.SetDoSourceMapping(emitCSourceMap)

	out := os.Stdout
	if emitCOutput != "" {
		f, err := os.Create(emitCOutput)
		if err != nil {
			return fmt.Errorf("creating %s: %w", emitCOutput, err)
		}
		defer f.Close()
		out = f
	}

	if emitCHeaderName != "" {
		fmt.Fprintf(out, "#include %q\n\n", emitCHeaderName)
	}

	typeDefs := map[ast.Node]bool{}
	ast.VisitTopologically(prog.Statements, func(n ast.Node) {
		switch n.(type) {
		case *ast.StructDef, *ast.EnumDef, *ast.LangDef:
			fmt.Fprintln(out, codegen.CompileTypeDef(e, n))
			typeDefs[n] = true
		}
	})

	for _, stmt := range prog.Statements {
		if typeDefs[stmt] {
			continue
		}
		fmt.Fprintln(out, codegen.CompileStatement(e, stmt))
	}
	return nil
}
