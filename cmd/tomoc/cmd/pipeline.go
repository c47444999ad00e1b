package cmd

import (
	"os"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/diagnostics"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/fixture"
)

// loadAndCheck reads path, decodes it as a JSON AST fixture, and drives the
// two-pass prebind/bind sequence (§4.4.4) over every top-level statement in
// declaration order. It returns the checked program and its global
// environment, or ok=false if a fatal diagnostic fired (already printed to
// os.Stderr by diagnostics.Guard).
func loadAndCheck(path string) (prog *ast.Program, e *env.Env, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError("reading %s: %v", path, err)
	}

	f, err := fixture.Load(data, path)
	if err != nil {
		exitWithError("%v", err)
	}

	e = env.GlobalEnv(nil)
	ok = diagnostics.Guard(os.Stderr, func() {
		for _, stmt := range f.Statements {
			check.PrebindStatement(e, stmt)
		}
		for _, stmt := range f.Statements {
			check.BindStatement(e, stmt)
		}
	})
	return f, e, ok
}
