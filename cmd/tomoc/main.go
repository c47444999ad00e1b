// Command tomoc exercises the compiler core (internal/check,
// internal/codegen) against hand-written or generated JSON AST fixtures.
// It is not a compiler frontend: there is no lexer or parser here by design
// (§1); a real Tomo toolchain would produce the fixtures this consumes.
package main

import (
	"fmt"
	"os"

	"github.com/sunholo/ailang/cmd/tomoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
