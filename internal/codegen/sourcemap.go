package codegen

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
)

// wrapSourceLine implements §4.5.9: every generated statement is wrapped
// with a `#line N "file"` directive pointing back at the originating source,
// so the host C compiler's diagnostics and any runtime aborts cite user code
// rather than the generated translation unit.
func wrapSourceLine(span ast.Span, body string) string {
	if body == "" || span.Start.File == nil {
		return body
	}
	line, _ := span.Start.File.LineCol(span.Start.Offset)
	name := span.Start.File.RelativeFilename
	if name == "" {
		name = span.Start.File.Name
	}
	return fmt.Sprintf("\n#line %d %q\n%s", line, name, body)
}
