package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/types"
)

// CompileCLIArgCall synthesizes a `main`-body fragment (§4.5.8) that parses
// argc/argv via the runtime's tomo_parse_args helper against fnType's
// parameters, then invokes fnName, unwrapping any Optional argument whose
// declared parameter is non-optional.
func CompileCLIArgCall(fnName string, fnType *types.Function, version string) string {
	usage := compileUsageString(fnName, fnType)

	specs := make([]string, len(fnType.Args))
	for i, a := range fnType.Args {
		specs[i] = fmt.Sprintf("{.name=%q, .type=%s, .required=%t}",
			a.Name, CompileTypeInfo(a.Type), a.Default == nil)
	}

	call := make([]string, len(fnType.Args))
	for i, a := range fnType.Args {
		parsed := fmt.Sprintf("args.values[%d]", i)
		if _, ok := a.Type.(*types.Optional); !ok {
			parsed = fmt.Sprintf("(%s).value", parsed)
		}
		call[i] = parsed
	}

	return fmt.Sprintf(
		"CLIArgSpec_t specs[] = {%s};\n"+
			"ParsedArgs_t args = tomo_parse_args(argc, argv, %q, %q, specs, %d);\n"+
			"%s(%s);\n",
		strings.Join(specs, ", "), usage, version, len(specs), fnName, strings.Join(call, ", "))
}

func compileUsageString(fnName string, fnType *types.Function) string {
	var b strings.Builder
	b.WriteString(fnName)
	for _, a := range fnType.Args {
		if _, ok := a.Type.(*types.Optional); ok || a.Default != nil {
			b.WriteString(fmt.Sprintf(" [--%s=%s]", a.Name, CompileType(a.Type)))
		} else {
			b.WriteString(fmt.Sprintf(" --%s=%s", a.Name, CompileType(a.Type)))
		}
	}
	return b.String()
}
