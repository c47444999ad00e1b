package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// compileCatalogMethodCall emits the runtime-library call
// `Runtime$method(subject, args...)` for every method called on a
// List/Set/Table/Text subject; the method name is not checked against
// check.lookupCatalogMethod's catalog. It reports ok=false only for other
// subject types, so the caller falls through to namespace-binding dispatch.
func compileCatalogMethodCall(e *env.Env, subjectT types.Type, subject string, x *ast.MethodCall) (string, bool) {
	switch subjectT.(type) {
	case *types.List:
		return compileRuntimeMethod(e, "List", subject, x), true
	case *types.Set:
		return compileRuntimeMethod(e, "Table", subject, x), true // sets share the runtime Table_t representation
	case *types.Table:
		return compileRuntimeMethod(e, "Table", subject, x), true
	case *types.Text:
		return compileRuntimeMethod(e, "Text", subject, x), true
	default:
		return "", false
	}
}

func compileRuntimeMethod(e *env.Env, runtimeNS, subject string, x *ast.MethodCall) string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = Compile(e, a.Value)
	}
	all := append([]string{subject}, args...)
	return fmt.Sprintf("%s$%s(%s)", runtimeNS, x.Method, strings.Join(all, ", "))
}
