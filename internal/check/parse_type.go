// Package check implements the compiler core's type checker (component D,
// spec.md §4.4): parsing type-expressions into types.Type, computing the
// type of every AST node, validating calls, and the two-pass
// prebind/bind forward-declaration walk.
package check

import (
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diagnostics"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// ParseTypeAst recursively descends a TypeAst into a types.Type (§4.4.1).
func ParseTypeAst(e *env.Env, t ast.TypeAst) types.Type {
	switch x := t.(type) {
	case *ast.VarType:
		return parseVarType(e, x)
	case *ast.PointerType:
		return parsePointerType(e, x)
	case *ast.ListType:
		item := ParseTypeAst(e, x.Item)
		if types.HasStackMemory(item) {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"list item type must not contain stack pointers")
		}
		return &types.List{Item: item}
	case *ast.SetType:
		item := ParseTypeAst(e, x.Item)
		if types.HasStackMemory(item) {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"set item type must not contain stack pointers")
		}
		return &types.Set{Item: item}
	case *ast.TableType:
		key := ParseTypeAst(e, x.Key)
		val := ParseTypeAst(e, x.Value)
		if types.HasStackMemory(key) || types.HasStackMemory(val) {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"table key/value type must not contain stack pointers")
		}
		if _, isOpt := val.(*types.Optional); isOpt {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"table value type must not be Optional")
		}
		var def types.Type
		if x.Default != nil {
			def = ParseTypeAst(e, x.Default)
		}
		return &types.Table{Key: key, Value: val, Default: def}
	case *ast.FunctionType:
		ret := ParseTypeAst(e, x.Ret)
		if types.HasStackMemory(ret) {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"function return type must not contain stack pointers")
		}
		args := make([]types.FuncArg, len(x.ArgTypes))
		for i, at := range x.ArgTypes {
			name := ""
			if i < len(x.ArgNames) {
				name = x.ArgNames[i]
			}
			args[i] = types.FuncArg{Name: name, Type: ParseTypeAst(e, at)}
		}
		fn := &types.Function{Args: args, Ret: ret}
		return &types.Closure{Fn: fn}
	case *ast.OptionalType:
		inner := ParseTypeAst(e, x.Inner)
		if innerOpt, ok := inner.(*types.Optional); ok {
			_ = innerOpt
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"Optional types must not nest")
		}
		switch inner.(type) {
		case types.Void, types.Abort, *types.Return:
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"Optional(Void|Abort|Return) is not a valid type")
		}
		return &types.Optional{Inner: inner}
	case *ast.UnknownType:
		return &types.Optional{Inner: nil}
	default:
		diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", t.Span(), "unrecognized type expression")
		return nil
	}
}

func parseVarType(e *env.Env, x *ast.VarType) types.Type {
	cur := e
	name := x.Path[len(x.Path)-1]
	for i := 0; i < len(x.Path)-1; i++ {
		modT, ok := cur.GetType(x.Path[i])
		if !ok {
			diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck", x.Span(),
				"unknown module '"+x.Path[i]+"'")
			return nil
		}
		mod, ok := modT.(*types.Module)
		if !ok {
			diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(),
				"'"+x.Path[i]+"' is not a module")
			return nil
		}
		modEnv, ok := cur.Imports()[mod.Name]
		if !ok {
			diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck", x.Span(),
				"module '"+mod.Name+"' not loaded")
			return nil
		}
		cur = modEnv
	}
	t, ok := cur.GetType(name)
	if !ok {
		diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck", x.Span(),
			"unknown type '"+strings.Join(x.Path, ".")+"'")
		return nil
	}
	return t
}

func parsePointerType(e *env.Env, x *ast.PointerType) types.Type {
	pointed := ParseTypeAst(e, x.Pointed)
	if _, isVoid := pointed.(types.Void); isVoid {
		diagnostics.Fatal(diagnostics.Report{
			Code: diagnostics.TYP004ConstraintViolation, Phase: "typecheck", Span: x.Span(),
			Message: "Pointer(Void) is not allowed",
			Fix:     "use Memory instead of @Void/&Void",
		})
	}
	return &types.Pointer{Pointed: pointed, IsStack: x.IsStack}
}
