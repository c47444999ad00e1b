package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/diagnostics"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

func compileFunctionCall(e *env.Env, x *ast.FunctionCall) string {
	if v, ok := x.Fn.(*ast.Var); ok {
		if b, ok := e.GetBinding(v.Name); ok {
			if ti, ok := b.Type.(*types.TypeInfo); ok {
				return compileConstructorCall(e, ti, x)
			}
		}
	}

	fnT := check.GetType(e, x.Fn)
	switch f := fnT.(type) {
	case *types.Function:
		args := compileArgs(e, x.Args, f.Args)
		return fmt.Sprintf("%s(%s)", Compile(e, x.Fn), strings.Join(args, ", "))
	case *types.Closure:
		args := compileArgs(e, x.Args, f.Fn.Args)
		receiver := Compile(e, x.Fn)
		allArgs := append(args, fmt.Sprintf("(%s).userdata", receiver))
		return fmt.Sprintf("(%s).fn(%s)", receiver, strings.Join(allArgs, ", "))
	default:
		return Compile(e, x.Fn)
	}
}

func compileConstructorCall(e *env.Env, ti *types.TypeInfo, x *ast.FunctionCall) string {
	argTypes := make([]types.Type, len(x.Args))
	for i, a := range x.Args {
		argTypes[i] = check.GetType(e, a.Value)
	}
	ctor, ok := e.GetConstructor(ti.Type, argTypes)
	if !ok {
		return fmt.Sprintf("/* no constructor for %s */", ti.Name)
	}
	fn := ctor.Type.(*types.Function)
	args := compileArgs(e, x.Args, fn.Args)
	name := ctor.Code
	if name == "" {
		name = ti.Name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// compileArgs positionally binds x.Args (some of which may be named) against
// the target parameter list, inserting each parameter's default when a
// caller omits it, and promoting every supplied value to its declared type.
func compileArgs(e *env.Env, args []ast.Arg, params []types.FuncArg) []string {
	byName := map[string]ast.Arg{}
	var positional []ast.Arg
	for _, a := range args {
		if a.Name != "" {
			byName[a.Name] = a
		} else {
			positional = append(positional, a)
		}
	}
	out := make([]string, len(params))
	posIdx := 0
	for i, p := range params {
		if a, ok := byName[p.Name]; ok {
			out[i] = CompileToType(Compile(e, a.Value), check.GetType(e, a.Value), p.Type)
			continue
		}
		if posIdx < len(positional) {
			a := positional[posIdx]
			posIdx++
			out[i] = CompileToType(Compile(e, a.Value), check.GetType(e, a.Value), p.Type)
			continue
		}
		if p.Default != nil {
			out[i] = CompileToType(Compile(e, p.Default), check.GetType(e, p.Default), p.Type)
			continue
		}
		out[i] = "NONE"
	}
	return out
}

func compileMethodCall(e *env.Env, x *ast.MethodCall) string {
	subjectT := check.GetType(e, x.Subject)
	subject := Compile(e, x.Subject)

	if call, ok := compileCatalogMethodCall(e, subjectT, subject, x); ok {
		return call
	}

	b, ok := e.GetNamespaceBinding(subjectT, x.Method)
	if !ok {
		return fmt.Sprintf("/* unknown method %s */", x.Method)
	}
	fn := b.Type.(*types.Function)
	fname := b.Code
	if fname == "" {
		fname = methodSymbolName(subjectT, x.Method)
	}
	var params []types.FuncArg
	if len(fn.Args) > 0 {
		params = fn.Args[1:] // first arg is the implicit receiver
	}
	args := append([]string{subject}, compileArgs(e, x.Args, params)...)
	return fmt.Sprintf("%s(%s)", fname, strings.Join(args, ", "))
}

func compileLambda(e *env.Env, x *ast.Lambda) string {
	captures := collectCaptures(e, x)
	fnName := fmt.Sprintf("_lambda_%s_%d", e.IDSuffix(), len(e.Code().Lambdas))
	udType := fmt.Sprintf("%s$userdata_t", fnName)

	var fields []string
	scope := e.FreshScope()
	for _, name := range captures {
		b, _ := e.GetBinding(name)
		fields = append(fields, fmt.Sprintf("%s %s;", CompileType(b.Type), name))
		scope = scope.WithBinding(name, env.Binding{Type: b.Type, Code: fmt.Sprintf("(userdata->%s)", name)})
	}
	e.Code().LocalTypedefs = append(e.Code().LocalTypedefs,
		fmt.Sprintf("typedef struct { %s } %s;", strings.Join(fields, " "), udType))

	argsC := make([]string, len(x.Args))
	bodyScope := scope
	for i, p := range x.Args {
		t := paramType(e, p)
		argsC[i] = fmt.Sprintf("%s %s", CompileType(t), p.Name)
		bodyScope = bodyScope.WithBinding(p.Name, env.Binding{Type: t})
	}
	bodyT := check.GetType(bodyScope, x.Body)
	retT := bodyT
	if r, ok := bodyT.(*types.Return); ok {
		retT = r.Inner
	}
	body := Compile(bodyScope, x.Body)

	def := fmt.Sprintf("static %s %s(%s, %s *userdata) { return %s; }",
		CompileType(retT), fnName, strings.Join(argsC, ", "), udType, body)
	e.Code().Lambdas = append(e.Code().Lambdas, def)

	udValues := make([]string, len(captures))
	for i, name := range captures {
		udValues[i] = name
	}
	udLiteral := fmt.Sprintf("heap(((%s){%s}))", udType, strings.Join(udValues, ", "))
	return fmt.Sprintf("(Closure_t){.fn=(void *)%s, .userdata=%s}", fnName, udLiteral)
}

func paramType(e *env.Env, p ast.Param) types.Type {
	if p.Type != nil {
		return check.ParseTypeAst(e, p.Type)
	}
	return &types.Optional{Inner: nil}
}

// collectCaptures walks the lambda body collecting every Var reference that
// resolves outside the lambda's own parameters/locals (§4.5.5 step 1),
// rejecting stack-memory captures (step 2).
func collectCaptures(e *env.Env, x *ast.Lambda) []string {
	locals := map[string]bool{}
	for _, p := range x.Args {
		locals[p.Name] = true
	}
	seen := map[string]bool{}
	var out []string
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		switch v := n.(type) {
		case *ast.Var:
			if locals[v.Name] || seen[v.Name] {
				return
			}
			if b, ok := e.GetBinding(v.Name); ok {
				if types.HasStackMemory(b.Type) {
					diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "codegen", v.Span(),
						"lambda captures '"+v.Name+"', a stack reference, which cannot outlive its enclosing scope")
				}
				seen[v.Name] = true
				out = append(out, v.Name)
			}
		case *ast.Block:
			for _, s := range v.Statements {
				walk(s)
			}
		case *ast.BinaryOp:
			walk(v.LHS)
			walk(v.RHS)
		case *ast.UnaryOp:
			walk(v.Operand)
		case *ast.If:
			walk(v.Condition)
			walk(v.Body)
			if v.Else != nil {
				walk(v.Else)
			}
		case *ast.FunctionCall:
			walk(v.Fn)
			for _, a := range v.Args {
				walk(a.Value)
			}
		case *ast.MethodCall:
			walk(v.Subject)
			for _, a := range v.Args {
				walk(a.Value)
			}
		case *ast.FieldAccess:
			walk(v.Subject)
		case *ast.Index:
			walk(v.Subject)
			if v.Index != nil {
				walk(v.Index)
			}
		case *ast.Return:
			if v.Value != nil {
				walk(v.Value)
			}
		}
	}
	walk(x.Body)
	return out
}
