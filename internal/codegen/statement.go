package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// CompileStatement translates a statement-context node into a C statement
// (§4.5.3), optionally wrapping it in a `#line` directive (§4.5.9).
func CompileStatement(e *env.Env, n ast.Node) string {
	body := compileStatementBody(e, n)
	if e.DoSourceMapping() {
		return wrapSourceLine(n.Span(), body)
	}
	return body
}

func compileStatementBody(e *env.Env, n ast.Node) string {
	switch x := n.(type) {
	case *ast.Declare:
		return compileDeclare(e, x)
	case *ast.Assign:
		return compileAssign(e, x)
	case *ast.UpdateAssign:
		return compileUpdateAssign(e, x)

	case *ast.For:
		return compileFor(e, x)
	case *ast.While:
		return fmt.Sprintf("while (%s) %s", Compile(e, x.Condition), compileLoopBody(e, x.Body, "", ""))
	case *ast.Repeat:
		return fmt.Sprintf("for (;;) %s", compileLoopBody(e, x.Body, "", ""))

	case *ast.Return:
		if x.Value == nil {
			return "return;"
		}
		ret := e.FuncReturn()
		return fmt.Sprintf("return %s;", CompileToType(Compile(e, x.Value), check.GetType(e, x.Value), ret))
	case *ast.Stop:
		if _, ok := e.FindLoop(x.Label); ok {
			return "break;"
		}
		return "break;"
	case *ast.Skip:
		if _, ok := e.FindLoop(x.Label); ok {
			return "continue;"
		}
		return "continue;"
	case *ast.Pass:
		return ";"
	case *ast.Defer:
		return fmt.Sprintf("DEFER(%s);", Compile(e, x.Body))

	case *ast.FunctionDef:
		return compileFunctionDef(e, x)
	case *ast.StructDef, *ast.EnumDef, *ast.LangDef, *ast.Extend:
		return CompileTypeDef(e, x) // renders the type's C definition in place
	case *ast.Extern:
		return compileExtern(e, x)
	case *ast.Use:
		return compileUse(e, x)

	case *ast.Assert:
		return compileAssert(e, x)
	case *ast.DocTest:
		return compileDocTest(e, x)

	default:
		// Every other node is a bare expression used in statement position;
		// its value is simply discarded.
		return Compile(e, n) + ";"
	}
}

func compileDeclare(e *env.Env, x *ast.Declare) string {
	var t types.Type
	if x.DeclaredType != nil {
		t = check.ParseTypeAst(e, x.DeclaredType)
	} else {
		t = check.GetType(e, x.Value)
	}
	e.DefineBinding(x.Name, env.Binding{Type: t})
	if x.Value == nil {
		return fmt.Sprintf("%s %s = {};", CompileType(t), x.Name)
	}
	val := CompileToType(Compile(e, x.Value), check.GetType(e, x.Value), t)
	return fmt.Sprintf("%s %s = %s;", CompileType(t), x.Name, val)
}

func compileAssign(e *env.Env, x *ast.Assign) string {
	if len(x.Targets) == 1 && len(x.Values) == 1 {
		t := check.GetType(e, x.Targets[0])
		val := CompileToType(Compile(e, x.Values[0]), check.GetType(e, x.Values[0]), t)
		return fmt.Sprintf("%s = %s;", Compile(e, x.Targets[0]), val)
	}
	var b strings.Builder
	b.WriteString("{ ")
	tmp := make([]string, len(x.Values))
	for i, v := range x.Values {
		tmp[i] = fmt.Sprintf("_tmp%d_%s", i, e.IDSuffix())
		b.WriteString(fmt.Sprintf("__typeof(%s) %s = %s; ", Compile(e, v), tmp[i], Compile(e, v)))
	}
	for i, target := range x.Targets {
		b.WriteString(fmt.Sprintf("%s = %s; ", Compile(e, target), tmp[i]))
	}
	b.WriteString("}")
	return b.String()
}

func compileUpdateAssign(e *env.Env, x *ast.UpdateAssign) string {
	bin := &ast.BinaryOp{Op: x.Op, LHS: x.LHS, RHS: x.RHS}
	lhsT := check.GetType(e, x.LHS)
	val := CompileToType(compileBinaryOp(e, bin), check.GetType(e, bin), lhsT)
	return fmt.Sprintf("%s = %s;", Compile(e, x.LHS), val)
}

func compileFor(e *env.Env, x *ast.For) string {
	iterableT := check.GetType(e, x.Iterable)
	scope := e.ForScope(iterableT, x.Vars, x.Index)
	skipLabel := fmt.Sprintf("skip_%s", e.IDSuffix())
	stopLabel := fmt.Sprintf("stop_%s", e.IDSuffix())
	scope = scope.WithLoop("", x.Vars, skipLabel, stopLabel)

	body := compileLoopBody(scope, x.Body, skipLabel, stopLabel)
	emptyCheck := fmt.Sprintf("_empty_%s", e.IDSuffix())
	if x.Empty != nil {
		body = emptyCheck + " = no; " + body
	}
	loop := compileForLoopOver(scope, x.Vars, x.Index, iterableT, Compile(scope, x.Iterable), body)

	if x.Empty != nil {
		return fmt.Sprintf("{ bool %s = yes; %s if (%s) %s }", emptyCheck, loop, emptyCheck, Compile(scope, x.Empty))
	}
	return loop
}

// compileForLoopOver is the shared C-for-loop emitter used by both `for`
// statements and List/Set/Table comprehensions (§4.5.2's hidden accumulator
// loop).
func compileForLoopOver(e *env.Env, vars []string, withIndex bool, iterableT types.Type, iterable, body string) string {
	idx := fmt.Sprintf("_i_%s", e.IDSuffix())
	switch t := iterableT.(type) {
	case *types.List:
		item := vars[len(vars)-1]
		return fmt.Sprintf("for (int64_t %s = 0; %s < (%s).length; %s++) { %s %s %s }",
			idx, idx, iterable, idx,
			fmt.Sprintf("%s %s = List$get_unchecked(%s, %s);", CompileType(t.Item), item, iterable, idx),
			maybeIndexBinding(withIndex, vars, idx),
			body)
	case *types.Set:
		item := vars[0]
		return fmt.Sprintf("for (int64_t %s = 0; %s < (%s).entries.length; %s++) { %s %s }",
			idx, idx, iterable, idx,
			fmt.Sprintf("%s %s = Table$entry(%s, %s).key;", CompileType(t.Item), item, iterable, idx),
			body)
	case *types.Table:
		key, val := vars[0], ""
		if len(vars) == 2 {
			val = vars[1]
		}
		keyDecl := fmt.Sprintf("%s %s = Table$entry(%s, %s).key;", CompileType(t.Key), key, iterable, idx)
		valDecl := ""
		if val != "" {
			valDecl = fmt.Sprintf("%s %s = Table$entry(%s, %s).value;", CompileType(t.Value), val, iterable, idx)
		}
		return fmt.Sprintf("for (int64_t %s = 0; %s < (%s).entries.length; %s++) { %s %s %s }",
			idx, idx, iterable, idx, keyDecl, valDecl, body)
	default:
		return fmt.Sprintf("for (int64_t %s = 0; %s < (%s); %s++) { %s }", idx, idx, iterable, idx, body)
	}
}

func maybeIndexBinding(withIndex bool, vars []string, idx string) string {
	if !withIndex || len(vars) != 2 {
		return ""
	}
	return fmt.Sprintf("int64_t %s = %s + 1;", vars[0], idx)
}

func compileLoopBody(e *env.Env, body *ast.Block, skipLabel, stopLabel string) string {
	var b strings.Builder
	b.WriteString("{ ")
	scope := e.FreshScope()
	for _, stmt := range body.Statements {
		b.WriteString(CompileStatement(scope, stmt))
		b.WriteString(" ")
	}
	if skipLabel != "" {
		b.WriteString(skipLabel + ": ;")
	}
	b.WriteString(" }")
	return b.String()
}

func compileFunctionDef(e *env.Env, x *ast.FunctionDef) string {
	fnT, _ := e.GetBinding(x.Name)
	fn := fnT.Type.(*types.Function)

	scope := e.FreshScope().WithFuncReturn(fn.Ret)
	argsC := make([]string, len(x.Args))
	for i, p := range x.Args {
		argsC[i] = fmt.Sprintf("%s %s", CompileType(fn.Args[i].Type), p.Name)
		scope = scope.WithBinding(p.Name, env.Binding{Type: fn.Args[i].Type})
	}
	sig := fmt.Sprintf("%s %s(%s)", CompileType(fn.Ret), x.Name, strings.Join(argsC, ", "))
	e.Code().StaticDefs = append(e.Code().StaticDefs, sig+";")

	body := Compile(scope, x.Body)
	def := fmt.Sprintf("%s { return %s; }", sig, body)

	if x.CacheSize > 0 {
		def = wrapCachedFunction(e, x, fn, sig, def)
	}
	return def
}

// wrapCachedFunction implements the `cached` shell (§4.5.3): the declared
// function is renamed `$impl` and wrapped by a lookup against a runtime
// memoization table keyed on the single argument (fast path) or a
// synthesized args struct (multi-argument path).
func wrapCachedFunction(e *env.Env, x *ast.FunctionDef, fn *types.Function, sig, implDef string) string {
	implName := x.Name + "$impl"
	implSig := strings.Replace(sig, x.Name+"(", implName+"(", 1)
	implDef = strings.Replace(implDef, sig, implSig, 1)

	var keyExpr, keyType string
	if len(fn.Args) == 1 {
		keyExpr = fn.Args[0].Name
		keyType = CompileType(fn.Args[0].Type)
	} else {
		fields := make([]string, len(fn.Args))
		values := make([]string, len(fn.Args))
		for i, a := range fn.Args {
			fields[i] = fmt.Sprintf("%s %s;", CompileType(a.Type), a.Name)
			values[i] = a.Name
		}
		keyType = x.Name + "$args_t"
		e.Code().LocalTypedefs = append(e.Code().LocalTypedefs,
			fmt.Sprintf("typedef struct { %s } %s;", strings.Join(fields, " "), keyType))
		keyExpr = fmt.Sprintf("((%s){%s})", keyType, strings.Join(values, ", "))
	}

	call := fmt.Sprintf("%s(%s)", implName, strings.Join(argNames(fn), ", "))
	wrapper := fmt.Sprintf(
		"%s { static Table_t cache; %s key = %s; Optional_t cached = Table$get(cache, key); "+
			"if (cached.has_value) return cached.value; %s result = %s; Table$set(cache, key, result); return result; }",
		sig, keyType, keyExpr, CompileType(fn.Ret), call)
	return implDef + "\n" + wrapper
}

func argNames(fn *types.Function) []string {
	out := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		out[i] = a.Name
	}
	return out
}

func compileExtern(e *env.Env, x *ast.Extern) string {
	t := check.ParseTypeAst(e, x.Type)
	cname := x.CName
	if cname == "" {
		cname = x.Name
	}
	e.DefineBinding(x.Name, env.Binding{Type: t, Code: cname})
	return fmt.Sprintf("extern %s %s;", CompileType(t), cname)
}

func compileUse(e *env.Env, x *ast.Use) string {
	switch x.Kind {
	case ast.UseCHeader:
		return fmt.Sprintf("#include <%s>", x.Path)
	case ast.UseCLibrary, ast.UseCSource, ast.UseAsm:
		return "" // handled by the build driver's link-flags/source-list, not inline codegen
	default:
		return fmt.Sprintf("#include %q", x.Path+".h")
	}
}

func compileAssert(e *env.Env, x *ast.Assert) string {
	cond := Compile(e, x.Condition)
	msg := fmt.Sprintf("%q", x.Condition.String())
	if x.Message != nil {
		msg = Compile(e, x.Message)
	}
	return fmt.Sprintf("if (!(%s)) fail_source(%s);", cond, msg)
}

func compileDocTest(e *env.Env, x *ast.DocTest) string {
	val := Compile(e, x.Expr)
	t := check.GetType(e, x.Expr)
	rendered := fmt.Sprintf("generic_as_text(stack(%s), no, %s)", val, CompileTypeInfo(t))
	if x.Expected == "" {
		return fmt.Sprintf("(void)(%s);", val)
	}
	return fmt.Sprintf("doctest_check(%s, %q, %q);", rendered, x.Expected, x.Expr.String())
}
