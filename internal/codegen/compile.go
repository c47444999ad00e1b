package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/diagnostics"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/textlang"
	"github.com/sunholo/ailang/internal/types"
)

// Compile translates an expression-bearing AST node into a C expression
// (§4.5.2). Every call site is expected to already know the node's type via
// check.GetType when it needs to decide on a promotion.
func Compile(e *env.Env, n ast.Node) string {
	switch x := n.(type) {
	case *ast.BoolLiteral:
		if x.Value {
			return "yes"
		}
		return "no"

	case *ast.IntLiteral:
		return compileIntLiteral(x)

	case *ast.NumLiteral:
		return compileNumLiteral(x)

	case *ast.TextLiteral:
		return compileTextLiteral(e, x)
	case *ast.TextJoin:
		return compileTextJoin(e, x)
	case *ast.PathLiteral:
		return fmt.Sprintf("Path$from_str(%q)", x.Text)

	case *ast.NoneLiteral:
		return "NONE"

	case *ast.Var:
		b, ok := e.GetBinding(x.Name)
		if ok && b.Code != "" {
			return b.Code
		}
		return mangle(x.Name)

	case *ast.ListLiteral:
		return compileListLiteral(e, x)
	case *ast.SetLiteral:
		return compileSetLiteral(e, x)
	case *ast.TableLiteral:
		return compileTableLiteral(e, x)

	case *ast.HeapAllocate:
		inner := check.GetType(e, x.Value)
		return fmt.Sprintf("heap(%s /*%s*/)", Compile(e, x.Value), CompileType(inner))
	case *ast.StackReference:
		return fmt.Sprintf("stack(%s)", Compile(e, x.Value))

	case *ast.OptionalExpr:
		return compileOptionalWrap(e, x)
	case *ast.NonOptionalExpr:
		return compileNonOptionalUnwrap(e, x)

	case *ast.UnaryOp:
		return compileUnaryOp(e, x)
	case *ast.BinaryOp:
		return compileBinaryOp(e, x)

	case *ast.If:
		return compileIfExpr(e, x)
	case *ast.Block:
		return compileBlockExpr(e, x)
	case *ast.When:
		return compileWhenExpr(e, x)

	case *ast.Lambda:
		return compileLambda(e, x)

	case *ast.FunctionCall:
		return compileFunctionCall(e, x)
	case *ast.MethodCall:
		return compileMethodCall(e, x)
	case *ast.FieldAccess:
		return compileFieldAccess(e, x)
	case *ast.Index:
		return compileIndex(e, x)

	case *ast.Reduction:
		return CompileReduction(e, x)

	case *ast.InlineCCode:
		return compileInlineC(e, x)

	default:
		diagnostics.ReportError(diagnostics.GEN002UnsupportedNode, "codegen", n.Span(),
			fmt.Sprintf("no compilation rule for %T", n))
		return "/* unsupported */"
	}
}

func mangle(name string) string { return name }

func compileIntLiteral(x *ast.IntLiteral) string {
	switch {
	case x.Bits != 0 && x.Bits <= 32:
		return fmt.Sprintf("(Int%d_t)(%s)", x.Bits, x.Text)
	case x.Bits != 0:
		return fmt.Sprintf("Int%d$from_int64(%sLL)", x.Bits, x.Text)
	default:
		// BigInt: literals that fit an int32 use the compact macro, literals
		// that fit an int64 use Int$from_int64, and anything larger is parsed
		// from its decimal text at runtime (§12 "integer literal compilation
		// tiers").
		n, err := strconv.ParseInt(x.Text, 0, 64)
		switch {
		case err == nil && n >= math.MinInt32 && n <= math.MaxInt32:
			return fmt.Sprintf("I(%s)", x.Text)
		case err == nil:
			return fmt.Sprintf("Int$from_int64(%sLL)", x.Text)
		}
		return fmt.Sprintf("Int$from_str(%q)", x.Text)
	}
}

func compileNumLiteral(x *ast.NumLiteral) string {
	suffix := ""
	if x.Bits == 32 {
		suffix = "f"
	}
	return fmt.Sprintf("%s%s", x.Text, suffix)
}

func compileTextLiteral(e *env.Env, x *ast.TextLiteral) string {
	if len(x.Interpolations) == 0 {
		var b strings.Builder
		for _, c := range x.Chunks {
			b.WriteString(textlang.Normalize(c.Text))
		}
		return fmt.Sprintf("Text(%q)", b.String())
	}
	parts := make([]string, 0, len(x.Chunks)+len(x.Interpolations))
	for i, c := range x.Chunks {
		if c.Text != "" {
			parts = append(parts, fmt.Sprintf("Text(%q)", textlang.Normalize(c.Text)))
		}
		if i < len(x.Interpolations) {
			parts = append(parts, compileTextInterpolation(e, x.Interpolations[i]))
		}
	}
	return fmt.Sprintf("Texts(%s)", strings.Join(parts, ", "))
}

func compileTextInterpolation(e *env.Env, expr ast.Expr) string {
	t := check.GetType(e, expr)
	if txt, ok := t.(*types.Text); ok && (txt.Lang == "" || txt.Lang == "Text") {
		return Compile(e, expr)
	}
	return fmt.Sprintf("expr_as_text(%s, %s, USE_COLOR)", Compile(e, expr), CompileTypeInfo(t))
}

func compileTextJoin(e *env.Env, x *ast.TextJoin) string {
	parts := make([]string, len(x.Parts))
	for i, p := range x.Parts {
		parts[i] = compileTextInterpolation(e, p)
	}
	return fmt.Sprintf("Texts(%s)", strings.Join(parts, ", "))
}

func compileOptionalWrap(e *env.Env, x *ast.OptionalExpr) string {
	inner := check.GetType(e, x.Value)
	code := Compile(e, x.Value)
	if isZeroCostOptionalRepr(inner) {
		return code
	}
	return fmt.Sprintf("(%s){.has_value=yes, .value=%s}", CompileType(&types.Optional{Inner: inner}), code)
}

func compileNonOptionalUnwrap(e *env.Env, x *ast.NonOptionalExpr) string {
	inner := check.GetType(e, x.Value)
	opt, ok := inner.(*types.Optional)
	code := Compile(e, x.Value)
	if !ok {
		return code
	}
	hasValue := optionalHasValueExpr(code, opt)
	value := code
	if !isZeroCostOptionalRepr(opt.Inner) {
		value = fmt.Sprintf("(%s).value", code)
	}
	return fmt.Sprintf("({ if (!(%s)) fail_source(%q); %s; })", hasValue, "value is none", value)
}

func compileUnaryOp(e *env.Env, x *ast.UnaryOp) string {
	operand := Compile(e, x.Operand)
	switch x.Op {
	case ast.OpNegate:
		return fmt.Sprintf("(-(%s))", operand)
	case ast.OpNot:
		return fmt.Sprintf("(!(%s))", operand)
	case ast.OpBitNot:
		return fmt.Sprintf("(~(%s))", operand)
	case ast.OpHeapAllocateOp:
		return fmt.Sprintf("heap(%s)", operand)
	case ast.OpStackReferenceOp:
		return fmt.Sprintf("stack(%s)", operand)
	default:
		return operand
	}
}

func compileBinaryOp(e *env.Env, x *ast.BinaryOp) string {
	lhsT := check.GetType(e, x.LHS)
	rhsT := check.GetType(e, x.RHS)

	if b, ok := e.GetMetamethodBinding(x.Op, lhsT, rhsT); ok {
		fname := b.Code
		if fname == "" {
			name, _ := ast.BinopMethodName(x.Op)
			fname = methodSymbolName(lhsT, name)
		}
		return fmt.Sprintf("%s(%s, %s)", fname, Compile(e, x.LHS), Compile(e, x.RHS))
	}

	lhs := Compile(e, x.LHS)
	rhs := Compile(e, x.RHS)

	if isNonPrimitive(lhsT) && (x.Op == ast.OpEquals || x.Op == ast.OpNotEquals) {
		eq := fmt.Sprintf("generic_equal(stack(%s), stack(%s), %s)", lhs, rhs, CompileTypeInfo(lhsT))
		if x.Op == ast.OpNotEquals {
			return fmt.Sprintf("(!%s)", eq)
		}
		return eq
	}

	switch x.Op {
	case ast.OpLeftShift, ast.OpRightShift, ast.OpUnsignedLeftShift, ast.OpUnsignedRightShift:
		return compileShift(x.Op, lhs, rhs, lhsT)
	case ast.OpConcat:
		return fmt.Sprintf("%s$concat(%s, %s)", concatRuntimeName(lhsT), lhs, rhs)
	default:
		return fmt.Sprintf("(%s %s %s)", lhs, x.Op.String(), rhs)
	}
}

// methodSymbolName produces the conventional C symbol for a namespace method
// when its Binding carries no explicit Code (§4.5.1 naming: Type$method).
func methodSymbolName(self types.Type, method string) string {
	switch x := self.(type) {
	case *types.Struct:
		return x.Name + "$" + method
	case *types.Enum:
		return x.Name + "$" + method
	case *types.Text:
		return x.String() + "$" + method
	default:
		return capitalizedTypeName(self) + "$" + method
	}
}

func isNonPrimitive(t types.Type) bool {
	switch t.(type) {
	case types.Bool, types.Byte, types.CString, types.BigInt, *types.Int, *types.Num:
		return false
	default:
		return true
	}
}

func concatRuntimeName(t types.Type) string {
	switch t.(type) {
	case *types.List:
		return "List"
	case *types.Set:
		return "Set"
	case *types.Text:
		return "Text"
	default:
		return "Text"
	}
}

func compileShift(op ast.BinOp, lhs, rhs string, t types.Type) string {
	cType := CompileType(t)
	unsigned := fmt.Sprintf("U%s", cType)
	switch op {
	case ast.OpLeftShift:
		return fmt.Sprintf("((%s)((%s)%s << (%s)))", cType, cType, lhs, rhs)
	case ast.OpRightShift:
		return fmt.Sprintf("((%s)((%s)%s >> (%s)))", cType, cType, lhs, rhs)
	case ast.OpUnsignedLeftShift:
		return fmt.Sprintf("((%s)((%s)(%s) << (%s)))", cType, unsigned, lhs, rhs)
	default:
		return fmt.Sprintf("((%s)((%s)(%s) >> (%s)))", cType, unsigned, lhs, rhs)
	}
}

func compileIfExpr(e *env.Env, x *ast.If) string {
	cond := Compile(e, x.Condition)
	body := Compile(e, x.Body)
	if x.Else == nil {
		return fmt.Sprintf("({ if (%s) { %s; } })", cond, body)
	}
	elseCode := Compile(e, x.Else)
	return fmt.Sprintf("(%s ? (%s) : (%s))", cond, body, elseCode)
}

func compileBlockExpr(e *env.Env, x *ast.Block) string {
	var b strings.Builder
	b.WriteString("({ ")
	scope := e.FreshScope()
	for i, stmt := range x.Statements {
		last := i == len(x.Statements)-1
		if last {
			if ex, ok := stmt.(ast.Expr); ok {
				b.WriteString(Compile(scope, ex))
				b.WriteString(";")
				continue
			}
		}
		b.WriteString(CompileStatement(scope, stmt))
		b.WriteString(" ")
	}
	b.WriteString(" })")
	return b.String()
}

func compileFieldAccess(e *env.Env, x *ast.FieldAccess) string {
	subjectT := check.GetType(e, x.Subject)
	subject := Compile(e, x.Subject)
	if _, ok := subjectT.(*types.Pointer); ok {
		return fmt.Sprintf("(%s)->%s", subject, x.Field)
	}
	if _, ok := subjectT.(*types.Text); ok {
		switch x.Field {
		case "length":
			return fmt.Sprintf("Text$length(%s)", subject)
		case "text":
			return fmt.Sprintf("(Text_t)(%s)", subject)
		}
	}
	return fmt.Sprintf("(%s).%s", subject, x.Field)
}

func compileIndex(e *env.Env, x *ast.Index) string {
	subjectT := check.GetType(e, x.Subject)
	subject := Compile(e, x.Subject)
	if x.IsSlice {
		return fmt.Sprintf("%s$slice(%s)", concatRuntimeName(subjectT), subject)
	}
	idx := Compile(e, x.Index)
	switch subjectT.(type) {
	case *types.List:
		if x.Unchecked {
			return fmt.Sprintf("List$get_unchecked(%s, %s)", subject, idx)
		}
		return fmt.Sprintf("List$get(%s, %s)", subject, idx)
	case *types.Table:
		return fmt.Sprintf("Table$get(%s, %s)", subject, idx)
	default:
		return fmt.Sprintf("%s[%s]", subject, idx)
	}
}

func compileInlineC(e *env.Env, x *ast.InlineCCode) string {
	var b strings.Builder
	for i, chunk := range x.Chunks {
		b.WriteString(chunk)
		if i < len(x.Interpolations) {
			b.WriteString(Compile(e, x.Interpolations[i]))
		}
	}
	return b.String()
}
