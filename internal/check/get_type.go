package check

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diagnostics"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// GetType computes the static type of any AST node (§4.4.2). It is the
// single recursive entry point the code generator also calls whenever it
// needs a sub-expression's type before compiling it.
func GetType(e *env.Env, n ast.Node) types.Type {
	switch x := n.(type) {
	case *ast.NoneLiteral:
		return &types.Optional{Inner: nil}
	case *ast.IntLiteral:
		if x.Bits > 0 {
			return &types.Int{Bits: x.Bits}
		}
		return types.BigInt{}
	case *ast.NumLiteral:
		bits := x.Bits
		if bits == 0 {
			bits = 64
		}
		return &types.Num{Bits: bits}
	case *ast.BoolLiteral:
		return types.Bool{}
	case *ast.TextLiteral:
		return &types.Text{Lang: x.Lang}
	case *ast.TextJoin:
		return &types.Text{Lang: x.Lang}
	case *ast.PathLiteral:
		return &types.Text{Lang: "Path"}
	case *ast.Var:
		b, ok := e.GetBinding(x.Name)
		if !ok {
			diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck", x.Span(), "unknown name '"+x.Name+"'")
			return nil
		}
		return b.Type

	case *ast.ListLiteral:
		return getListType(e, x)
	case *ast.SetLiteral:
		return getSetType(e, x)
	case *ast.TableLiteral:
		return getTableType(e, x)

	case *ast.HeapAllocate:
		inner := GetType(e, x.Value)
		if types.HasStackMemory(inner) {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"cannot take a heap pointer to a value containing stack memory")
		}
		return &types.Pointer{Pointed: inner, IsStack: false}
	case *ast.StackReference:
		if !isStackReferenceable(x.Value) {
			diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
				"stack references are only valid on variables, field-access chains, or fresh values")
		}
		return &types.Pointer{Pointed: GetType(e, x.Value), IsStack: true}

	case *ast.OptionalExpr:
		inner := GetType(e, x.Value)
		if _, already := inner.(*types.Optional); already {
			diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(), "value is already Optional")
		}
		return &types.Optional{Inner: inner}
	case *ast.NonOptionalExpr:
		inner := GetType(e, x.Value)
		opt, ok := inner.(*types.Optional)
		if !ok {
			diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(), "'!' requires an Optional value")
			return inner
		}
		return opt.Inner

	case *ast.UnaryOp:
		return getUnaryType(e, x)
	case *ast.BinaryOp:
		return getBinaryType(e, x)

	case *ast.If:
		thenT := GetType(e, x.Body)
		if x.Else == nil {
			return types.Void{}
		}
		elseT := GetType(e, x.Else)
		unified, ok := types.TypeOrType(thenT, elseT)
		if !ok {
			diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(),
				"if/else branches have incompatible types")
			return thenT
		}
		return unified

	case *ast.When:
		return getWhenType(e, x)

	case *ast.For, *ast.While, *ast.Repeat:
		return types.Void{}

	case *ast.Block:
		return getBlockType(e, x)

	case *ast.Return:
		fr := e.FuncReturn()
		return &types.Return{Inner: fr}
	case *ast.Stop, *ast.Skip, *ast.Pass:
		return types.Void{}

	case *ast.Lambda:
		return getLambdaType(e, x)

	case *ast.FunctionCall:
		return getFunctionCallType(e, x)
	case *ast.MethodCall:
		return getMethodCallType(e, x)
	case *ast.FieldAccess:
		return getFieldAccessType(e, x)
	case *ast.Index:
		return getIndexType(e, x)

	case *ast.Reduction:
		return getReductionType(e, x)

	case *ast.Declare:
		return types.Void{}
	case *ast.Assign:
		return types.Void{}
	case *ast.UpdateAssign:
		return types.Void{}

	case *ast.InlineCCode:
		if x.Type != nil {
			return ParseTypeAst(e, x.Type)
		}
		return types.Void{}

	case *ast.Assert, *ast.DocTest:
		return types.Void{}

	default:
		return types.Void{}
	}
}

func isStackReferenceable(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.Var:
		return true
	case *ast.FieldAccess:
		switch x.Subject.(type) {
		case *ast.Var, *ast.FieldAccess:
			return true
		default:
			return false
		}
	case *ast.Index:
		return false
	default:
		return true // fresh expressions (struct literals etc) are referenceable
	}
}

func getListType(e *env.Env, x *ast.ListLiteral) types.Type {
	if x.ItemType != nil {
		return &types.List{Item: ParseTypeAst(e, x.ItemType)}
	}
	if x.Comprehension != nil {
		return &types.List{Item: GetType(e, x.Comprehension.Body)}
	}
	var item types.Type
	for i, it := range x.Items {
		t := GetType(e, it)
		if i == 0 {
			item = t
			continue
		}
		merged, ok := types.TypeOrType(item, t)
		if !ok {
			diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(),
				"list items have incompatible types")
			continue
		}
		item = merged
	}
	if item == nil {
		item = &types.Optional{Inner: nil}
	}
	return &types.List{Item: item}
}

func getSetType(e *env.Env, x *ast.SetLiteral) types.Type {
	if x.ItemType != nil {
		return &types.Set{Item: ParseTypeAst(e, x.ItemType)}
	}
	if x.Comprehension != nil {
		return &types.Set{Item: GetType(e, x.Comprehension.Body)}
	}
	var item types.Type
	for i, it := range x.Items {
		t := GetType(e, it)
		if i == 0 {
			item = t
			continue
		}
		if merged, ok := types.TypeOrType(item, t); ok {
			item = merged
		}
	}
	if item == nil {
		item = &types.Optional{Inner: nil}
	}
	return &types.Set{Item: item}
}

func getTableType(e *env.Env, x *ast.TableLiteral) types.Type {
	if x.KeyType != nil && x.ValueType != nil {
		var def types.Type
		if x.Default != nil {
			def = GetType(e, x.Default)
		}
		return &types.Table{Key: ParseTypeAst(e, x.KeyType), Value: ParseTypeAst(e, x.ValueType), Default: def}
	}
	var key, val types.Type
	for i, entry := range x.Entries {
		kt, vt := GetType(e, entry.Key), GetType(e, entry.Value)
		if i == 0 {
			key, val = kt, vt
			continue
		}
		if m, ok := types.TypeOrType(key, kt); ok {
			key = m
		}
		if m, ok := types.TypeOrType(val, vt); ok {
			val = m
		}
	}
	if key == nil {
		key = &types.Optional{Inner: nil}
	}
	if val == nil {
		val = &types.Optional{Inner: nil}
	}
	return &types.Table{Key: key, Value: val}
}

func getUnaryType(e *env.Env, x *ast.UnaryOp) types.Type {
	operand := GetType(e, x.Operand)
	switch x.Op {
	case ast.OpNot:
		return types.Bool{}
	case ast.OpHeapAllocateOp:
		return &types.Pointer{Pointed: operand, IsStack: false}
	case ast.OpStackReferenceOp:
		return &types.Pointer{Pointed: operand, IsStack: true}
	default:
		return operand
	}
}

func getBinaryType(e *env.Env, x *ast.BinaryOp) types.Type {
	lhs := GetType(e, x.LHS)
	rhs := GetType(e, x.RHS)

	switch x.Op {
	case ast.OpEquals, ast.OpNotEquals, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		return types.Bool{}
	case ast.OpCompare:
		return &types.Int{Bits: 32}
	}

	if lit, ok := x.LHS.(*ast.IntLiteral); ok && lit.Bits == 0 && types.IsNumeric(rhs) {
		lhs = rhs
	} else if lit, ok := x.RHS.(*ast.IntLiteral); ok && lit.Bits == 0 && types.IsNumeric(lhs) {
		rhs = lhs
	}

	if x.Op == ast.OpOr {
		if lhsOpt, ok := lhs.(*types.Optional); ok {
			switch rhs.(type) {
			case types.Abort, *types.Return:
				return lhsOpt.Inner
			default:
				if merged, ok := types.MostCompleteType(lhs, rhs); ok {
					return merged
				}
				return lhsOpt.Inner
			}
		}
	}

	switch x.Op {
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		if _, ok := lhs.(types.Bool); ok {
			return types.Bool{}
		}
		if _, ok := lhs.(*types.Set); ok {
			return lhs
		}
		if types.IsIntType(lhs) || func() bool { _, ok := lhs.(types.Byte); return ok }() {
			return lhs
		}
		return lhs

	case ast.OpConcat:
		return lhs

	default:
		if merged, ok := types.TypeOrType(lhs, rhs); ok {
			return merged
		}
		diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(),
			"operands to '"+x.Op.String()+"' have incompatible types")
		return lhs
	}
}

func getWhenType(e *env.Env, x *ast.When) types.Type {
	subjectT := GetType(e, x.Subject)
	enumT, isEnum := subjectT.(*types.Enum)

	var result types.Type
	hasElse := false
	covered := map[string]bool{}
	for i, clause := range x.Clauses {
		if clause.Tag == "" {
			hasElse = true
		} else {
			covered[clause.Tag] = true
		}
		scope := e
		if isEnum {
			scope = e.WhenClauseScope(subjectT, clause)
		}
		t := GetType(scope, clause.Body)
		if i == 0 {
			result = t
			continue
		}
		if merged, ok := types.TypeOrType(result, t); ok {
			result = merged
		}
	}

	if isEnum {
		allCovered := true
		for _, tag := range enumT.Tags {
			if !covered[tag.Name] {
				allCovered = false
				break
			}
		}
		if allCovered && hasElse {
			diagnostics.ReportError(diagnostics.TYP006NonExhaustive, "typecheck", x.Span(),
				"all enum tags are covered; an 'else' clause is unreachable")
		}
		if !allCovered && !hasElse {
			diagnostics.ReportError(diagnostics.TYP006NonExhaustive, "typecheck", x.Span(),
				"'when' does not cover every tag of "+enumT.Name+" and has no 'else' clause")
		}
	} else if !hasElse {
		diagnostics.ReportError(diagnostics.TYP006NonExhaustive, "typecheck", x.Span(),
			"'when' over a non-enum subject requires an 'else' clause")
	}

	if result == nil {
		return types.Void{}
	}
	return result
}

func getBlockType(e *env.Env, x *ast.Block) types.Type {
	scope := e.FreshScope()
	var last types.Type = types.Void{}
	terminated := false
	for i, stmt := range x.Statements {
		if terminated {
			diagnostics.ReportError(diagnostics.GEN001UnreachableCode, "typecheck", stmt.Span(),
				"unreachable code after return/abort")
			break
		}
		PrebindStatement(scope, stmt)
		BindStatement(scope, stmt)
		t := GetType(scope, stmt)
		switch t.(type) {
		case *types.Return, types.Abort:
			terminated = true
		}
		if i == len(x.Statements)-1 {
			last = t
		}
	}
	return last
}

func getLambdaType(e *env.Env, x *ast.Lambda) types.Type {
	args := make([]types.FuncArg, len(x.Args))
	scope := e.FreshScope()
	for i, p := range x.Args {
		var t types.Type
		if p.Type != nil {
			t = ParseTypeAst(e, p.Type)
		} else {
			t = &types.Optional{Inner: nil}
		}
		args[i] = types.FuncArg{Name: p.Name, Type: t}
		scope = scope.WithBinding(p.Name, env.Binding{Type: t})
	}
	bodyT := GetType(scope, x.Body)
	if ret, ok := bodyT.(*types.Return); ok {
		bodyT = ret.Inner
	}
	return &types.Closure{Fn: &types.Function{Args: args, Ret: bodyT}}
}

func getFunctionCallType(e *env.Env, x *ast.FunctionCall) types.Type {
	if v, ok := x.Fn.(*ast.Var); ok {
		if b, ok := e.GetBinding(v.Name); ok {
			if ti, ok := b.Type.(*types.TypeInfo); ok {
				argTypes := make([]types.Type, len(x.Args))
				for i, a := range x.Args {
					argTypes[i] = GetType(e, a.Value)
				}
				ctor, ok := e.GetConstructor(ti.Type, argTypes)
				if !ok {
					diagnostics.ReportError(diagnostics.TYP005AmbiguousOverload, "typecheck", x.Span(),
						"no matching constructor for "+ti.Name)
					return ti.Type
				}
				fn := ctor.Type.(*types.Function)
				return fn.Ret
			}
		}
	}
	fnT := GetType(e, x.Fn)
	switch f := fnT.(type) {
	case *types.Function:
		return f.Ret
	case *types.Closure:
		return f.Fn.Ret
	default:
		diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(), "value is not callable")
		return types.Void{}
	}
}

func getMethodCallType(e *env.Env, x *ast.MethodCall) types.Type {
	subjectT := GetType(e, x.Subject)
	if t, ok := lookupCatalogMethod(subjectT, x.Method); ok {
		return t
	}
	if b, ok := e.GetNamespaceBinding(subjectT, x.Method); ok {
		if fn, ok := b.Type.(*types.Function); ok {
			return fn.Ret
		}
	}
	diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck", x.Span(),
		"no method '"+x.Method+"' on this type")
	return types.Void{}
}

func getFieldAccessType(e *env.Env, x *ast.FieldAccess) types.Type {
	subjectT := GetType(e, x.Subject)
	if t, ok := types.GetFieldType(subjectT, x.Field); ok {
		return t
	}
	if p, ok := subjectT.(*types.Pointer); ok {
		if t, ok := types.GetFieldType(p.Pointed, x.Field); ok {
			return t
		}
	}
	if b, ok := e.GetNamespaceBinding(subjectT, x.Field); ok {
		return b.Type
	}
	diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck", x.Span(),
		"no field '"+x.Field+"' on this type")
	return types.Void{}
}

func getIndexType(e *env.Env, x *ast.Index) types.Type {
	subjectT := GetType(e, x.Subject)
	if x.IsSlice {
		return subjectT
	}
	switch t := types.ValueType(subjectT).(type) {
	case *types.List:
		return t.Item
	case *types.Table:
		if t.Default != nil {
			return t.Default
		}
		if x.Unchecked {
			return t.Value
		}
		return &types.Optional{Inner: t.Value}
	default:
		diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(), "type is not indexable")
		return types.Void{}
	}
}

func getReductionType(e *env.Env, x *ast.Reduction) types.Type {
	iterableT := GetType(e, x.Iterable.Iterable)
	scope := e.ForScope(iterableT, x.Iterable.Vars, x.Iterable.Index)
	itemT := GetType(scope, x.Iterable.Body)

	var resultT types.Type
	switch x.Op {
	case ast.OpEquals, ast.OpNotEquals, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		resultT = types.Bool{}
	default:
		resultT = itemT
	}
	if x.Fallback != nil {
		return resultT
	}
	return &types.Optional{Inner: resultT}
}
