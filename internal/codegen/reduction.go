package codegen

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// CompileReduction desugars `(expr for vars in iterable [if filter]) op`
// into a loop maintaining a rolling accumulator plus a has_value flag
// (§4.5.7), with special-cased chained-comparison and minimum (OpCompare)
// semantics, falling back to a generic fold.
func CompileReduction(e *env.Env, x *ast.Reduction) string {
	switch x.Op {
	case ast.OpEquals, ast.OpNotEquals, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		return compileChainedComparisonReduction(e, x)
	default:
		return compileFoldReduction(e, x)
	}
}

func compileChainedComparisonReduction(e *env.Env, x *ast.Reduction) string {
	iterableT := check.GetType(e, x.Iterable.Iterable)
	scope := e.ForScope(iterableT, x.Iterable.Vars, x.Iterable.Index)
	itemT := check.GetType(scope, x.Iterable.Body)

	prev := fmt.Sprintf("_prev_%s", e.IDSuffix())
	has := fmt.Sprintf("_has_%s", e.IDSuffix())
	result := fmt.Sprintf("_ok_%s", e.IDSuffix())
	item := Compile(scope, x.Iterable.Body)

	cmp := fmt.Sprintf("(%s %s %s)", prev, x.Op.String(), item)
	step := fmt.Sprintf(
		"if (%s) { if (!%s) { %s = no; break; } } %s = %s; %s = yes;",
		has, cmp, result, prev, item, has)
	if x.Iterable.Filter != nil {
		step = fmt.Sprintf("if (%s) { %s }", Compile(scope, x.Iterable.Filter), step)
	}

	loop := compileForLoopOver(scope, x.Iterable.Vars, x.Iterable.Index, iterableT,
		Compile(scope, x.Iterable.Iterable), step)

	return fmt.Sprintf(
		"({ %s %s = {}; bool %s = no; bool %s = yes; %s (Optional_t){.has_value=%s, .value=%s}; })",
		CompileType(itemT), prev, has, result, loop, has, result)
}

func compileFoldReduction(e *env.Env, x *ast.Reduction) string {
	if x.Op == ast.OpCompare {
		return compileSuperlativeReduction(e, x)
	}

	iterableT := check.GetType(e, x.Iterable.Iterable)
	scope := e.ForScope(iterableT, x.Iterable.Vars, x.Iterable.Index)
	itemT := check.GetType(scope, x.Iterable.Body)

	accum := fmt.Sprintf("_fold_%s", e.IDSuffix())
	has := fmt.Sprintf("_has_%s", e.IDSuffix())
	item := Compile(scope, x.Iterable.Body)

	combine := fmt.Sprintf("%s(%s, %s)", methodSymbolName(itemT, mustBinopMethodName(x.Op)), accum, item)
	step := fmt.Sprintf("if (%s) { %s = %s; } else { %s = %s; %s = yes; }", has, accum, combine, accum, item, has)

	earlyExit := ""
	if x.Op == ast.OpAnd {
		if _, ok := itemT.(types.Bool); ok {
			earlyExit = fmt.Sprintf("if (%s && !%s) break; ", has, accum)
		}
	}
	if x.Op == ast.OpOr {
		if _, ok := itemT.(types.Bool); ok {
			earlyExit = fmt.Sprintf("if (%s && %s) break; ", has, accum)
		}
	}
	step = step + " " + earlyExit

	if x.Iterable.Filter != nil {
		step = fmt.Sprintf("if (%s) { %s }", Compile(scope, x.Iterable.Filter), step)
	}

	loop := compileForLoopOver(scope, x.Iterable.Vars, x.Iterable.Index, iterableT,
		Compile(scope, x.Iterable.Iterable), step)

	if x.Fallback != nil {
		return fmt.Sprintf("({ %s %s = {}; bool %s = no; %s (%s ? %s : %s); })",
			CompileType(itemT), accum, has, loop, has, accum, Compile(e, x.Fallback))
	}
	return fmt.Sprintf("({ %s %s = {}; bool %s = no; %s (Optional_t){.has_value=%s, .value=%s}; })",
		CompileType(itemT), accum, has, loop, has, accum)
}

// compileSuperlativeReduction implements the OpCompare reduction (§4.5.7's
// "superlative semantics"): it keeps the item whose compared_to against the
// best so far is negative, i.e. the minimum. Each item's value is held in a
// temporary, so the body is evaluated exactly once per item. The AST carries
// no separate key expression, and there is no maximum form.
func compileSuperlativeReduction(e *env.Env, x *ast.Reduction) string {
	iterableT := check.GetType(e, x.Iterable.Iterable)
	scope := e.ForScope(iterableT, x.Iterable.Vars, x.Iterable.Index)
	itemT := check.GetType(scope, x.Iterable.Body)

	accum := fmt.Sprintf("_best_%s", e.IDSuffix())
	bestKey := fmt.Sprintf("_bestkey_%s", e.IDSuffix())
	has := fmt.Sprintf("_has_%s", e.IDSuffix())
	item := Compile(scope, x.Iterable.Body)
	cur := fmt.Sprintf("_cur_%s", e.IDSuffix())

	step := fmt.Sprintf(
		"%s %s = %s; if (!%s || %s(%s, %s) < 0) { %s = %s; %s = %s; %s = yes; }",
		CompileType(itemT), cur, item, has, methodSymbolName(itemT, "compared_to"), cur, bestKey, accum, cur, bestKey, cur, has)
	if x.Iterable.Filter != nil {
		step = fmt.Sprintf("if (%s) { %s }", Compile(scope, x.Iterable.Filter), step)
	}
	loop := compileForLoopOver(scope, x.Iterable.Vars, x.Iterable.Index, iterableT,
		Compile(scope, x.Iterable.Iterable), step)

	return fmt.Sprintf(
		"({ %s %s = {}; %s %s = {}; bool %s = no; %s (Optional_t){.has_value=%s, .value=%s}; })",
		CompileType(itemT), accum, CompileType(itemT), bestKey, has, loop, has, accum)
}

func mustBinopMethodName(op ast.BinOp) string {
	name, ok := ast.BinopMethodName(op)
	if !ok {
		return op.String()
	}
	return name
}
