package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

func compileListLiteral(e *env.Env, x *ast.ListLiteral) string {
	itemT := check.GetType(e, x).(*types.List).Item
	if x.Comprehension != nil {
		return compileComprehension(e, x.Comprehension, itemT, "List", func(accum, item string) string {
			return fmt.Sprintf("List$insert(%s, %s)", accum, item)
		})
	}
	items := make([]string, len(x.Items))
	for i, it := range x.Items {
		items[i] = CompileToType(Compile(e, it), check.GetType(e, it), itemT)
	}
	return fmt.Sprintf("List(%s, {%s})", CompileType(itemT), strings.Join(items, ", "))
}

func compileSetLiteral(e *env.Env, x *ast.SetLiteral) string {
	itemT := check.GetType(e, x).(*types.Set).Item
	if x.Comprehension != nil {
		return compileComprehension(e, x.Comprehension, itemT, "Set", func(accum, item string) string {
			return fmt.Sprintf("Table$set(%s, %s, yes)", accum, item)
		})
	}
	items := make([]string, len(x.Items))
	for i, it := range x.Items {
		items[i] = CompileToType(Compile(e, it), check.GetType(e, it), itemT)
	}
	return fmt.Sprintf("Set(%s, {%s})", CompileType(itemT), strings.Join(items, ", "))
}

func compileTableLiteral(e *env.Env, x *ast.TableLiteral) string {
	tableT := check.GetType(e, x).(*types.Table)
	if x.Comprehension != nil {
		return compileComprehension(e, x.Comprehension, tableT.Value, "Table", func(accum, item string) string {
			return fmt.Sprintf("Table$set(%s, %s.key, %s.value)", accum, item, item)
		})
	}
	entries := make([]string, len(x.Entries))
	for i, entry := range x.Entries {
		k := CompileToType(Compile(e, entry.Key), check.GetType(e, entry.Key), tableT.Key)
		v := CompileToType(Compile(e, entry.Value), check.GetType(e, entry.Value), tableT.Value)
		entries[i] = fmt.Sprintf("{%s, %s}", k, v)
	}
	def := "NULL"
	if x.Default != nil {
		def = fmt.Sprintf("heap(%s)", Compile(e, x.Default))
	}
	return fmt.Sprintf("Table(%s, %s, %s, {%s})", CompileType(tableT.Key), CompileType(tableT.Value), def,
		strings.Join(entries, ", "))
}

// compileComprehension implements "comprehensions introduce a hidden
// accumulator temporary and set env.comprehension_action to inject items"
// (§4.5.2): it declares the accumulator, runs the generated for-loop with
// comprehension_action bound to insert, and yields the accumulator as the
// collection's value.
func compileComprehension(e *env.Env, c *ast.Comprehension, itemT types.Type, runtimeCtor string, insert func(accum, item string) string) string {
	accum := fmt.Sprintf("_accum_%s", e.IDSuffix())
	action := env.Binding{Code: accum}
	scope := e.WithComprehensionAction(action)

	iterableT := check.GetType(e, c.Iterable)
	loopScope := scope.ForScope(iterableT, c.Vars, c.Index)

	bodyExpr := Compile(loopScope, c.Body)
	inject := insert(accum, bodyExpr)
	loopBody := inject + ";"
	if c.Filter != nil {
		loopBody = fmt.Sprintf("if (%s) { %s }", Compile(loopScope, c.Filter), loopBody)
	}

	loop := compileForLoopOver(loopScope, c.Vars, c.Index, iterableT, Compile(loopScope, c.Iterable), loopBody)

	emptyCtor := fmt.Sprintf("%s(%s)", runtimeCtor, CompileType(itemT))
	return fmt.Sprintf("({ __typeof(%s) %s = %s; %s %s; })", emptyCtor, accum, emptyCtor, loop, accum)
}
