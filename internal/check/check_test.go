package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

func TestParseTypeAstRejectsPointerVoid(t *testing.T) {
	e := env.GlobalEnv(nil)
	voidType := &ast.PointerType{Pointed: &ast.VarType{Path: []string{"Void"}}, IsStack: false}
	assert.Panics(t, func() { check.ParseTypeAst(e, voidType) })
}

func TestParseTypeAstListRejectsStackPointerItem(t *testing.T) {
	e := env.GlobalEnv(nil)
	stackPtr := &ast.PointerType{Pointed: &ast.VarType{Path: []string{"Int64"}}, IsStack: true}
	listT := &ast.ListType{Item: stackPtr}
	assert.Panics(t, func() { check.ParseTypeAst(e, listT) })
}

func TestParseTypeAstOptionalRejectsNesting(t *testing.T) {
	e := env.GlobalEnv(nil)
	inner := &ast.OptionalType{Inner: &ast.VarType{Path: []string{"Int64"}}}
	outer := &ast.OptionalType{Inner: inner}
	assert.Panics(t, func() { check.ParseTypeAst(e, outer) })
}

func TestGetTypeIntLiteralDefaultsToBigInt(t *testing.T) {
	e := env.GlobalEnv(nil)
	lit := &ast.IntLiteral{Text: "5"}
	ty := check.GetType(e, lit)
	assert.True(t, types.Eq(ty, types.BigInt{}))
}

func TestGetTypeReductionTypesBodyAgainstForScope(t *testing.T) {
	e := env.GlobalEnv(nil).WithBinding("xs", env.Binding{Type: &types.List{Item: &types.Int{Bits: 64}}})
	reduction := &ast.Reduction{
		Op: ast.OpPlus,
		Iterable: &ast.Comprehension{
			Vars:     []string{"x"},
			Iterable: &ast.Var{Name: "xs"},
			Body:     &ast.Var{Name: "x"}, // unbound in e; only valid in the for-scope
		},
	}
	ty := check.GetType(e, reduction)
	opt, ok := ty.(*types.Optional)
	assert.True(t, ok)
	assert.True(t, types.Eq(opt.Inner, &types.Int{Bits: 64}))
}

func TestGetTypeReductionWithFallbackIsNotOptional(t *testing.T) {
	e := env.GlobalEnv(nil).WithBinding("xs", env.Binding{Type: &types.List{Item: &types.Int{Bits: 64}}})
	reduction := &ast.Reduction{
		Op: ast.OpPlus,
		Iterable: &ast.Comprehension{
			Vars:     []string{"x"},
			Iterable: &ast.Var{Name: "xs"},
			Body:     &ast.Var{Name: "x"},
		},
		Fallback: &ast.IntLiteral{Text: "0"},
	}
	ty := check.GetType(e, reduction)
	assert.True(t, types.Eq(ty, &types.Int{Bits: 64}))
}

func TestGetTypeNoneIsIncompleteOptional(t *testing.T) {
	e := env.GlobalEnv(nil)
	ty := check.GetType(e, &ast.NoneLiteral{})
	opt, ok := ty.(*types.Optional)
	assert.True(t, ok)
	assert.Nil(t, opt.Inner)
}

func TestGetTypeComparisonIsBool(t *testing.T) {
	e := env.GlobalEnv(nil)
	cmp := &ast.BinaryOp{Op: ast.OpLess, LHS: &ast.IntLiteral{Text: "1", Bits: 64}, RHS: &ast.IntLiteral{Text: "2", Bits: 64}}
	ty := check.GetType(e, cmp)
	assert.True(t, types.Eq(ty, types.Bool{}))
}

func TestGetTypeWhenRequiresExhaustiveness(t *testing.T) {
	shape := &types.Enum{Name: "Shape", Tags: []types.EnumTag{{Name: "Circle"}, {Name: "Square"}}}
	e := env.GlobalEnv(nil)
	e.DefineType("Shape", shape)
	subject := &ast.Var{Name: "s"}
	scope := e.WithBinding("s", env.Binding{Type: shape})

	when := &ast.When{
		Subject: subject,
		Clauses: []ast.WhenClause{
			{Tag: "Circle", Body: &ast.Block{}},
		},
	}
	// Circle alone, with no else clause, is non-exhaustive: a fatal error
	// raised through diagnostics.ReportError's panic.
	assert.Panics(t, func() { check.GetType(scope, when) })
}
