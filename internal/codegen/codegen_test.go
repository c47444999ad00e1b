package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/codegen"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

func TestCompileTypeNames(t *testing.T) {
	assert.Equal(t, "Int64_t", codegen.CompileType(&types.Int{Bits: 64}))
	assert.Equal(t, "Text_t", codegen.CompileType(&types.Text{Lang: "Text"}))
	assert.Equal(t, "Bool_t", codegen.CompileType(types.Bool{}))
	assert.Equal(t, "List_t", codegen.CompileType(&types.List{Item: types.Bool{}}))
}

func TestCompileBoolLiteral(t *testing.T) {
	e := env.GlobalEnv(nil)
	assert.Equal(t, "yes", codegen.Compile(e, &ast.BoolLiteral{Value: true}))
	assert.Equal(t, "no", codegen.Compile(e, &ast.BoolLiteral{Value: false}))
}

func TestCompileIntLiteralTiers(t *testing.T) {
	e := env.GlobalEnv(nil)
	small := codegen.Compile(e, &ast.IntLiteral{Text: "5", Bits: 8})
	assert.Contains(t, small, "Int8_t")

	bignum := codegen.Compile(e, &ast.IntLiteral{Text: "123456789012345678901234", Bits: 0})
	assert.Contains(t, bignum, "Int$from_str")
}

func TestCompileBinaryOpPrimitive(t *testing.T) {
	e := env.GlobalEnv(nil)
	bin := &ast.BinaryOp{Op: ast.OpPlus, LHS: &ast.IntLiteral{Text: "1", Bits: 64}, RHS: &ast.IntLiteral{Text: "2", Bits: 64}}
	code := codegen.Compile(e, bin)
	assert.True(t, strings.Contains(code, "+"))
}

func TestCompileIfExprTernary(t *testing.T) {
	e := env.GlobalEnv(nil)
	ifExpr := &ast.If{
		Condition: &ast.BoolLiteral{Value: true},
		Body:      &ast.Block{Statements: []ast.Node{&ast.IntLiteral{Text: "1", Bits: 64}}},
		Else:      &ast.Block{Statements: []ast.Node{&ast.IntLiteral{Text: "2", Bits: 64}}},
	}
	code := codegen.Compile(e, ifExpr)
	assert.Contains(t, code, "?")
	assert.Contains(t, code, ":")
}

func TestCompileListLiteral(t *testing.T) {
	e := env.GlobalEnv(nil)
	lit := &ast.ListLiteral{Items: []ast.Expr{
		&ast.IntLiteral{Text: "1", Bits: 64},
		&ast.IntLiteral{Text: "2", Bits: 64},
	}}
	code := codegen.Compile(e, lit)
	assert.Contains(t, code, "List(")
}

func TestCompileWhenEnumExhaustive(t *testing.T) {
	shape := &types.Enum{Name: "Shape", Tags: []types.EnumTag{{Name: "Circle"}, {Name: "Square"}}}
	e := env.GlobalEnv(nil)
	e.DefineType("Shape", shape)
	scope := e.WithBinding("s", env.Binding{Type: shape})

	when := &ast.When{
		Subject: &ast.Var{Name: "s"},
		Clauses: []ast.WhenClause{
			{Tag: "Circle", Body: &ast.Block{}},
			{Tag: "Square", Body: &ast.Block{}},
		},
	}
	code := codegen.Compile(scope, when)
	assert.Contains(t, code, "switch")
	assert.Contains(t, code, "Shape$tag_Circle")
	assert.Contains(t, code, "Shape$tag_Square")
}

func TestCompileLambdaCapturesOuterVar(t *testing.T) {
	e := env.GlobalEnv(nil)
	scope := e.WithBinding("x", env.Binding{Type: &types.Int{Bits: 64}})
	lambda := &ast.Lambda{
		Args: []ast.Param{},
		Body: &ast.Block{Statements: []ast.Node{&ast.Var{Name: "x"}}},
	}
	code := codegen.Compile(scope, lambda)
	assert.Contains(t, code, "Closure_t")
	assert.True(t, len(scope.Code().Lambdas) > 0)
}

func TestCompileLambdaRejectsStackReferenceCapture(t *testing.T) {
	e := env.GlobalEnv(nil)
	scope := e.WithBinding("p", env.Binding{Type: &types.Pointer{Pointed: &types.Struct{Name: "Foo"}, IsStack: true}})
	lambda := &ast.Lambda{
		Args: []ast.Param{},
		Body: &ast.Block{Statements: []ast.Node{&ast.Var{Name: "p"}}},
	}
	assert.Panics(t, func() { codegen.Compile(scope, lambda) },
		"a lambda capturing a &Foo stack reference must be rejected, not silently miscompiled")
}

func TestCompileReductionFold(t *testing.T) {
	e := env.GlobalEnv(nil)
	scope := e.WithBinding("xs", env.Binding{Type: &types.List{Item: &types.Int{Bits: 64}}})
	reduction := &ast.Reduction{
		Op: ast.OpPlus,
		Iterable: &ast.Comprehension{
			Vars:     []string{"x"},
			Iterable: &ast.Var{Name: "xs"},
			Body:     &ast.Var{Name: "x"},
		},
	}
	code := codegen.CompileReduction(scope, reduction)
	assert.Contains(t, code, "Optional_t")
}

func TestCompileFunctionCallCompilesOmittedDefaultAsValue(t *testing.T) {
	fnType := &types.Function{
		Args: []types.FuncArg{{Name: "n", Type: &types.Int{Bits: 64}, Default: &ast.IntLiteral{Text: "7", Bits: 64}}},
		Ret:  &types.Int{Bits: 64},
	}
	e := env.GlobalEnv(nil).WithBinding("f", env.Binding{Type: fnType, Code: "f"})
	call := &ast.FunctionCall{Fn: &ast.Var{Name: "f"}, Args: nil}
	code := codegen.Compile(e, call)
	assert.Contains(t, code, "7")
	assert.NotContains(t, code, "Int64_t", "an omitted default must compile to its value, not a C type spelling")
}

func TestCompileStructTypedefEmitsStruct(t *testing.T) {
	e := env.GlobalEnv(nil)
	s := &types.Struct{Name: "Point", Fields: []types.StructField{
		{Name: "x", Type: &types.Int{Bits: 64}},
		{Name: "y", Type: &types.Int{Bits: 64}},
	}}
	e.DefineType("Point", s)
	def := &ast.StructDef{Name: "Point"}
	code := codegen.CompileTypeDef(e, def)
	assert.Contains(t, code, "struct")
	assert.Contains(t, code, "Point_t")
}

func TestCompileStatementPassIsNoop(t *testing.T) {
	e := env.GlobalEnv(nil)
	assert.Equal(t, ";", codegen.CompileStatement(e, &ast.Pass{}))
}

func TestCompileStatementDisablesSourceMapping(t *testing.T) {
	e := env.GlobalEnv(nil)
	e.SetDoSourceMapping(false)
	assert.Equal(t, ";", codegen.CompileStatement(e, &ast.Pass{}))
}
