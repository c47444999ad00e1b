package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/ast"
)

func TestLineColResolution(t *testing.T) {
	f := &ast.File{Name: "test.tomo", Text: "x := 1\ny := 2\n"}
	line, col := f.LineCol(7) // start of "y"
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
}

func TestIsIdempotent(t *testing.T) {
	v := &ast.Var{Name: "x"}
	assert.True(t, ast.IsIdempotent(v))

	call := &ast.FunctionCall{Fn: &ast.Var{Name: "f"}}
	assert.False(t, ast.IsIdempotent(call))

	access := &ast.FieldAccess{Subject: v, Field: "y"}
	assert.True(t, ast.IsIdempotent(access))

	indexed := &ast.Index{Subject: v, Index: call}
	assert.False(t, ast.IsIdempotent(indexed))
}

func TestBinopMethodName(t *testing.T) {
	name, ok := ast.BinopMethodName(ast.OpPlus)
	assert.True(t, ok)
	assert.Equal(t, "plus", name)

	name, ok = ast.BinopMethodName(ast.OpConcat)
	assert.True(t, ok)
	assert.Equal(t, "concatenated_with", name)

	_, ok = ast.BinopMethodName(ast.OpEquals)
	assert.False(t, ok, "equality has no operator-overload method name")
}

func TestVisitTopologically(t *testing.T) {
	// struct B { a: A }  before  struct A {}  ->  A must visit before B
	structA := &ast.StructDef{Name: "A"}
	structB := &ast.StructDef{Name: "B", Fields: []ast.StructField{
		{Name: "a", Type: &ast.VarType{Path: []string{"A"}}},
	}}
	use := &ast.Use{Path: "io"}
	order := []string{}
	ast.VisitTopologically([]ast.Node{structB, structA, use}, func(n ast.Node) {
		switch x := n.(type) {
		case *ast.StructDef:
			order = append(order, x.Name)
		case *ast.Use:
			order = append(order, "use:"+x.Path)
		}
	})
	assert.Equal(t, []string{"use:io", "A", "B"}, order)
}

func TestPrintDeterministic(t *testing.T) {
	lit := &ast.IntLiteral{Text: "42", Bits: 64}
	out1 := ast.Print(lit)
	out2 := ast.Print(lit)
	assert.Equal(t, out1, out2)
	assert.Contains(t, out1, "IntLiteral")
	assert.Contains(t, out1, "42")
}
