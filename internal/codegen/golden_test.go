package codegen_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/codegen"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// TestCompileFunctionDefGolden pins the generated C for a small representative
// function against a go-snaps snapshot (written on the first run when none
// exists), catching incidental formatting
// drift in the statement/expression emitters that per-assertion unit tests
// wouldn't notice.
func TestCompileFunctionDefGolden(t *testing.T) {
	e := env.GlobalEnv(nil)
	fn := &ast.FunctionDef{
		Name: "add",
		Args: []ast.Param{
			{Name: "a", Type: &ast.VarType{Path: []string{"Int64"}}},
			{Name: "b", Type: &ast.VarType{Path: []string{"Int64"}}},
		},
		Ret: &ast.VarType{Path: []string{"Int64"}},
		Body: &ast.Block{Statements: []ast.Node{
			&ast.BinaryOp{Op: ast.OpPlus, LHS: &ast.Var{Name: "a"}, RHS: &ast.Var{Name: "b"}},
		}},
	}
	e.DefineBinding("add", env.Binding{Type: &types.Function{
		Args: []types.FuncArg{{Name: "a", Type: &types.Int{Bits: 64}}, {Name: "b", Type: &types.Int{Bits: 64}}},
		Ret:  &types.Int{Bits: 64},
	}})

	snaps.MatchSnapshot(t, "add_function", codegen.CompileStatement(e, fn))
}

// TestCompileStructTypedefGolden does the same for a struct typedef.
func TestCompileStructTypedefGolden(t *testing.T) {
	e := env.GlobalEnv(nil)
	s := &types.Struct{Name: "Point", Fields: []types.StructField{
		{Name: "x", Type: &types.Int{Bits: 64}},
		{Name: "y", Type: &types.Int{Bits: 64}},
	}}
	e.DefineType("Point", s)
	snaps.MatchSnapshot(t, "point_struct", codegen.CompileTypeDef(e, &ast.StructDef{Name: "Point"}))
}
