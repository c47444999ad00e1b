package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

func TestFreshScopeShadowsParent(t *testing.T) {
	root := env.GlobalEnv(nil)
	child := root.WithBinding("x", env.Binding{Type: &types.Int{Bits: 64}})
	b, ok := child.GetBinding("x")
	assert.True(t, ok)
	assert.True(t, types.Eq(b.Type, &types.Int{Bits: 64}))

	_, ok = root.GetBinding("x")
	assert.False(t, ok, "binding in child scope must not leak to parent")
}

func TestGlobalEnvBuiltins(t *testing.T) {
	root := env.GlobalEnv(nil)
	ty, ok := root.GetType("Int64")
	assert.True(t, ok)
	assert.True(t, types.Eq(ty, &types.Int{Bits: 64}))

	_, ok = root.GetBinding("say")
	assert.True(t, ok)
}

func TestForScopeListBindsIndexAndItem(t *testing.T) {
	root := env.GlobalEnv(nil)
	listT := &types.List{Item: &types.Text{Lang: "Text"}}
	scope := root.ForScope(listT, []string{"i", "item"}, true)

	idx, ok := scope.GetBinding("i")
	assert.True(t, ok)
	assert.True(t, types.Eq(idx.Type, &types.Int{Bits: 64}))

	item, ok := scope.GetBinding("item")
	assert.True(t, ok)
	assert.True(t, types.Eq(item.Type, &types.Text{Lang: "Text"}))
}

func TestWhenClauseScopeBindsPayloadFields(t *testing.T) {
	root := env.GlobalEnv(nil)
	shape := &types.Enum{Name: "Shape", Tags: []types.EnumTag{
		{Name: "Circle", Payload: &types.Struct{Fields: []types.StructField{
			{Name: "radius", Type: &types.Num{Bits: 64}},
		}}},
	}}
	clause := ast.WhenClause{Tag: "Circle", Bindings: []string{"r"}}
	scope := root.WhenClauseScope(shape, clause)

	r, ok := scope.GetBinding("r")
	assert.True(t, ok)
	assert.True(t, types.Eq(r.Type, &types.Num{Bits: 64}))
}

func TestLoopAndSkipStopResolution(t *testing.T) {
	root := env.GlobalEnv(nil)
	looped := root.WithLoop("outer", []string{"x"}, "skip_outer", "stop_outer")
	lc, ok := looped.FindLoop("")
	assert.True(t, ok)
	assert.Equal(t, "outer", lc.LoopName)

	_, ok = root.FindLoop("")
	assert.False(t, ok, "no loop context outside any loop")
}

func TestGetConstructorPrefersLaterRegistration(t *testing.T) {
	root := env.GlobalEnv(nil)
	shape := &types.Struct{Name: "Point"}
	ns := root.NamespaceEnv("struct:Point")
	fnType := &types.Function{Args: []types.FuncArg{{Name: "x", Type: &types.Int{Bits: 64}}}, Ret: shape}
	ns.AddConstructor("new", env.Binding{Type: fnType, Code: "first"})
	ns.AddConstructor("new", env.Binding{Type: fnType, Code: "second"})

	b, ok := ns.GetConstructor(shape, []types.Type{&types.Int{Bits: 64}})
	assert.True(t, ok)
	assert.Equal(t, "second", b.Code)
}

// TestGetConstructorDistinctNamesDeterministicOnTie guards against
// Namespace.Constructors being iterated as a bare Go map (randomized
// order): with two differently-named constructors both matching the call
// equally well, the later-registered one must win every time, not whichever
// the map handed back first.
func TestGetConstructorDistinctNamesDeterministicOnTie(t *testing.T) {
	root := env.GlobalEnv(nil)
	shape := &types.Struct{Name: "Point"}
	ns := root.NamespaceEnv("struct:Point")
	fnType := &types.Function{Args: []types.FuncArg{{Name: "x", Type: &types.Int{Bits: 64}}}, Ret: shape}
	ns.AddConstructor("from_a", env.Binding{Type: fnType, Code: "from_a_impl"})
	ns.AddConstructor("from_b", env.Binding{Type: fnType, Code: "from_b_impl"})

	for i := 0; i < 20; i++ {
		b, ok := ns.GetConstructor(shape, []types.Type{&types.Int{Bits: 64}})
		assert.True(t, ok)
		assert.Equal(t, "from_b_impl", b.Code, "later-registered constructor must win deterministically")
	}
}
