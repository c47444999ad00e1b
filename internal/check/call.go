package check

import (
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// CallOptions controls is_valid_call's promotion/privacy behavior (§4.4.3).
type CallOptions struct {
	Promotion   bool
	Underscores bool
}

// ArgBinding maps a spec argument name to the supplying call argument
// (nil Value when the spec default is used).
type ArgBinding struct {
	Name  string
	Value ast.Expr
}

// IsValidCall validates call args against a function's spec args, returning
// the resolved binding table in spec-argument order, or (nil, false) if the
// call is invalid (§4.4.3).
func IsValidCall(e *env.Env, specArgs []types.FuncArg, callArgs []ast.Arg, opts CallOptions) ([]ArgBinding, bool) {
	bindings := make([]ArgBinding, len(specArgs))
	used := make([]bool, len(specArgs))
	specIndex := map[string]int{}
	for i, s := range specArgs {
		specIndex[s.Name] = i
	}

	var positional []ast.Arg
	for _, a := range callArgs {
		if a.Name == "" {
			positional = append(positional, a)
			continue
		}
		idx, ok := specIndex[a.Name]
		if !ok {
			return nil, false
		}
		if !opts.Underscores && strings.HasPrefix(specArgs[idx].Name, "_") {
			return nil, false
		}
		if used[idx] {
			return nil, false
		}
		if !argTypeOK(e, specArgs[idx].Type, a.Value, opts.Promotion) {
			return nil, false
		}
		bindings[idx] = ArgBinding{Name: a.Name, Value: a.Value}
		used[idx] = true
	}

	pos := 0
	for _, a := range positional {
		for pos < len(specArgs) && used[pos] {
			pos++
		}
		if pos >= len(specArgs) {
			return nil, false
		}
		if !argTypeOK(e, specArgs[pos].Type, a.Value, opts.Promotion) {
			return nil, false
		}
		bindings[pos] = ArgBinding{Name: specArgs[pos].Name, Value: a.Value}
		used[pos] = true
		pos++
	}

	for i, s := range specArgs {
		if !used[i] && s.Default == nil {
			return nil, false
		}
	}
	return bindings, true
}

func argTypeOK(e *env.Env, specType types.Type, arg ast.Expr, allowPromotion bool) bool {
	argT := GetType(e, arg)
	if types.Eq(argT, specType) {
		return true
	}
	return allowPromotion && types.CanPromote(argT, specType)
}
