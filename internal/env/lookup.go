package env

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// GetNamespaceBinding resolves a method or constant lookup `self.name`
// against self's type namespace (§4.3 get_namespace_binding). The bindings
// themselves are registered by package check while binding a
// StructDef/EnumDef/Extend's namespace body; this package only walks the
// chain it already built.
func (e *Env) GetNamespaceBinding(selfType types.Type, name string) (Binding, bool) {
	key := namespaceKey(selfType)
	if key == "" {
		return Binding{}, false
	}
	for ns := e.namespace; ns != nil; ns = ns.Parent {
		if ns.Name != key {
			continue
		}
		if b, ok := ns.Constructors[name]; ok {
			return b, true
		}
	}
	// Fall through to a namespace opened anywhere in this env's ancestry,
	// keyed globally by type name (methods defined via `extend` elsewhere).
	if b, ok := e.namespaceBindings[key+"."+name]; ok {
		return b, true
	}
	return Binding{}, false
}

// RegisterNamespaceBinding makes a method/constant globally reachable for
// selfType regardless of which namespace scope is current — used for
// `extend` blocks, which reopen a type's namespace from anywhere in the
// compilation.
func (e *Env) RegisterNamespaceBinding(selfType types.Type, name string, b Binding) {
	key := namespaceKey(selfType)
	if key == "" {
		return
	}
	if e.namespaceBindings == nil {
		e.namespaceBindings = map[string]Binding{}
	}
	e.namespaceBindings[key+"."+name] = b
}

func namespaceKey(t types.Type) string {
	switch x := t.(type) {
	case *types.Struct:
		return "struct:" + x.Name
	case *types.Enum:
		return "enum:" + x.Name
	case *types.Text:
		return "lang:" + x.String()
	case *types.Int:
		return "Int"
	case *types.Num:
		return "Num"
	default:
		if t != nil {
			return "prim:" + t.String()
		}
		return ""
	}
}

// GetMetamethodBinding resolves an operator-overload dispatch: the
// conventional method name for op, looked up in the namespace of lhs's type
// only (§4.2 binop_method_name, §4.3 get_metamethod_binding). rhs is not
// consulted: there is no lookup in rhs's namespace and no fallback to other
// method names.
func (e *Env) GetMetamethodBinding(op ast.BinOp, lhs, rhs types.Type) (Binding, bool) {
	name, ok := ast.BinopMethodName(op)
	if !ok {
		return Binding{}, false
	}
	return e.GetNamespaceBinding(lhs, name)
}

// GetConstructor chooses a matching constructor from target's namespace for
// a call with the given argument types: first an exact match (no
// promotion), then a promoted match, preferring later-registered
// constructors on a tie (§4.3 get_constructor).
func (e *Env) GetConstructor(target types.Type, argTypes []types.Type) (Binding, bool) {
	key := namespaceKey(target)
	candidates := e.constructorsNamed(key)
	if b, ok := matchConstructor(candidates, argTypes, false); ok {
		return b, true
	}
	return matchConstructor(candidates, argTypes, true)
}

func (e *Env) constructorsNamed(key string) []Binding {
	var out []Binding
	for ns := e.namespace; ns != nil; ns = ns.Parent {
		if ns.Name != key {
			continue
		}
		for _, name := range ns.order {
			out = append(out, ns.Constructors[name])
		}
	}
	return out
}

func matchConstructor(candidates []Binding, argTypes []types.Type, allowPromotion bool) (Binding, bool) {
	var best Binding
	found := false
	for _, c := range candidates {
		fn, ok := c.Type.(*types.Function)
		if !ok || len(fn.Args) != len(argTypes) {
			continue
		}
		ok = true
		for i, a := range fn.Args {
			if allowPromotion {
				if !types.Eq(a.Type, argTypes[i]) && !types.CanPromote(argTypes[i], a.Type) {
					ok = false
					break
				}
			} else if !types.Eq(a.Type, argTypes[i]) {
				ok = false
				break
			}
		}
		if ok {
			best = c
			found = true
		}
	}
	return best, found
}

// LoadModuleEnv memoizes module envs by file path (§4.3 load_module_env):
// loader runs prebind_statement then bind_statement over stmts in
// topological order, exactly once per path, across the whole compile.
func (e *Env) LoadModuleEnv(path string, stmts []ast.Node, prebind, bind func(*Env, ast.Node)) *Env {
	if cached, ok := e.imports[path]; ok {
		return cached
	}
	modEnv := e.FreshScope()
	modEnv.idSuffix = path

	ast.VisitTopologically(stmts, func(n ast.Node) { prebind(modEnv, n) })
	ast.VisitTopologically(stmts, func(n ast.Node) { bind(modEnv, n) })

	e.imports[path] = modEnv
	return modEnv
}
