// Package env implements the compiler core's Environment (component C,
// spec.md §3.3/§4.3): a persistent-style, cheaply clonable scope chain the
// type checker and code generator thread through every recursive call.
package env

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// Binding is `{type, code}` (§3.4): code is the C expression that evaluates
// to the bound value, "" meaning "use the canonical mangled identifier".
type Binding struct {
	Type types.Type
	Code string
}

// Namespace is the linked-list definition-context chain (§3.3): one link
// per enclosing struct/enum/lang/extend body. Constructors is keyed by the
// constructor's exposed name (a bare identifier, or a method name reached
// via get_namespace_binding).
type Namespace struct {
	Name         string
	Constructors map[string]Binding
	order        []string // registration order of Constructors' keys, for deterministic tie-break
	Parent       *Namespace
}

// LoopCtx is the linked-list loop-context chain used to resolve `skip`/
// `stop` (§3.3).
type LoopCtx struct {
	LoopName  string
	LoopVars  []string
	SkipLabel string
	StopLabel string
	Parent    *LoopCtx
}

// CompilationUnit holds the per-translation-unit mutable emission buffers
// (§3.3 `code`).
type CompilationUnit struct {
	LocalTypedefs        []string
	StaticDefs           []string
	Lambdas              []string
	VariableInitializers []string
}

// scope is one link in the locals chain; Env.locals walks this to resolve a
// name, falling back to the parent scope.
type scope struct {
	bindings map[string]Binding
	parent   *scope
}

func newScope(parent *scope) *scope {
	return &scope{bindings: map[string]Binding{}, parent: parent}
}

func (s *scope) lookup(name string) (Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Env is the environment record threaded through type checking and code
// generation.
type Env struct {
	types   map[string]types.Type // falls back to parent via typesParent
	typesParent *Env

	locals *scope

	globals           map[string]Binding
	namespaceBindings map[string]Binding

	imports map[string]*Env // shared across the whole compile, keyed by file path

	namespace *Namespace

	code *CompilationUnit

	fnRet types.Type

	loopCtx *LoopCtx

	comprehensionAction *Binding

	currentType types.Type

	idSuffix string

	doSourceMapping bool
}

// GlobalEnv constructs the root environment, populated with the built-in
// primitive types, their namespaces, and the built-in globals (§4.3
// global_env). imports is shared process-wide across every GlobalEnv caller
// that passes the same map, matching "imports: global mapping ... shared
// across the process" (§3.3).
func GlobalEnv(imports map[string]*Env) *Env {
	if imports == nil {
		imports = map[string]*Env{}
	}
	e := &Env{
		types:             builtinTypes(),
		locals:            newScope(nil),
		globals:           builtinGlobals(),
		namespaceBindings: map[string]Binding{},
		imports:           imports,
		code:              &CompilationUnit{},
		doSourceMapping:   true,
	}
	return e
}

func builtinTypes() map[string]types.Type {
	return map[string]types.Type{
		"Void":    types.Void{},
		"Abort":   types.Abort{},
		"Memory":  types.Memory{},
		"Bool":    types.Bool{},
		"Byte":    types.Byte{},
		"CString": types.CString{},
		"Int":     types.BigInt{},
		"Int8":    &types.Int{Bits: 8},
		"Int16":   &types.Int{Bits: 16},
		"Int32":   &types.Int{Bits: 32},
		"Int64":   &types.Int{Bits: 64},
		"Num":     &types.Num{Bits: 64},
		"Num32":   &types.Num{Bits: 32},
		"Text":    &types.Text{Lang: "Text"},
	}
}

func builtinGlobals() map[string]Binding {
	return map[string]Binding{
		"say":       {Type: &types.Function{Args: []types.FuncArg{{Name: "text", Type: &types.Text{Lang: "Text"}}}, Ret: types.Void{}}},
		"exit":      {Type: &types.Function{Args: []types.FuncArg{{Name: "code", Type: &types.Int{Bits: 32}}}, Ret: types.Abort{}}},
		"fail":      {Type: &types.Function{Args: []types.FuncArg{{Name: "message", Type: &types.Text{Lang: "Text"}}}, Ret: types.Abort{}}},
		"USE_COLOR": {Type: types.Bool{}},
	}
}

// FreshScope returns a child environment whose locals chain onto e's
// locals, sharing every other field (§4.3 fresh_scope).
func (e *Env) FreshScope() *Env {
	clone := *e
	clone.locals = newScope(e.locals)
	return &clone
}

// WithBinding returns a fresh child scope with name bound to b.
func (e *Env) WithBinding(name string, b Binding) *Env {
	child := e.FreshScope()
	child.locals.bindings[name] = b
	return child
}

// GetBinding resolves name against locals, then globals, then the current
// namespace chain's constructors.
func (e *Env) GetBinding(name string) (Binding, bool) {
	if b, ok := e.locals.lookup(name); ok {
		return b, true
	}
	if b, ok := e.globals[name]; ok {
		return b, true
	}
	for ns := e.namespace; ns != nil; ns = ns.Parent {
		if b, ok := ns.Constructors[name]; ok {
			return b, true
		}
	}
	if b, ok := e.namespaceBindings[name]; ok {
		return b, true
	}
	return Binding{}, false
}

// GetType resolves a type name against e.types, falling back to the parent
// chain.
func (e *Env) GetType(name string) (types.Type, bool) {
	for cur := e; cur != nil; cur = cur.typesParent {
		if t, ok := cur.types[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// WithType returns a child environment with an additional named type
// binding, falling back to e for everything else.
func (e *Env) WithType(name string, t types.Type) *Env {
	child := e.FreshScope()
	child.types = map[string]types.Type{name: t}
	child.typesParent = e
	return child
}

// DefineType installs a named type binding directly into e's own type map,
// in place. Unlike WithType (which chains a child scope for ordinary
// lexical nesting), this is the mutation prebind_statement/bind_statement
// need: every top-level definition in one module must land in the *same*
// module env so that later definitions in source order can see earlier
// ones and vice versa (mutual recursion, §4.4.4) — a fresh child per
// definition would hide each one from its siblings.
func (e *Env) DefineType(name string, t types.Type) {
	if e.types == nil {
		e.types = map[string]types.Type{}
	}
	e.types[name] = t
}

// DefineBinding installs a binding directly into e's own locals scope, in
// place. See DefineType for why this mutates rather than chaining.
func (e *Env) DefineBinding(name string, b Binding) {
	if e.locals == nil {
		e.locals = newScope(nil)
	}
	e.locals.bindings[name] = b
}

// NamespaceEnv opens a child namespace for method/constant definitions
// (§4.3 namespace_env).
func (e *Env) NamespaceEnv(name string) *Env {
	child := e.FreshScope()
	child.namespace = &Namespace{Name: name, Constructors: map[string]Binding{}, Parent: e.namespace}
	return child
}

// AddConstructor registers a named constructor binding in the current
// namespace link. Later registrations under the same name overwrite earlier
// ones, implementing the "prefer later-registered constructors on ties"
// rule (§4.3 get_constructor; see DESIGN.md's Open Question decision).
func (e *Env) AddConstructor(name string, b Binding) {
	if e.namespace == nil {
		return
	}
	if _, exists := e.namespace.Constructors[name]; !exists {
		e.namespace.order = append(e.namespace.order, name)
	}
	e.namespace.Constructors[name] = b
}

// WithEnumScope brings an enum's unqualified tag names into scope so that
// `when x is Foo:` resolves without `EnumName.Foo` (§4.3 with_enum_scope).
func (e *Env) WithEnumScope(t types.Type) *Env {
	enumT, ok := t.(*types.Enum)
	if !ok {
		return e
	}
	child := e.FreshScope()
	for _, tag := range enumT.Tags {
		child.locals.bindings[tag.Name] = Binding{Type: t}
	}
	return child
}

// WhenClauseScope binds an enum When clause's pattern variables to the
// matched tag's payload field types; WholePayload binds the whole payload
// record under a single name instead (§4.3 when_clause_scope).
func (e *Env) WhenClauseScope(subject types.Type, clause ast.WhenClause) *Env {
	enumT, ok := subject.(*types.Enum)
	if !ok {
		return e
	}
	var tag *types.EnumTag
	for i := range enumT.Tags {
		if enumT.Tags[i].Name == clause.Tag {
			tag = &enumT.Tags[i]
			break
		}
	}
	if tag == nil || tag.Payload == nil {
		return e.FreshScope()
	}
	child := e.FreshScope()
	if clause.WholePayload && len(clause.Bindings) == 1 {
		child.locals.bindings[clause.Bindings[0]] = Binding{Type: tag.Payload}
		return child
	}
	for i, name := range clause.Bindings {
		if i >= len(tag.Payload.Fields) {
			break
		}
		child.locals.bindings[name] = Binding{Type: tag.Payload.Fields[i].Type}
	}
	return child
}

// ForScope extends scope with the iteration variable(s) inferred from the
// iterable's type (§4.3 for_scope): list -> item or index+item; table ->
// key or key+value; function -> yielded value with Optional stripped.
func (e *Env) ForScope(iterable types.Type, vars []string, withIndex bool) *Env {
	child := e.FreshScope()
	switch t := iterable.(type) {
	case *types.List:
		if withIndex && len(vars) == 2 {
			child.locals.bindings[vars[0]] = Binding{Type: &types.Int{Bits: 64}}
			child.locals.bindings[vars[1]] = Binding{Type: t.Item}
		} else if len(vars) == 1 {
			child.locals.bindings[vars[0]] = Binding{Type: t.Item}
		}
	case *types.Set:
		if len(vars) == 1 {
			child.locals.bindings[vars[0]] = Binding{Type: t.Item}
		}
	case *types.Table:
		if len(vars) == 2 {
			child.locals.bindings[vars[0]] = Binding{Type: t.Key}
			child.locals.bindings[vars[1]] = Binding{Type: t.Value}
		} else if len(vars) == 1 {
			child.locals.bindings[vars[0]] = Binding{Type: t.Key}
		}
	case *types.Function:
		if len(vars) == 1 {
			child.locals.bindings[vars[0]] = Binding{Type: types.NonOptional(t.Ret)}
		}
	case *types.Closure:
		if len(vars) == 1 {
			child.locals.bindings[vars[0]] = Binding{Type: types.NonOptional(t.Fn.Ret)}
		}
	default:
		if len(vars) == 1 {
			child.locals.bindings[vars[0]] = Binding{Type: &types.Int{Bits: 64}}
		}
	}
	return child
}

// WithLoop pushes a new loop context frame, used to resolve `skip`/`stop`.
func (e *Env) WithLoop(name string, loopVars []string, skipLabel, stopLabel string) *Env {
	child := e.FreshScope()
	child.loopCtx = &LoopCtx{LoopName: name, LoopVars: loopVars, SkipLabel: skipLabel, StopLabel: stopLabel, Parent: e.loopCtx}
	return child
}

// Loop returns the innermost loop context, or nil outside any loop.
func (e *Env) Loop() *LoopCtx { return e.loopCtx }

// FindLoop resolves a `skip`/`stop` label to its loop context: "" means the
// innermost loop.
func (e *Env) FindLoop(label string) (*LoopCtx, bool) {
	for l := e.loopCtx; l != nil; l = l.Parent {
		if label == "" || l.LoopName == label {
			return l, true
		}
	}
	return nil, false
}

// WithFuncReturn returns a child environment recording the enclosing
// function's declared return type, used to validate `return` statements and
// to open enum-tag scope for a When embedded in a match-returning function.
func (e *Env) WithFuncReturn(ret types.Type) *Env {
	child := e.FreshScope()
	child.fnRet = ret
	return child
}

// FuncReturn returns the enclosing function's declared return type, or nil
// at the top level.
func (e *Env) FuncReturn() types.Type { return e.fnRet }

// WithCurrentType returns a child environment recording the type currently
// being defined, enabling private-field access inside its own namespace body.
func (e *Env) WithCurrentType(t types.Type) *Env {
	child := e.FreshScope()
	child.currentType = t
	return child
}

// CurrentType returns the type currently being defined, or nil.
func (e *Env) CurrentType() types.Type { return e.currentType }

// IDSuffix returns the file-derived suffix used to mangle C identifiers
// uniquely per translation unit.
func (e *Env) IDSuffix() string { return e.idSuffix }

// WithIDSuffix returns a clone of e with idSuffix set (used once, when
// entering a new top-level file's compilation).
func (e *Env) WithIDSuffix(suffix string) *Env {
	clone := *e
	clone.idSuffix = suffix
	return &clone
}

// DoSourceMapping reports whether #line directives should be emitted.
func (e *Env) DoSourceMapping() bool { return e.doSourceMapping }

// SetDoSourceMapping toggles #line emission for this environment (and every
// scope derived from it afterward).
func (e *Env) SetDoSourceMapping(on bool) { e.doSourceMapping = on }

// Code returns the per-compilation-unit emission buffers.
func (e *Env) Code() *CompilationUnit { return e.code }

// Imports returns the process-wide module-env memoization table.
func (e *Env) Imports() map[string]*Env { return e.imports }

// ComprehensionAction returns the closure binding a nested comprehension
// uses to inject items into its outer collection, if any.
func (e *Env) ComprehensionAction() (Binding, bool) {
	if e.comprehensionAction == nil {
		return Binding{}, false
	}
	return *e.comprehensionAction, true
}

// WithComprehensionAction returns a child environment carrying the given
// injection-closure binding.
func (e *Env) WithComprehensionAction(b Binding) *Env {
	child := e.FreshScope()
	child.comprehensionAction = &b
	return child
}
