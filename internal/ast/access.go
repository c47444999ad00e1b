package ast

// FieldAccess is `subject.field`.
type FieldAccess struct {
	exprBase
	Subject Expr
	Field   string
}

func (n *FieldAccess) String() string { return n.Subject.String() + "." + n.Field }

// Index is `subject[index]`, or `subject[]` (IsSlice with Index==nil) for a
// full-slice copy.
type Index struct {
	exprBase
	Subject Expr
	Index   Expr // nil when IsSlice
	IsSlice bool
	Unchecked bool // `[index:!]` bounds-skipping form
}

func (n *Index) String() string { return n.Subject.String() + "[...]" }

// Arg is one argument of a MethodCall/FunctionCall, optionally named.
type Arg struct {
	Name  string // "" for positional
	Value Expr
}

// MethodCall is `subject.method(args...)`, resolved via
// env.get_namespace_binding against the subject's type namespace.
type MethodCall struct {
	exprBase
	Subject Expr
	Method  string
	Args    []Arg
}

func (n *MethodCall) String() string { return n.Subject.String() + "." + n.Method + "(...)" }

// FunctionCall is `fn(args...)`, where fn may be a bare name, a namespaced
// constructor reference, or any expression evaluating to a function/closure.
type FunctionCall struct {
	exprBase
	Fn   Expr
	Args []Arg
}

func (n *FunctionCall) String() string { return n.Fn.String() + "(...)" }

// HeapAllocate is `@value`, producing a heap Pointer.
type HeapAllocate struct {
	exprBase
	Value Expr
}

func (n *HeapAllocate) String() string { return "@" + n.Value.String() }

// StackReference is `&value`, producing a stack Pointer. Only legal where
// the compiler can prove the reference does not outlive its frame.
type StackReference struct {
	exprBase
	Value Expr
}

func (n *StackReference) String() string { return "&" + n.Value.String() }

// OptionalExpr wraps Value so its static type becomes `Optional(T)` without
// changing its runtime representation (used for `?`-typed literal contexts).
type OptionalExpr struct {
	exprBase
	Value Expr
}

func (n *OptionalExpr) String() string { return n.Value.String() + "?" }

// NonOptional asserts Value is present, aborting at runtime if `none`
// (`value!`).
type NonOptionalExpr struct {
	exprBase
	Value Expr
}

func (n *NonOptionalExpr) String() string { return n.Value.String() + "!" }
