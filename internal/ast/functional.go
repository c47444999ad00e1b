package ast

// Lambda is an anonymous function literal, compiled to a closure (capture
// analysis + synthesized userdata struct, §4.5.5).
type Lambda struct {
	exprBase
	Args []Param
	Body *Block
}

func (n *Lambda) String() string { return "func(...) ..." }

// Comprehension is the `for vars in iterable [if cond]` clause embedded
// inside a ListLiteral/SetLiteral/TableLiteral, or a standalone reduction
// context. Expr is the per-item expression (or TableEntry-producing pair,
// handled by the containing literal); Comprehension itself only carries the
// iteration and filter shape.
type Comprehension struct {
	exprBase
	Vars     []string
	Index    bool
	Iterable Expr
	Filter   Expr // nil if no `if` clause
	Body     Expr // the per-item expression being collected
}

func (n *Comprehension) String() string { return "for ... in ..." }

// Reduction is `(expr for vars in iterable) op` or the unary-operator form
// `op reduction-body`, folding an iterable down with a binary operator.
type Reduction struct {
	exprBase
	Op       BinOp
	Iterable *Comprehension
	Fallback Expr // value when Iterable yields nothing; nil aborts at runtime
}

func (n *Reduction) String() string { return "(... for ... in ...)" }

// Assert checks Condition at runtime, aborting with Message (or a rendered
// form of Condition) on failure.
type Assert struct {
	stmtBase
	Condition Expr
	Message   Expr // nil if absent
}

func (n *Assert) String() string { return "assert ..." }

// DocTest is a `>>` / `=` doctest pair embedded in a doc comment, checked at
// compile time (or under `--test`) by evaluating Expr and comparing its
// printed form to Expected.
type DocTest struct {
	stmtBase
	Expr     Expr
	Expected string // expected printed output, "" if only checking no-abort
	SkipErr  bool   // `!>>` form: expected to error
}

func (n *DocTest) String() string { return ">> " + n.Expr.String() }

// InlineCCode is a raw C escape hatch: `C_code{...}` with optional embedded
// expression interpolations.
type InlineCCode struct {
	exprBase
	Chunks         []string
	Interpolations []Expr
	Type           TypeAst // nil if untyped (statement position)
}

func (n *InlineCCode) String() string { return "C_code{...}" }
