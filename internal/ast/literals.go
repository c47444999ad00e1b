package ast

import "fmt"

type exprBase struct{ base }

func (exprBase) exprNode() {}

// IntLiteral is a fixed-width or arbitrary-precision integer literal. Units,
// when present (e.g. `12%`, `3px`), are recorded for operator-overload
// dispatch on the declared scale.
type IntLiteral struct {
	exprBase
	Text  string // original text, preserved for bit-exact C emission
	Bits  int    // 0 means unspecified / BigInt
	Units string
}

func (n *IntLiteral) String() string { return n.Text }

// NumLiteral is a floating point literal.
type NumLiteral struct {
	exprBase
	Text  string
	Bits  int
	Units string
}

func (n *NumLiteral) String() string { return n.Text }

// BoolLiteral is `yes` / `no`.
type BoolLiteral struct {
	exprBase
	Value bool
}

func (n *BoolLiteral) String() string {
	if n.Value {
		return "yes"
	}
	return "no"
}

// NoneLiteral is the bare `none` literal; its Optional's Inner starts nil
// (incomplete) until context resolves it.
type NoneLiteral struct {
	exprBase
	Lang string // optional explicit `none:Type` annotation text
}

func (n *NoneLiteral) String() string {
	if n.Lang != "" {
		return "none:" + n.Lang
	}
	return "none"
}

// TextChunk is one literal run inside a TextLiteral/TextJoin.
type TextChunk struct {
	Text string
}

// TextLiteral is a single-language text literal, possibly with interpolated
// expressions (Interpolations), e.g. `"hello $(name)"`.
type TextLiteral struct {
	exprBase
	Lang           string // "" means the plain Text type
	Chunks         []TextChunk
	Interpolations []Expr
}

func (n *TextLiteral) String() string { return fmt.Sprintf("%q", n.Chunks) }

// TextJoin concatenates multiple TextLiteral/interpolated fragments produced
// by adjacent string literal syntax or a `$List.join()`-style reduction.
type TextJoin struct {
	exprBase
	Lang  string
	Parts []Expr
}

func (n *TextJoin) String() string { return "TextJoin(...)" }

// PathLiteral is a `(/some/path)` filesystem-path literal.
type PathLiteral struct {
	exprBase
	Text string
}

func (n *PathLiteral) String() string { return n.Text }

// Var is a bare identifier reference.
type Var struct {
	exprBase
	Name string
}

func (n *Var) String() string { return n.Name }

// ListLiteral constructs a list from Items, or from a single Comprehension
// (mutually exclusive with Items).
type ListLiteral struct {
	exprBase
	ItemType      TypeAst // nil if inferred
	Items         []Expr
	Comprehension *Comprehension
}

func (n *ListLiteral) String() string { return "[...]" }

// SetLiteral constructs a set the same way ListLiteral constructs a list.
type SetLiteral struct {
	exprBase
	ItemType      TypeAst
	Items         []Expr
	Comprehension *Comprehension
}

func (n *SetLiteral) String() string { return "{...}" }

// TableEntry is one `Key=Value` pair in a TableLiteral.
type TableEntry struct {
	Key   Expr
	Value Expr
}

// TableLiteral constructs a table, or a table default (`::default`) clause.
type TableLiteral struct {
	exprBase
	KeyType       TypeAst
	ValueType     TypeAst
	Default       Expr
	Entries       []TableEntry
	Comprehension *Comprehension
}

func (n *TableLiteral) String() string { return "{...}" }
