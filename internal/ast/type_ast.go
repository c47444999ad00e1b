package ast

import "fmt"

// TypeAst is the separate sum covering type expressions as written in
// source, distinct from the runtime Type lattice in package types. Package
// check's ParseTypeAst folds one of these into a types.Type.
type TypeAst interface {
	Node
	typeAstNode()
}

type typeAstBase struct{ base }

func (typeAstBase) typeAstNode() {}

// VarType is a bare or dotted type name: `Int`, `Mod.Sub.Name`.
type VarType struct {
	typeAstBase
	Path []string
}

func (t *VarType) String() string { return join(t.Path, ".") }

// PointerType is `@Pointed` (heap) or `&Pointed` (stack).
type PointerType struct {
	typeAstBase
	Pointed TypeAst
	IsStack bool
}

func (t *PointerType) String() string {
	sigil := "@"
	if t.IsStack {
		sigil = "&"
	}
	return sigil + t.Pointed.String()
}

// ListType is `[Item]`.
type ListType struct {
	typeAstBase
	Item TypeAst
}

func (t *ListType) String() string { return "[" + t.Item.String() + "]" }

// SetType is `{Item}`.
type SetType struct {
	typeAstBase
	Item TypeAst
}

func (t *SetType) String() string { return "{" + t.Item.String() + "}" }

// TableType is `{Key=Value}`, optionally with a `; default=Default` clause.
type TableType struct {
	typeAstBase
	Key     TypeAst
	Value   TypeAst
	Default TypeAst // nil if absent
}

func (t *TableType) String() string {
	if t.Default != nil {
		return fmt.Sprintf("{%s=%s; default=%s}", t.Key, t.Value, t.Default)
	}
	return fmt.Sprintf("{%s=%s}", t.Key, t.Value)
}

// FunctionType is `func(name: Type, ...) -> Ret`.
type FunctionType struct {
	typeAstBase
	ArgNames []string
	ArgTypes []TypeAst
	Ret      TypeAst
}

func (t *FunctionType) String() string { return "func(...)" }

// OptionalType is `Inner?`.
type OptionalType struct {
	typeAstBase
	Inner TypeAst
}

func (t *OptionalType) String() string { return t.Inner.String() + "?" }

// UnknownType stands in for a type that has not been written explicitly and
// must be inferred from context (e.g. an untyped `none` literal).
type UnknownType struct {
	typeAstBase
}

func (t *UnknownType) String() string { return "?" }

func join(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
