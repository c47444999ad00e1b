// Package types implements the compiler core's type representation: a
// tagged sum of every runtime type the language supports, plus structural
// equality, size/alignment, and the completeness/promotion lattice that the
// type checker and code generator build on.
package types

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
)

// Type is the tagged-sum interface every concrete type variant implements.
type Type interface {
	String() string
	Equals(other Type) bool
}

// NamespacePath is a lightweight, intern-able chain of namespace names used
// to mangle C identifiers for struct/enum/lang types. It intentionally
// carries none of the Environment's scoping machinery (bindings, locals,
// imports) — that lives in package env, which depends on this package, not
// the other way around.
type NamespacePath struct {
	Name   string
	Parent *NamespacePath
}

// Qualified returns the dotted path from the outermost namespace to this one.
func (n *NamespacePath) Qualified(sep string) string {
	if n == nil {
		return ""
	}
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.Qualified(sep) + sep + n.Name
}

// Void, Abort, Memory are control-flow / unit-like singleton types.
type Void struct{}

func (Void) String() string     { return "Void" }
func (Void) Equals(o Type) bool { _, ok := o.(Void); return ok }

type Abort struct{}

func (Abort) String() string     { return "Abort" }
func (Abort) Equals(o Type) bool { _, ok := o.(Abort); return ok }

// Return wraps the type that a `return` statement yields in context; it is
// never nested inside an Optional (see the Optional invariant in §3.1).
type Return struct {
	Inner Type
}

func (t *Return) String() string { return fmt.Sprintf("Return(%s)", t.Inner) }
func (t *Return) Equals(o Type) bool {
	ot, ok := o.(*Return)
	return ok && typeEqualsOrNil(t.Inner, ot.Inner)
}

type Memory struct{}

func (Memory) String() string     { return "Memory" }
func (Memory) Equals(o Type) bool { _, ok := o.(Memory); return ok }

// Bool, Byte, CString are primitive scalar types.
type Bool struct{}

func (Bool) String() string     { return "Bool" }
func (Bool) Equals(o Type) bool { _, ok := o.(Bool); return ok }

type Byte struct{}

func (Byte) String() string     { return "Byte" }
func (Byte) Equals(o Type) bool { _, ok := o.(Byte); return ok }

type CString struct{}

func (CString) String() string     { return "CString" }
func (CString) Equals(o Type) bool { _, ok := o.(CString); return ok }

// BigInt is the arbitrary-precision integer type.
type BigInt struct{}

func (BigInt) String() string     { return "Int" }
func (BigInt) Equals(o Type) bool { _, ok := o.(BigInt); return ok }

// Int is a fixed-width signed integer; Bits is one of 8, 16, 32, 64.
type Int struct {
	Bits int
}

func (t *Int) String() string { return fmt.Sprintf("Int%d", t.Bits) }
func (t *Int) Equals(o Type) bool {
	ot, ok := o.(*Int)
	return ok && t.Bits == ot.Bits
}

// Num is an IEEE float; Bits is 32 or 64.
type Num struct {
	Bits int
}

func (t *Num) String() string {
	if t.Bits == 64 {
		return "Num"
	}
	return fmt.Sprintf("Num%d", t.Bits)
}
func (t *Num) Equals(o Type) bool {
	ot, ok := o.(*Num)
	return ok && t.Bits == ot.Bits
}

// Text is the language-tagged text type. Lang == "Text" (or empty) means the
// plain, untagged text representation; any other value names a user-defined
// DSL ("Path", a lang-def, etc.) sharing the same underlying representation.
type Text struct {
	Lang string
	NS   *NamespacePath
}

func (t *Text) String() string {
	if t.Lang == "" || t.Lang == "Text" {
		return "Text"
	}
	return t.Lang
}
func (t *Text) Equals(o Type) bool {
	ot, ok := o.(*Text)
	return ok && t.effectiveLang() == ot.effectiveLang()
}
func (t *Text) effectiveLang() string {
	if t.Lang == "" {
		return "Text"
	}
	return t.Lang
}

// List and Set are homogeneous ordered/unordered collections.
type List struct {
	Item Type
}

func (t *List) String() string { return fmt.Sprintf("[%s]", t.Item) }
func (t *List) Equals(o Type) bool {
	ot, ok := o.(*List)
	return ok && t.Item.Equals(ot.Item)
}

type Set struct {
	Item Type
}

func (t *Set) String() string { return fmt.Sprintf("{%s}", t.Item) }
func (t *Set) Equals(o Type) bool {
	ot, ok := o.(*Set)
	return ok && t.Item.Equals(ot.Item)
}

// Table is an ordered map; Default, when non-nil, makes indexing a missing
// key return Default instead of aborting.
type Table struct {
	Key     Type
	Value   Type
	Default Type // may be nil
	NS      *NamespacePath
}

func (t *Table) String() string {
	if t.Default != nil {
		return fmt.Sprintf("{%s=%s; default=%s}", t.Key, t.Value, t.Default)
	}
	return fmt.Sprintf("{%s=%s}", t.Key, t.Value)
}
func (t *Table) Equals(o Type) bool {
	ot, ok := o.(*Table)
	if !ok || !t.Key.Equals(ot.Key) || !t.Value.Equals(ot.Value) {
		return false
	}
	return typeEqualsOrNil(t.Default, ot.Default)
}

// Pointer distinguishes stack references (IsStack) from heap pointers; the
// distinction is load-bearing for closure-capture safety (§4.5.5) and for
// the constraint that lists/sets/tables/returns never contain stack memory.
type Pointer struct {
	Pointed Type
	IsStack bool
}

func (t *Pointer) String() string {
	sigil := "@"
	if t.IsStack {
		sigil = "&"
	}
	return sigil + t.Pointed.String()
}
func (t *Pointer) Equals(o Type) bool {
	ot, ok := o.(*Pointer)
	return ok && t.IsStack == ot.IsStack && t.Pointed.Equals(ot.Pointed)
}

// Optional is a nullable wrapper. Inner == nil marks an *incomplete*
// optional, produced by a bare `none` literal whose type hasn't been
// resolved from context yet (see IsIncompleteType / MostCompleteType).
type Optional struct {
	Inner Type // nil => incomplete
}

func (t *Optional) String() string {
	if t.Inner == nil {
		return "none"
	}
	return t.Inner.String() + "?"
}
func (t *Optional) Equals(o Type) bool {
	ot, ok := o.(*Optional)
	return ok && typeEqualsOrNil(t.Inner, ot.Inner)
}

// StructField is a single field of a Struct type. Default, when non-nil, is
// the unevaluated default-value expression (not its type) — the value a
// constructor call omitting this field should compile and pass in its place.
type StructField struct {
	Name    string
	Type    Type
	Default ast.Expr // nil if no default
}

// Struct is a named product type.
type Struct struct {
	Name     string
	Fields   []StructField
	NS       *NamespacePath
	Opaque   bool // true while the definition is still forward-declared
	External bool // defined outside this compile (no struct tag is emitted)
	Secret   bool // fields are printed redacted by generic_as_text
}

func (t *Struct) String() string { return t.Name }
func (t *Struct) Equals(o Type) bool {
	ot, ok := o.(*Struct)
	return ok && t.Name == ot.Name && samePath(t.NS, ot.NS)
}

// EnumTag is one constructor of an Enum; Payload is nil for a field-less tag.
type EnumTag struct {
	Name    string
	Value   int64
	Payload *Struct // nil => no payload
}

// Enum is a tagged union ("sum type"); a non-empty payload on any tag means
// the emitted C layout is a tagged struct rather than a plain `enum`.
type Enum struct {
	Name   string
	Tags   []EnumTag
	NS     *NamespacePath
	Opaque bool
}

func (t *Enum) String() string { return t.Name }
func (t *Enum) Equals(o Type) bool {
	ot, ok := o.(*Enum)
	return ok && t.Name == ot.Name && samePath(t.NS, ot.NS)
}

// HasPayloads reports whether any tag in the enum carries fields — see
// EnumHasFields.
func (t *Enum) HasPayloads() bool {
	return EnumHasFields(t)
}

// FuncArg is one parameter of a Function type. Default, when non-nil, is the
// unevaluated default-value expression (not its type) — a caller omitting
// this argument compiles and passes this expression's value in its place.
type FuncArg struct {
	Name    string
	Type    Type
	Default ast.Expr // nil if required
}

// Function is a plain function type (no captured environment). Ret must
// never contain a stack pointer (enforced in package check).
type Function struct {
	Args []FuncArg
	Ret  Type
}

func (t *Function) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.Type.String()
	}
	return fmt.Sprintf("func(%s) -> %s", strings.Join(parts, ", "), t.Ret)
}
func (t *Function) Equals(o Type) bool {
	ot, ok := o.(*Function)
	if !ok || len(t.Args) != len(ot.Args) || !t.Ret.Equals(ot.Ret) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Type.Equals(ot.Args[i].Type) {
			return false
		}
	}
	return true
}

// Closure is a Function value paired with a captured-environment pointer —
// the user-visible form every FunctionType parses into (§4.4.1).
type Closure struct {
	Fn *Function
}

func (t *Closure) String() string { return "Closure(" + t.Fn.String() + ")" }
func (t *Closure) Equals(o Type) bool {
	ot, ok := o.(*Closure)
	return ok && t.Fn.Equals(ot.Fn)
}

// TypeInfo is the first-class, value-level representation of a Type: what a
// bare type name evaluates to in expression position.
type TypeInfo struct {
	Name string
	Type Type
	NS   *NamespacePath
}

func (t *TypeInfo) String() string { return fmt.Sprintf("TypeInfo(%s)", t.Name) }
func (t *TypeInfo) Equals(o Type) bool {
	ot, ok := o.(*TypeInfo)
	return ok && t.Name == ot.Name
}

// Module is the type of an imported module binding.
type Module struct {
	Name string
}

func (t *Module) String() string     { return fmt.Sprintf("Module(%s)", t.Name) }
func (t *Module) Equals(o Type) bool { ot, ok := o.(*Module); return ok && t.Name == ot.Name }

func typeEqualsOrNil(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

func samePath(a, b *NamespacePath) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Qualified(".") == b.Qualified(".")
}

// Eq is the free-function form of structural equality used throughout the
// checker and code generator (mirrors the original's `type_eq`).
func Eq(a, b Type) bool {
	return typeEqualsOrNil(a, b)
}
