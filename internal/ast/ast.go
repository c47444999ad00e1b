// Package ast defines the tagged sum of AST and type-expression nodes the
// compiler core consumes. Lexing and parsing are external collaborators
// (§1); this package only describes the shape of the tree they hand the
// type checker and code generator, plus enough source-span bookkeeping to
// produce diagnostics and `#line` directives.
package ast

import "fmt"

// Pos is a byte offset into a source File, resolved to line/column lazily
// (only when a diagnostic actually needs to print one) by the File's own
// line-index, not stored redundantly on every node.
type Pos struct {
	File   *File
	Offset int
}

// Span is a [Start, End) byte range used for diagnostics and #line mapping.
type Span struct {
	Start Pos
	End   Pos
}

// File is a single source file as the external parser hands it to us.
type File struct {
	Name             string
	Text             string
	RelativeFilename string
}

// LineCol resolves a byte offset to a 1-indexed (line, column) pair.
func (f *File) LineCol(offset int) (line, col int) {
	if f == nil || offset < 0 || offset > len(f.Text) {
		return 0, 0
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if f.Text[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Excerpt returns the source line containing start, plus a caret marker
// under the [start,end) span, for use by package diagnostics (§6.4).
func (f *File) Excerpt(start, end int) (line string, caretPrefix int, caretWidth int) {
	if f == nil {
		return "", 0, 0
	}
	lineStart := start
	for lineStart > 0 && f.Text[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := start
	for lineEnd < len(f.Text) && f.Text[lineEnd] != '\n' {
		lineEnd++
	}
	width := end - start
	if width < 1 {
		width = 1
	}
	return f.Text[lineStart:lineEnd], start - lineStart, width
}

func (p Pos) String() string {
	if p.File == nil {
		return "?"
	}
	line, col := p.File.LineCol(p.Offset)
	name := p.File.RelativeFilename
	if name == "" {
		name = p.File.Name
	}
	return fmt.Sprintf("%s:%d.%d", name, line, col)
}

// Node is the base interface every AST node implements.
type Node interface {
	String() string
	Span() Span
}

// base is embedded by every concrete node to provide Span() and a shared
// place to hang the source reference. It is not itself a Node.
type base struct {
	span Span
}

func (b base) Span() Span { return b.span }

// NewSpan is a convenience constructor used by the (external) parser when
// building nodes.
func NewSpan(start, end Pos) Span { return Span{Start: start, End: end} }

// Expr is any AST node usable in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any AST node usable in statement position. Tomo is expression-
// oriented (every Expr is also usable as a statement whose value is
// discarded); Stmt marks the declaration-shaped forms that are not
// expressions in their own right (e.g. FunctionDef, StructDef).
type Stmt interface {
	Node
	stmtNode()
}

// Declaration is the subset of Stmt that introduces a name into scope and
// participates in topological emit ordering (VisitTopologically).
type Declaration interface {
	Stmt
	DeclName() string
}
