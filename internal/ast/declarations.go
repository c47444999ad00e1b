package ast

// Declare introduces a new local binding: `name := value` or `name : Type`.
type Declare struct {
	stmtBase
	Name        string
	DeclaredType TypeAst // nil if inferred from Value
	Value       Expr    // nil if only a type annotation with no initializer
}

func (n *Declare) String() string     { return n.Name + " := ..." }
func (n *Declare) DeclName() string   { return n.Name }

// Assign is `targets = values` (parallel assignment of one or more lvalues).
type Assign struct {
	stmtBase
	Targets []Expr
	Values  []Expr
}

func (n *Assign) String() string { return "Assign(...)" }

// Param is one parameter of a FunctionDef/Lambda.
type Param struct {
	Name    string
	Type    TypeAst // nil if inferred (lambdas only)
	Default Expr    // nil if required
}

// FunctionDef declares a named, top-level or namespace-scoped function.
type FunctionDef struct {
	stmtBase
	Name      string
	Args      []Param
	Ret       TypeAst // nil if inferred from body
	Body      *Block
	IsInline  bool
	CacheSize int // >0 for `func f(...) -> T; cache:N`
}

func (n *FunctionDef) String() string   { return "func " + n.Name }
func (n *FunctionDef) DeclName() string { return n.Name }

// ConvertDef declares a `convert` constructor/coercion function, e.g.
// `convert(x:Int) -> Text`.
type ConvertDef struct {
	stmtBase
	Args []Param
	Ret  TypeAst
	Body *Block
}

func (n *ConvertDef) String() string   { return "convert(...)" }
func (n *ConvertDef) DeclName() string { return "convert" }

// StructField is one declared field of a StructDef.
type StructField struct {
	Name    string
	Type    TypeAst
	Default Expr
	Secret  bool
}

// StructDef declares a named struct type and its namespace body (methods,
// constants, nested defs) in Namespace.
type StructDef struct {
	stmtBase
	Name      string
	Fields    []StructField
	Namespace []Stmt
	External  bool
	Secret    bool
}

func (n *StructDef) String() string   { return "struct " + n.Name }
func (n *StructDef) DeclName() string { return n.Name }

// EnumField is one field of a tag's payload within an EnumDef.
type EnumField struct {
	Name    string
	Type    TypeAst
	Default Expr
}

// EnumTagDef is one `Tag(field: Type, ...)` constructor of an EnumDef.
type EnumTagDef struct {
	Name   string
	Fields []EnumField // empty if field-less
}

// EnumDef declares a named tagged-union type.
type EnumDef struct {
	stmtBase
	Name      string
	Tags      []EnumTagDef
	Namespace []Stmt
}

func (n *EnumDef) String() string   { return "enum " + n.Name }
func (n *EnumDef) DeclName() string { return n.Name }

// LangDef declares a text-language ("lang") type sharing Text's
// representation but with its own namespace and escaping rules.
type LangDef struct {
	stmtBase
	Name      string
	Namespace []Stmt
}

func (n *LangDef) String() string   { return "lang " + n.Name }
func (n *LangDef) DeclName() string { return n.Name }

// Extend reopens an existing type's namespace to add methods/constants.
type Extend struct {
	stmtBase
	TargetType TypeAst
	Namespace  []Stmt
}

func (n *Extend) String() string   { return "extend " + n.TargetType.String() }
func (n *Extend) DeclName() string { return n.TargetType.String() }

// Extern declares a foreign C symbol's type without generating a definition.
type Extern struct {
	stmtBase
	Name    string
	Type    TypeAst
	CName   string // defaults to Name when empty
}

func (n *Extern) String() string   { return "extern " + n.Name }
func (n *Extern) DeclName() string { return n.Name }

// Use imports another module or a raw C header/library.
type Use struct {
	stmtBase
	Kind UseKind
	Path string
}

type UseKind int

const (
	UseModule UseKind = iota
	UseCHeader
	UseCLibrary
	UseCSource
	UseAsm
)

func (n *Use) String() string   { return "use " + n.Path }
func (n *Use) DeclName() string { return n.Path }
