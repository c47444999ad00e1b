package ast

// IsIdempotent reports whether evaluating n has no observable side effect,
// so the code generator may re-evaluate it instead of binding a temporary
// (§4.2 is_idempotent).
func IsIdempotent(n Node) bool {
	switch x := n.(type) {
	case *IntLiteral, *NumLiteral, *BoolLiteral, *NoneLiteral, *Var, *PathLiteral:
		return true
	case *TextLiteral:
		for _, e := range x.Interpolations {
			if !IsIdempotent(e) {
				return false
			}
		}
		return true
	case *FieldAccess:
		return IsIdempotent(x.Subject)
	case *Index:
		if x.Index != nil && !IsIdempotent(x.Index) {
			return false
		}
		return IsIdempotent(x.Subject)
	case *UnaryOp:
		return IsIdempotent(x.Operand)
	case *BinaryOp:
		return IsIdempotent(x.LHS) && IsIdempotent(x.RHS)
	default:
		return false
	}
}

// IsBinaryOperation reports whether n is a BinaryOp node.
func IsBinaryOperation(n Node) bool {
	_, ok := n.(*BinaryOp)
	return ok
}

// IsUpdateAssignment reports whether n is one of the PlusUpdate/MinusUpdate/...
// family.
func IsUpdateAssignment(n Node) bool {
	_, ok := n.(*UpdateAssign)
	return ok
}

// typeDefiner is implemented by StructDef, EnumDef and LangDef: the three
// variants VisitTopologically orders by dependency.
type typeDefiner interface {
	Declaration
	referencedTypeNames() []string
}

func (n *StructDef) referencedTypeNames() []string {
	names := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		names = append(names, typeAstNames(f.Type)...)
	}
	return names
}

func (n *EnumDef) referencedTypeNames() []string {
	var names []string
	for _, tag := range n.Tags {
		for _, f := range tag.Fields {
			names = append(names, typeAstNames(f.Type)...)
		}
	}
	return names
}

func (n *LangDef) referencedTypeNames() []string { return nil }

func typeAstNames(t TypeAst) []string {
	switch x := t.(type) {
	case nil:
		return nil
	case *VarType:
		return []string{join(x.Path, ".")}
	case *PointerType:
		return typeAstNames(x.Pointed)
	case *ListType:
		return typeAstNames(x.Item)
	case *SetType:
		return typeAstNames(x.Item)
	case *TableType:
		names := append(typeAstNames(x.Key), typeAstNames(x.Value)...)
		if x.Default != nil {
			names = append(names, typeAstNames(x.Default)...)
		}
		return names
	case *OptionalType:
		return typeAstNames(x.Inner)
	case *FunctionType:
		var names []string
		for _, a := range x.ArgTypes {
			names = append(names, typeAstNames(a)...)
		}
		return append(names, typeAstNames(x.Ret)...)
	default:
		return nil
	}
}

// VisitTopologically orders top-level statements so each type/lang
// definition is visited after the type names its fields reference, and
// invokes visit on each in that order (§4.2 visit_topologically).
//
//  1. Collect Struct/Enum/Lang definitions into a name -> node map.
//  2. Emit Use statements in source order.
//  3. DFS each type definition over referenced type names, post-order.
//  4. Emit all remaining statements in source order.
func VisitTopologically(statements []Node, visit func(Node)) {
	byName := map[string]typeDefiner{}
	for _, s := range statements {
		if td, ok := s.(typeDefiner); ok {
			byName[td.DeclName()] = td
		}
	}

	visited := map[string]bool{}
	var visitType func(td typeDefiner)
	visitType = func(td typeDefiner) {
		name := td.DeclName()
		if visited[name] {
			return
		}
		visited[name] = true
		for _, dep := range td.referencedTypeNames() {
			if depDef, ok := byName[dep]; ok {
				visitType(depDef)
			}
		}
		visit(td)
	}

	for _, s := range statements {
		if u, ok := s.(*Use); ok {
			visit(u)
		}
	}
	for _, s := range statements {
		if td, ok := s.(typeDefiner); ok {
			visitType(td)
		}
	}
	for _, s := range statements {
		switch s.(type) {
		case *Use:
			continue
		case *StructDef, *EnumDef, *LangDef:
			continue
		default:
			visit(s)
		}
	}
}
