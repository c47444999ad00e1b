// Package fixture decodes the JSON AST fixtures cmd/tomoc consumes. There is
// no lexer/parser in this module (§1); fixtures are how a caller hands the
// checker/codegen pipeline a tree to exercise without one.
//
// The schema mirrors ast.Print's output shape (a "type" field naming the Go
// node, plus exported field names verbatim) so a fixture can be produced by
// hand or by round-tripping a real parser's own deterministic dump.
package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
)

// Load decodes a JSON fixture into a Program. name is used as the
// synthesized File's name for diagnostics and #line directives.
func Load(data []byte, name string) (*ast.Program, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fixture: invalid JSON: %w", err)
	}
	file := &ast.File{Name: name, RelativeFilename: name}
	d := &decoder{}

	stmtsRaw, _ := raw["statements"].([]any)
	stmts := make([]ast.Node, 0, len(stmtsRaw))
	for i, s := range stmtsRaw {
		m, ok := s.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("fixture: statement %d is not an object", i)
		}
		n, err := d.node(m)
		if err != nil {
			return nil, fmt.Errorf("fixture: statement %d: %w", i, err)
		}
		stmts = append(stmts, n)
	}
	return &ast.Program{File: file, Statements: stmts}, nil
}

type decoder struct{}

func (d *decoder) typeName(m map[string]any) string {
	t, _ := m["type"].(string)
	return t
}

func (d *decoder) str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func (d *decoder) boolean(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func (d *decoder) integer(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (d *decoder) strings(m map[string]any, key string) []string {
	raw, _ := m[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, _ := v.(string)
		out = append(out, s)
	}
	return out
}

func (d *decoder) objects(m map[string]any, key string) []map[string]any {
	raw, _ := m[key].([]any)
	out := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if obj, ok := v.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func (d *decoder) object(m map[string]any, key string) map[string]any {
	obj, _ := m[key].(map[string]any)
	return obj
}

// node dispatches any fixture object to its concrete ast.Node, covering the
// statement- and expression-shaped node kinds a fixture exercises (§3.2's
// declarations, control flow, calls, literals). Node kinds with no
// observable effect on type-checking or code generation (e.g. the plainer
// literal forms) are added as fixtures need them.
func (d *decoder) node(m map[string]any) (ast.Node, error) {
	switch d.typeName(m) {
	case "StructDef":
		return d.structDef(m)
	case "EnumDef":
		return d.enumDef(m)
	case "FunctionDef":
		return d.functionDef(m)
	case "Declare":
		return d.declare(m)
	case "Assign":
		return d.assign(m)
	case "Return":
		v, err := d.maybeExpr(m, "Value")
		if err != nil {
			return nil, err
		}
		return &ast.Return{Value: v}, nil
	case "Pass":
		return &ast.Pass{}, nil
	case "Assert":
		cond, err := d.expr(d.object(m, "Condition"))
		if err != nil {
			return nil, err
		}
		msg, err := d.maybeExpr(m, "Message")
		if err != nil {
			return nil, err
		}
		return &ast.Assert{Condition: cond, Message: msg}, nil
	case "Extern":
		t, err := d.typeAst(d.object(m, "Type"))
		if err != nil {
			return nil, err
		}
		return &ast.Extern{Name: d.str(m, "Name"), Type: t, CName: d.str(m, "CName")}, nil
	case "Use":
		return &ast.Use{Kind: ast.UseKind(d.integer(m, "Kind")), Path: d.str(m, "Path")}, nil
	default:
		return d.expr(m)
	}
}

// stmt decodes a namespace member, which must be a declaration-shaped form
// (FunctionDef, Declare, StructDef, ...): package ast's Stmt marker method is
// unexported, so an arbitrary Expr can't be wrapped into one from here, same
// as the real parser would never itself put a bare expression in a
// namespace body.
func (d *decoder) stmt(m map[string]any) (ast.Stmt, error) {
	n, err := d.node(m)
	if err != nil {
		return nil, err
	}
	s, ok := n.(ast.Stmt)
	if !ok {
		return nil, fmt.Errorf("node %T is not valid in a namespace", n)
	}
	return s, nil
}

func (d *decoder) block(m map[string]any) (*ast.Block, error) {
	if m == nil {
		return &ast.Block{}, nil
	}
	stmts := d.objects(m, "Statements")
	out := make([]ast.Node, 0, len(stmts))
	for i, s := range stmts {
		n, err := d.node(s)
		if err != nil {
			return nil, fmt.Errorf("block statement %d: %w", i, err)
		}
		out = append(out, n)
	}
	return &ast.Block{Statements: out}, nil
}

func (d *decoder) maybeExpr(m map[string]any, key string) (ast.Expr, error) {
	obj := d.object(m, key)
	if obj == nil {
		return nil, nil
	}
	return d.expr(obj)
}

func (d *decoder) expr(m map[string]any) (ast.Expr, error) {
	if m == nil {
		return nil, nil
	}
	switch d.typeName(m) {
	case "IntLiteral":
		return &ast.IntLiteral{Text: d.str(m, "Text"), Bits: d.integer(m, "Bits"), Units: d.str(m, "Units")}, nil
	case "NumLiteral":
		return &ast.NumLiteral{Text: d.str(m, "Text"), Bits: d.integer(m, "Bits"), Units: d.str(m, "Units")}, nil
	case "BoolLiteral":
		return &ast.BoolLiteral{Value: d.boolean(m, "Value")}, nil
	case "NoneLiteral":
		return &ast.NoneLiteral{Lang: d.str(m, "Lang")}, nil
	case "TextLiteral":
		chunks := d.objects(m, "Chunks")
		tc := make([]ast.TextChunk, 0, len(chunks))
		for _, c := range chunks {
			tc = append(tc, ast.TextChunk{Text: d.str(c, "Text")})
		}
		interps, err := d.exprList(m, "Interpolations")
		if err != nil {
			return nil, err
		}
		return &ast.TextLiteral{Lang: d.str(m, "Lang"), Chunks: tc, Interpolations: interps}, nil
	case "Var":
		return &ast.Var{Name: d.str(m, "Name")}, nil
	case "ListLiteral":
		items, err := d.exprList(m, "Items")
		if err != nil {
			return nil, err
		}
		itemT, err := d.maybeTypeAst(m, "ItemType")
		if err != nil {
			return nil, err
		}
		return &ast.ListLiteral{ItemType: itemT, Items: items}, nil
	case "SetLiteral":
		items, err := d.exprList(m, "Items")
		if err != nil {
			return nil, err
		}
		itemT, err := d.maybeTypeAst(m, "ItemType")
		if err != nil {
			return nil, err
		}
		return &ast.SetLiteral{ItemType: itemT, Items: items}, nil
	case "BinaryOp":
		lhs, err := d.expr(d.object(m, "LHS"))
		if err != nil {
			return nil, err
		}
		rhs, err := d.expr(d.object(m, "RHS"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Op: ast.BinOp(d.integer(m, "Op")), LHS: lhs, RHS: rhs}, nil
	case "UnaryOp":
		operand, err := d.expr(d.object(m, "Operand"))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: ast.UnOp(d.integer(m, "Op")), Operand: operand}, nil
	case "Block":
		return d.block(m)
	case "If":
		cond, err := d.expr(d.object(m, "Condition"))
		if err != nil {
			return nil, err
		}
		body, err := d.block(d.object(m, "Body"))
		if err != nil {
			return nil, err
		}
		var elseNode ast.Node
		if elseObj := d.object(m, "Else"); elseObj != nil {
			elseNode, err = d.node(elseObj)
			if err != nil {
				return nil, err
			}
		}
		return &ast.If{Condition: cond, Body: body, Else: elseNode}, nil
	case "When":
		subj, err := d.expr(d.object(m, "Subject"))
		if err != nil {
			return nil, err
		}
		clausesRaw := d.objects(m, "Clauses")
		clauses := make([]ast.WhenClause, 0, len(clausesRaw))
		for _, c := range clausesRaw {
			body, err := d.block(d.object(c, "Body"))
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ast.WhenClause{
				Tag:          d.str(c, "Tag"),
				Bindings:     d.strings(c, "Bindings"),
				WholePayload: d.boolean(c, "WholePayload"),
				Body:         body,
			})
		}
		return &ast.When{Subject: subj, Clauses: clauses}, nil
	case "For":
		iterable, err := d.expr(d.object(m, "Iterable"))
		if err != nil {
			return nil, err
		}
		body, err := d.block(d.object(m, "Body"))
		if err != nil {
			return nil, err
		}
		var empty *ast.Block
		if emptyObj := d.object(m, "Empty"); emptyObj != nil {
			empty, err = d.block(emptyObj)
			if err != nil {
				return nil, err
			}
		}
		return &ast.For{
			Vars: d.strings(m, "Vars"), Index: d.boolean(m, "Index"),
			Iterable: iterable, Body: body, Empty: empty,
		}, nil
	case "FunctionCall":
		fn, err := d.expr(d.object(m, "Fn"))
		if err != nil {
			return nil, err
		}
		args, err := d.args(m)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Fn: fn, Args: args}, nil
	case "MethodCall":
		subj, err := d.expr(d.object(m, "Subject"))
		if err != nil {
			return nil, err
		}
		args, err := d.args(m)
		if err != nil {
			return nil, err
		}
		return &ast.MethodCall{Subject: subj, Method: d.str(m, "Method"), Args: args}, nil
	case "FieldAccess":
		subj, err := d.expr(d.object(m, "Subject"))
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{Subject: subj, Field: d.str(m, "Field")}, nil
	case "Index":
		subj, err := d.expr(d.object(m, "Subject"))
		if err != nil {
			return nil, err
		}
		idx, err := d.maybeExpr(m, "Index")
		if err != nil {
			return nil, err
		}
		return &ast.Index{Subject: subj, Index: idx, IsSlice: d.boolean(m, "IsSlice"), Unchecked: d.boolean(m, "Unchecked")}, nil
	case "Lambda":
		params, err := d.params(m)
		if err != nil {
			return nil, err
		}
		body, err := d.block(d.object(m, "Body"))
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Args: params, Body: body}, nil
	case "HeapAllocate":
		v, err := d.expr(d.object(m, "Value"))
		if err != nil {
			return nil, err
		}
		return &ast.HeapAllocate{Value: v}, nil
	case "StackReference":
		v, err := d.expr(d.object(m, "Value"))
		if err != nil {
			return nil, err
		}
		return &ast.StackReference{Value: v}, nil
	case "OptionalExpr":
		v, err := d.expr(d.object(m, "Value"))
		if err != nil {
			return nil, err
		}
		return &ast.OptionalExpr{Value: v}, nil
	case "NonOptionalExpr":
		v, err := d.expr(d.object(m, "Value"))
		if err != nil {
			return nil, err
		}
		return &ast.NonOptionalExpr{Value: v}, nil
	default:
		return nil, fmt.Errorf("unsupported expression node kind %q", d.typeName(m))
	}
}

func (d *decoder) exprList(m map[string]any, key string) ([]ast.Expr, error) {
	raw, _ := m[key].([]any)
	out := make([]ast.Expr, 0, len(raw))
	for i, v := range raw {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not an object", key, i)
		}
		e, err := d.expr(obj)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) args(m map[string]any) ([]ast.Arg, error) {
	raw := d.objects(m, "Args")
	out := make([]ast.Arg, 0, len(raw))
	for _, a := range raw {
		v, err := d.expr(d.object(a, "Value"))
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Arg{Name: d.str(a, "Name"), Value: v})
	}
	return out, nil
}

func (d *decoder) params(m map[string]any) ([]ast.Param, error) {
	raw := d.objects(m, "Args")
	out := make([]ast.Param, 0, len(raw))
	for _, p := range raw {
		t, err := d.maybeTypeAst(p, "Type")
		if err != nil {
			return nil, err
		}
		def, err := d.maybeExpr(p, "Default")
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Param{Name: d.str(p, "Name"), Type: t, Default: def})
	}
	return out, nil
}

func (d *decoder) declare(m map[string]any) (ast.Stmt, error) {
	t, err := d.maybeTypeAst(m, "DeclaredType")
	if err != nil {
		return nil, err
	}
	v, err := d.maybeExpr(m, "Value")
	if err != nil {
		return nil, err
	}
	return &ast.Declare{Name: d.str(m, "Name"), DeclaredType: t, Value: v}, nil
}

func (d *decoder) assign(m map[string]any) (ast.Stmt, error) {
	targets, err := d.exprList(m, "Targets")
	if err != nil {
		return nil, err
	}
	values, err := d.exprList(m, "Values")
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Targets: targets, Values: values}, nil
}

func (d *decoder) functionDef(m map[string]any) (ast.Stmt, error) {
	params, err := d.params(m)
	if err != nil {
		return nil, err
	}
	ret, err := d.maybeTypeAst(m, "Ret")
	if err != nil {
		return nil, err
	}
	body, err := d.block(d.object(m, "Body"))
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{
		Name: d.str(m, "Name"), Args: params, Ret: ret, Body: body,
		IsInline: d.boolean(m, "IsInline"), CacheSize: d.integer(m, "CacheSize"),
	}, nil
}

func (d *decoder) structDef(m map[string]any) (ast.Stmt, error) {
	fieldsRaw := d.objects(m, "Fields")
	fields := make([]ast.StructField, 0, len(fieldsRaw))
	for _, f := range fieldsRaw {
		t, err := d.typeAst(d.object(f, "Type"))
		if err != nil {
			return nil, err
		}
		def, err := d.maybeExpr(f, "Default")
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructField{Name: d.str(f, "Name"), Type: t, Default: def, Secret: d.boolean(f, "Secret")})
	}
	ns, err := d.namespace(m)
	if err != nil {
		return nil, err
	}
	return &ast.StructDef{
		Name: d.str(m, "Name"), Fields: fields, Namespace: ns,
		External: d.boolean(m, "External"), Secret: d.boolean(m, "Secret"),
	}, nil
}

func (d *decoder) enumDef(m map[string]any) (ast.Stmt, error) {
	tagsRaw := d.objects(m, "Tags")
	tags := make([]ast.EnumTagDef, 0, len(tagsRaw))
	for _, tg := range tagsRaw {
		fieldsRaw := d.objects(tg, "Fields")
		fields := make([]ast.EnumField, 0, len(fieldsRaw))
		for _, f := range fieldsRaw {
			t, err := d.typeAst(d.object(f, "Type"))
			if err != nil {
				return nil, err
			}
			def, err := d.maybeExpr(f, "Default")
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.EnumField{Name: d.str(f, "Name"), Type: t, Default: def})
		}
		tags = append(tags, ast.EnumTagDef{Name: d.str(tg, "Name"), Fields: fields})
	}
	ns, err := d.namespace(m)
	if err != nil {
		return nil, err
	}
	return &ast.EnumDef{Name: d.str(m, "Name"), Tags: tags, Namespace: ns}, nil
}

func (d *decoder) namespace(m map[string]any) ([]ast.Stmt, error) {
	raw := d.objects(m, "Namespace")
	out := make([]ast.Stmt, 0, len(raw))
	for i, s := range raw {
		st, err := d.stmt(s)
		if err != nil {
			return nil, fmt.Errorf("namespace member %d: %w", i, err)
		}
		out = append(out, st)
	}
	return out, nil
}

func (d *decoder) maybeTypeAst(m map[string]any, key string) (ast.TypeAst, error) {
	obj := d.object(m, key)
	if obj == nil {
		return nil, nil
	}
	return d.typeAst(obj)
}

func (d *decoder) typeAst(m map[string]any) (ast.TypeAst, error) {
	if m == nil {
		return nil, nil
	}
	switch d.typeName(m) {
	case "VarType":
		return &ast.VarType{Path: d.strings(m, "Path")}, nil
	case "PointerType":
		pointed, err := d.typeAst(d.object(m, "Pointed"))
		if err != nil {
			return nil, err
		}
		return &ast.PointerType{Pointed: pointed, IsStack: d.boolean(m, "IsStack")}, nil
	case "ListType":
		item, err := d.typeAst(d.object(m, "Item"))
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Item: item}, nil
	case "SetType":
		item, err := d.typeAst(d.object(m, "Item"))
		if err != nil {
			return nil, err
		}
		return &ast.SetType{Item: item}, nil
	case "TableType":
		key, err := d.typeAst(d.object(m, "Key"))
		if err != nil {
			return nil, err
		}
		val, err := d.typeAst(d.object(m, "Value"))
		if err != nil {
			return nil, err
		}
		def, err := d.maybeTypeAst(m, "Default")
		if err != nil {
			return nil, err
		}
		return &ast.TableType{Key: key, Value: val, Default: def}, nil
	case "FunctionType":
		argTypesRaw := d.objects(m, "ArgTypes")
		argTypes := make([]ast.TypeAst, 0, len(argTypesRaw))
		for _, t := range argTypesRaw {
			at, err := d.typeAst(t)
			if err != nil {
				return nil, err
			}
			argTypes = append(argTypes, at)
		}
		ret, err := d.typeAst(d.object(m, "Ret"))
		if err != nil {
			return nil, err
		}
		return &ast.FunctionType{ArgNames: d.strings(m, "ArgNames"), ArgTypes: argTypes, Ret: ret}, nil
	case "OptionalType":
		inner, err := d.typeAst(d.object(m, "Inner"))
		if err != nil {
			return nil, err
		}
		return &ast.OptionalType{Inner: inner}, nil
	case "UnknownType":
		return &ast.UnknownType{}, nil
	default:
		return nil, fmt.Errorf("unsupported type node kind %q", d.typeName(m))
	}
}
