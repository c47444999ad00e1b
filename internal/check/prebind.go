package check

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diagnostics"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// PrebindStatement installs an opaque placeholder type (and a TypeInfo
// binding) for each top-level definition, enabling mutually-recursive
// definitions (§4.4.4). Field/tag contents are left empty until
// BindStatement fills them in.
func PrebindStatement(e *env.Env, stmt ast.Node) {
	switch x := stmt.(type) {
	case *ast.StructDef:
		placeholder := &types.Struct{Name: x.Name, Opaque: true, External: x.External, Secret: x.Secret}
		e.DefineType(x.Name, placeholder)
		e.RegisterNamespaceBinding(placeholder, "$typeinfo", env.Binding{
			Type: &types.TypeInfo{Name: x.Name, Type: placeholder},
		})
		nsEnv := e.NamespaceEnv("struct:" + x.Name)
		for _, inner := range x.Namespace {
			PrebindStatement(nsEnv, inner)
		}

	case *ast.EnumDef:
		placeholder := &types.Enum{Name: x.Name, Opaque: true}
		e.DefineType(x.Name, placeholder)
		e.RegisterNamespaceBinding(placeholder, "$typeinfo", env.Binding{
			Type: &types.TypeInfo{Name: x.Name, Type: placeholder},
		})
		nsEnv := e.NamespaceEnv("enum:" + x.Name)
		for _, inner := range x.Namespace {
			PrebindStatement(nsEnv, inner)
		}

	case *ast.LangDef:
		placeholder := &types.Text{Lang: x.Name}
		e.DefineType(x.Name, placeholder)
		nsEnv := e.NamespaceEnv("lang:" + x.Name)
		for _, inner := range x.Namespace {
			PrebindStatement(nsEnv, inner)
		}

	case *ast.FunctionDef:
		// Functions get no placeholder here; their signature is bound in
		// BindStatement.
	}
}

// BindStatement fills in the fields/tags left empty by PrebindStatement,
// validates that no field produces an infinitely-sized value (permitting
// recursion only through a Pointer), and registers convert-defs as
// constructors on the target type's namespace (§4.4.4).
func BindStatement(e *env.Env, stmt ast.Node) {
	switch x := stmt.(type) {
	case *ast.StructDef:
		t, _ := e.GetType(x.Name)
		s := t.(*types.Struct)
		fields := make([]types.StructField, len(x.Fields))
		for i, f := range x.Fields {
			ft := ParseTypeAst(e, f.Type)
			if recursesWithoutIndirection(ft, x.Name) {
				diagnostics.ReportError(diagnostics.TYP004ConstraintViolation, "typecheck", x.Span(),
					"field '"+f.Name+"' of "+x.Name+" recurses without a pointer indirection")
			}
			fields[i] = types.StructField{Name: f.Name, Type: ft, Default: f.Default}
		}
		s.Fields = fields
		s.Opaque = false

		nsEnv := e.NamespaceEnv("struct:" + x.Name)
		bodyEnv := nsEnv.WithCurrentType(s)
		for _, inner := range x.Namespace {
			bindNamespaceMember(bodyEnv, s, inner)
		}

	case *ast.EnumDef:
		t, _ := e.GetType(x.Name)
		en := t.(*types.Enum)
		tags := make([]types.EnumTag, len(x.Tags))
		for i, tag := range x.Tags {
			var payload *types.Struct
			if len(tag.Fields) > 0 {
				fields := make([]types.StructField, len(tag.Fields))
				for j, f := range tag.Fields {
					fields[j] = types.StructField{Name: f.Name, Type: ParseTypeAst(e, f.Type), Default: f.Default}
				}
				payload = &types.Struct{Name: x.Name + "." + tag.Name, Fields: fields}
			}
			tags[i] = types.EnumTag{Name: tag.Name, Value: int64(i), Payload: payload}
		}
		en.Tags = tags
		en.Opaque = false

		nsEnv := e.NamespaceEnv("enum:" + x.Name)
		bodyEnv := nsEnv.WithCurrentType(en)
		for _, inner := range x.Namespace {
			bindNamespaceMember(bodyEnv, en, inner)
		}

	case *ast.LangDef:
		nsEnv := e.NamespaceEnv("lang:" + x.Name)
		for _, inner := range x.Namespace {
			bindNamespaceMember(nsEnv, &types.Text{Lang: x.Name}, inner)
		}

	case *ast.Extend:
		target := ParseTypeAst(e, x.TargetType)
		for _, inner := range x.Namespace {
			bindNamespaceMember(e, target, inner)
		}

	case *ast.FunctionDef:
		bindFunctionDef(e, x)
	}
}

func bindNamespaceMember(e *env.Env, target types.Type, stmt ast.Node) {
	switch x := stmt.(type) {
	case *ast.FunctionDef:
		fn := bindFunctionDef(e, x)
		e.RegisterNamespaceBinding(target, x.Name, env.Binding{Type: fn})
	case *ast.ConvertDef:
		args := make([]types.FuncArg, len(x.Args))
		for i, p := range x.Args {
			args[i] = types.FuncArg{Name: p.Name, Type: ParseTypeAst(e, p.Type)}
		}
		ret := ParseTypeAst(e, x.Ret)
		fn := &types.Function{Args: args, Ret: ret}
		// convert-defs register as constructors on the target *return* type's
		// namespace, not the enclosing type (§4.4.4 "registers convert-defs
		// as constructors on the target type's namespace").
		targetNS := e.NamespaceEnv(namespaceKeyFor(ret))
		targetNS.AddConstructor(target.String(), env.Binding{Type: fn})
	case *ast.StructDef, *ast.EnumDef, *ast.LangDef:
		PrebindStatement(e, stmt)
		BindStatement(e, stmt)
	}
}

func namespaceKeyFor(t types.Type) string {
	switch x := t.(type) {
	case *types.Struct:
		return "struct:" + x.Name
	case *types.Enum:
		return "enum:" + x.Name
	default:
		return "prim:" + t.String()
	}
}

func bindFunctionDef(e *env.Env, x *ast.FunctionDef) *types.Function {
	args := make([]types.FuncArg, len(x.Args))
	scope := e.FreshScope()
	for i, p := range x.Args {
		t := ParseTypeAst(e, p.Type)
		args[i] = types.FuncArg{Name: p.Name, Type: t, Default: p.Default}
		scope = scope.WithBinding(p.Name, env.Binding{Type: t})
	}
	var ret types.Type
	if x.Ret != nil {
		ret = ParseTypeAst(e, x.Ret)
		scope = scope.WithFuncReturn(ret)
		bodyT := GetType(scope, x.Body)
		if !types.Eq(bodyT, ret) && !types.CanPromote(bodyT, ret) {
			diagnostics.ReportError(diagnostics.TYP002TypeMismatch, "typecheck", x.Span(),
				"function '"+x.Name+"' body type does not match its declared return type")
		}
	} else {
		bodyT := GetType(scope, x.Body)
		if r, ok := bodyT.(*types.Return); ok {
			bodyT = r.Inner
		}
		ret = bodyT
	}
	fn := &types.Function{Args: args, Ret: ret}
	e.DefineBinding(x.Name, env.Binding{Type: fn})
	return fn
}

// recursesWithoutIndirection reports whether ft, a struct field's type,
// would make typeName an infinitely-sized value (i.e. typeName appears
// inside ft without passing through a Pointer first).
func recursesWithoutIndirection(ft types.Type, typeName string) bool {
	switch x := ft.(type) {
	case *types.Struct:
		return x.Name == typeName
	case *types.List:
		return recursesWithoutIndirection(x.Item, typeName)
	case *types.Set:
		return recursesWithoutIndirection(x.Item, typeName)
	case *types.Table:
		return recursesWithoutIndirection(x.Key, typeName) || recursesWithoutIndirection(x.Value, typeName)
	case *types.Optional:
		return x.Inner != nil && recursesWithoutIndirection(x.Inner, typeName)
	default:
		return false
	}
}
