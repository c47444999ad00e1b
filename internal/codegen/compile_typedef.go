package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/runtimeabi"
	"github.com/sunholo/ailang/internal/types"
)

// CompileTypeDef emits the C typedef/forward-declaration text for a
// StructDef/EnumDef/LangDef (§6.2 "typedefs for structs/enums/langs" in the
// generated header). Binding (field/tag resolution) has already happened
// during the type-checking pass; this only renders what's already in e.
func CompileTypeDef(e *env.Env, n ast.Node) string {
	switch x := n.(type) {
	case *ast.StructDef:
		t, _ := e.GetType(x.Name)
		return compileStructTypedef(t.(*types.Struct))
	case *ast.EnumDef:
		t, _ := e.GetType(x.Name)
		return compileEnumTypedef(t.(*types.Enum))
	case *ast.LangDef:
		return fmt.Sprintf("typedef Text_t %s_t;", x.Name)
	case *ast.Extend:
		return "" // adds no new type, only namespace members
	default:
		return ""
	}
}

func compileStructTypedef(s *types.Struct) string {
	if s.External {
		return "" // defined outside this compile
	}
	fields := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = fmt.Sprintf("%s %s;", CompileType(f.Type), f.Name)
	}
	return fmt.Sprintf("struct %s { %s };\ntypedef struct %s %s_t;",
		runtimeabi.StructTag(s.Name), strings.Join(fields, " "), runtimeabi.StructTag(s.Name), s.Name)
}

func compileEnumTypedef(en *types.Enum) string {
	tagNames := make([]string, len(en.Tags))
	for i, tag := range en.Tags {
		tagNames[i] = fmt.Sprintf("%s$tag_%s", en.Name, tag.Name)
	}
	tagEnum := fmt.Sprintf("typedef enum { %s } %s$tag_e;", strings.Join(tagNames, ", "), en.Name)
	if !types.EnumHasFields(en) {
		return tagEnum
	}
	var b strings.Builder
	b.WriteString(tagEnum)
	b.WriteString("\ntypedef struct { ")
	b.WriteString(fmt.Sprintf("%s$tag_e tag; union { ", en.Name))
	for _, tag := range en.Tags {
		if tag.Payload == nil {
			continue
		}
		fields := make([]string, len(tag.Payload.Fields))
		for i, f := range tag.Payload.Fields {
			fields[i] = fmt.Sprintf("%s %s;", CompileType(f.Type), f.Name)
		}
		b.WriteString(fmt.Sprintf("struct { %s } %s; ", strings.Join(fields, " "), tag.Name))
	}
	b.WriteString(fmt.Sprintf("}; } %s_t;", en.Name))
	return b.String()
}
