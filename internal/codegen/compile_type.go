// Package codegen implements the compiler core's AST-to-C code generator
// (component E, spec.md §4.5): compile_type/compile_type_info, expression
// and statement compilation, promotion, closure capture, When compilation,
// reductions, and CLI argument dispatch.
package codegen

import (
	"fmt"

	"github.com/sunholo/ailang/internal/runtimeabi"
	"github.com/sunholo/ailang/internal/types"
)

// CompileType yields the C type spelling for t, matching the runtime
// library's naming conventions (§4.5.1).
func CompileType(t types.Type) string {
	switch x := t.(type) {
	case types.Void:
		return "void"
	case types.Abort:
		return "void"
	case types.Memory:
		return "void *"
	case types.Bool:
		return "Bool_t"
	case types.Byte:
		return "Byte_t"
	case types.CString:
		return "char *"
	case types.BigInt:
		return "Int_t"
	case *types.Int:
		return fmt.Sprintf("Int%d_t", x.Bits)
	case *types.Num:
		if x.Bits == 64 {
			return "Num_t"
		}
		return fmt.Sprintf("Num%d_t", x.Bits)
	case *types.Text:
		return "Text_t"
	case *types.List:
		return "List_t"
	case *types.Set:
		return "Table_t"
	case *types.Table:
		return "Table_t"
	case *types.Pointer:
		return CompileType(x.Pointed) + " *"
	case *types.Function:
		return compileFunctionPointerType(x)
	case *types.Closure:
		return "Closure_t"
	case *types.TypeInfo:
		return "TypeInfo_t"
	case *types.Module:
		return "void *"
	case *types.Optional:
		return compileOptionalType(x)
	case *types.Struct:
		if x.External {
			return x.Name + "_t"
		}
		return "struct " + runtimeabi.StructTag(x.Name)
	case *types.Enum:
		if !types.EnumHasFields(x) {
			return "enum " + x.Name + "$tag_e"
		}
		return x.Name + "_t"
	case *types.Return:
		return CompileType(x.Inner)
	default:
		return "void *"
	}
}

func compileFunctionPointerType(fn *types.Function) string {
	args := ""
	for i, a := range fn.Args {
		if i > 0 {
			args += ", "
		}
		args += CompileType(a.Type)
	}
	return fmt.Sprintf("%s (*)(%s)", CompileType(fn.Ret), args)
}

// compileOptionalType mirrors compile_type's Optional case: zero-cost
// representations share the inner C type; otherwise a named wrapper struct
// is used.
func compileOptionalType(o *types.Optional) string {
	if o.Inner == nil {
		return "void *" // incomplete Optional, only ever appears transiently
	}
	if isZeroCostOptionalRepr(o.Inner) {
		return CompileType(o.Inner)
	}
	return runtimeabi.OptionalWrapperType(capitalizedTypeName(o.Inner))
}

func isZeroCostOptionalRepr(inner types.Type) bool {
	switch x := inner.(type) {
	case types.CString, *types.Function, *types.Closure, *types.Pointer, *types.Enum:
		return true
	case *types.Text:
		return x.Lang != "" && x.Lang != "Text"
	default:
		return false
	}
}

func capitalizedTypeName(t types.Type) string {
	switch x := t.(type) {
	case *types.Int:
		return fmt.Sprintf("Int%d", x.Bits)
	case *types.Num:
		if x.Bits == 64 {
			return "Num"
		}
		return fmt.Sprintf("Num%d", x.Bits)
	case types.Bool:
		return "Bool"
	case types.Byte:
		return "Byte"
	case *types.Struct:
		return x.Name
	default:
		return t.String()
	}
}

// CompileTypeInfo yields the C expression for the runtime TypeInfo_t
// descriptor of t, used by generic runtime functions (generic_equal,
// generic_as_text, generic_serialize, ...) that dispatch dynamically.
func CompileTypeInfo(t types.Type) string {
	switch x := t.(type) {
	case *types.Int:
		return fmt.Sprintf("&Int%d$info", x.Bits)
	case *types.Num:
		if x.Bits == 64 {
			return "&Num$info"
		}
		return fmt.Sprintf("&Num%d$info", x.Bits)
	case types.Bool:
		return "&Bool$info"
	case types.Byte:
		return "&Byte$info"
	case types.BigInt:
		return "&Int$info"
	case *types.Text:
		if x.Lang != "" && x.Lang != "Text" {
			return "&" + x.Lang + "$info"
		}
		return "&Text$info"
	case *types.List:
		return fmt.Sprintf("List$info(%s)", CompileTypeInfo(x.Item))
	case *types.Set:
		return fmt.Sprintf("Set$info(%s)", CompileTypeInfo(x.Item))
	case *types.Table:
		return fmt.Sprintf("Table$info(%s, %s)", CompileTypeInfo(x.Key), CompileTypeInfo(x.Value))
	case *types.Pointer:
		return fmt.Sprintf("Pointer$info(%q, %s)", CompileType(x.Pointed), CompileTypeInfo(x.Pointed))
	case *types.Optional:
		if x.Inner == nil {
			return "&Void$info"
		}
		return fmt.Sprintf("Optional$info(%s)", CompileTypeInfo(x.Inner))
	case *types.Struct:
		return runtimeabi.TypeInfoSymbol(x.Name)
	case *types.Enum:
		return runtimeabi.TypeInfoSymbol(x.Name)
	default:
		return "&Void$info"
	}
}
