package codegen

import (
	"fmt"

	"github.com/sunholo/ailang/internal/types"
)

// Promote tries, in the order described by §4.5.4, to coerce code (a
// compiled C expression of type actual) to needed, returning the coerced
// code and whether promotion succeeded. It is the code-generation
// counterpart to types.CanPromote, which only answers the predicate.
func Promote(code string, actual, needed types.Type) (string, bool) {
	if types.Eq(actual, needed) {
		return code, true
	}
	if merged, ok := types.MostCompleteType(actual, needed); ok && types.Eq(merged, needed) {
		return code, true
	}

	if fn, ok := actual.(*types.Function); ok {
		if cl, ok := needed.(*types.Closure); ok && fn.Equals(cl.Fn) {
			return fmt.Sprintf("(Closure_t){.fn=%s, .userdata=NULL}", code), true
		}
	}

	if _, ok := needed.(*types.Optional); ok {
		if optNeeded, ok := needed.(*types.Optional); ok && optNeeded.Inner != nil {
			if inner, ok := Promote(code, actual, optNeeded.Inner); ok {
				if isZeroCostOptionalRepr(optNeeded.Inner) {
					return inner, true
				}
				return fmt.Sprintf("(%s){.has_value=yes, .value=%s}", CompileType(needed), inner), true
			}
		}
	}

	if _, ok := actual.(*types.Optional); ok {
		if _, ok := needed.(types.Bool); ok {
			return optionalHasValueExpr(code, actual), true
		}
	}

	if actualText, ok := actual.(*types.Text); ok {
		if neededText, ok := needed.(*types.Text); ok {
			if (neededText.Lang == "" || neededText.Lang == "Text") && actualText.Lang != "" && actualText.Lang != "Text" {
				return fmt.Sprintf("(Text_t)(%s)", code), true
			}
		}
	}

	if ptr, ok := actual.(*types.Pointer); ok {
		if inner, ok := Promote(fmt.Sprintf("(*%s)", code), ptr.Pointed, needed); ok {
			return inner, true
		}
	}

	if _, ok := actual.(*types.Int); ok {
		if toNum, ok := needed.(*types.Num); ok {
			return fmt.Sprintf("((%s)(%s))", CompileType(toNum), code), true
		}
	}
	if fromI, ok := actual.(*types.Int); ok {
		if toI, ok := needed.(*types.Int); ok && fromI.Bits < toI.Bits {
			return fmt.Sprintf("((%s)(%s))", CompileType(toI), code), true
		}
	}
	if fromN, ok := actual.(*types.Num); ok {
		if toN, ok := needed.(*types.Num); ok && fromN.Bits < toN.Bits {
			return fmt.Sprintf("((%s)(%s))", CompileType(toN), code), true
		}
	}
	if _, ok := actual.(*types.Int); ok {
		if _, ok := needed.(types.BigInt); ok {
			return fmt.Sprintf("Int$from_int64(%s)", code), true
		}
	}

	if enumT, ok := needed.(*types.Enum); ok {
		if tag, ok := singleValueTag(enumT, actual); ok {
			if inner, ok := Promote(code, actual, tag.Payload.Fields[0].Type); ok {
				return fmt.Sprintf("(%s){.tag=%s$tag_%s, .%s=%s}", CompileType(needed), enumT.Name, tag.Name,
					tag.Payload.Fields[0].Name, inner), true
			}
		}
	}

	return code, false
}

func optionalHasValueExpr(code string, actual types.Type) string {
	opt := actual.(*types.Optional)
	if opt.Inner != nil && isZeroCostOptionalRepr(opt.Inner) {
		return fmt.Sprintf("(%s != NULL)", code)
	}
	return fmt.Sprintf("(%s).has_value", code)
}

func singleValueTag(e *types.Enum, from types.Type) (types.EnumTag, bool) {
	var found types.EnumTag
	count := 0
	for _, tag := range e.Tags {
		if tag.Payload != nil && len(tag.Payload.Fields) == 1 && types.CanPromote(from, tag.Payload.Fields[0].Type) {
			found = tag
			count++
		}
	}
	return found, count == 1
}

// CompileToType compiles ast-typed code to exactly `needed`: it uses Promote
// when a promotion rule applies and otherwise always falls back to the
// runtime's generic serialize/deserialize bridge, without comparing the two
// types' representations, mirroring compile_to_type's final fallback.
func CompileToType(code string, actual, needed types.Type) string {
	if promoted, ok := Promote(code, actual, needed); ok {
		return promoted
	}
	return fmt.Sprintf("generic_deserialize(generic_serialize(%s, %s), %s)",
		code, CompileTypeInfo(actual), CompileTypeInfo(needed))
}
