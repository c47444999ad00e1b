package types

// TypeSize and TypeAlign report the size and alignment the emitted C type
// will have, matching the runtime library's ABI (§6.3). The exact runtime
// struct layouts (Text_t's short-string optimization, List_t's field order)
// are an external fixed surface the spec does not define; the constants
// below follow the conventional word-sized layout a freestanding C runtime
// of this shape uses, and are documented approximations where the spec is
// silent (see DESIGN.md).
func TypeSize(t Type) int {
	switch x := t.(type) {
	case Void, Abort, Memory:
		return 0
	case Bool, Byte:
		return 1
	case CString:
		return 8
	case BigInt:
		return 8
	case *Int:
		return x.Bits / 8
	case *Num:
		return x.Bits / 8
	case *Text:
		return 8
	case *List:
		return 24 // {data*, length, stride/free-list}
	case *Set:
		return 32 // backed by Table_t
	case *Table:
		return 32
	case *Pointer:
		return 8
	case *Function:
		return 8
	case *Closure:
		return 16 // {fn*, userdata*}
	case *TypeInfo:
		return 8
	case *Module:
		return 0
	case *Optional:
		return optionalSize(x)
	case *Struct:
		return structSize(x)
	case *Enum:
		return enumSize(x)
	case *Return:
		return TypeSize(x.Inner)
	default:
		return 8
	}
}

func TypeAlign(t Type) int {
	switch x := t.(type) {
	case Void, Abort, Memory:
		return 1
	case Bool, Byte:
		return 1
	case *Int:
		return minInt(x.Bits/8, 8)
	case *Num:
		return x.Bits / 8
	case *List, *Set, *Table, CString, *Pointer, *Function, *Closure, *TypeInfo, BigInt, *Text:
		return 8
	case *Module:
		return 1
	case *Optional:
		return TypeAlign(x.Inner)
	case *Struct:
		return structAlign(x)
	case *Enum:
		return enumAlign(x)
	case *Return:
		return TypeAlign(x.Inner)
	default:
		return 8
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func alignUp(offset, align int) int {
	if align <= 1 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}

func structSize(s *Struct) int {
	offset := 0
	align := 1
	for _, f := range s.Fields {
		fa := TypeAlign(f.Type)
		if fa > align {
			align = fa
		}
		offset = alignUp(offset, fa) + TypeSize(f.Type)
	}
	return alignUp(offset, align)
}

func structAlign(s *Struct) int {
	align := 1
	for _, f := range s.Fields {
		if fa := TypeAlign(f.Type); fa > align {
			align = fa
		}
	}
	return align
}

// isZeroCostOptional reports whether Optional(t) shares representation
// with t itself (a sentinel value stands in for `none`) rather than needing
// a separate {has_value, value} wrapper — mirrors compile_type's Optional
// case in original_source/src/compile/types.c.
func isZeroCostOptional(inner Type) bool {
	switch x := inner.(type) {
	case CString, *Function, *Closure, *Pointer, *Enum:
		return true
	case *Text:
		return x.effectiveLang() != "Text"
	default:
		return false
	}
}

func optionalSize(o *Optional) int {
	if o.Inner == nil {
		return 1
	}
	if isZeroCostOptional(o.Inner) {
		return TypeSize(o.Inner)
	}
	size := TypeSize(o.Inner) + 1
	return alignUp(size, TypeAlign(o.Inner))
}

func enumSize(e *Enum) int {
	if !EnumHasFields(e) {
		return 4
	}
	maxPayload := 0
	align := 4
	for _, tag := range e.Tags {
		if tag.Payload == nil {
			continue
		}
		if s := structSize(tag.Payload); s > maxPayload {
			maxPayload = s
		}
		if a := structAlign(tag.Payload); a > align {
			align = a
		}
	}
	return alignUp(alignUp(4, align)+maxPayload, align)
}

func enumAlign(e *Enum) int {
	align := 4
	for _, tag := range e.Tags {
		if tag.Payload == nil {
			continue
		}
		if a := structAlign(tag.Payload); a > align {
			align = a
		}
	}
	return align
}
