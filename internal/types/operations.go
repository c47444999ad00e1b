package types

// Precision is the partial order compare_precision (§4.1) returns when
// comparing the numeric range of two types.
type Precision int

const (
	Incomparable Precision = iota
	Less
	Equal
	More
)

// ValueType strips one layer of Pointer, matching the original's
// value_type(t): used when an lvalue's "value" type is needed regardless of
// whether it was reached through a pointer.
func ValueType(t Type) Type {
	if p, ok := t.(*Pointer); ok {
		return p.Pointed
	}
	return t
}

// NonOptional strips Optional if present.
func NonOptional(t Type) Type {
	if o, ok := t.(*Optional); ok && o.Inner != nil {
		return o.Inner
	}
	if o, ok := t.(*Optional); ok {
		return o // incomplete optional has no inner to strip to
	}
	return t
}

// IsNumeric reports whether t is BigInt, a fixed-width Int, or a Num.
func IsNumeric(t Type) bool {
	switch t.(type) {
	case BigInt, *Int, *Num:
		return true
	default:
		return false
	}
}

// IsIntType reports whether t is BigInt or a fixed-width Int.
func IsIntType(t Type) bool {
	switch t.(type) {
	case BigInt, *Int:
		return true
	default:
		return false
	}
}

// IsIncompleteType reports whether t (or anything structurally reachable
// from it) contains an Optional with no inner type — i.e. it came from a
// `none` literal whose type has not yet been resolved from context.
func IsIncompleteType(t Type) bool {
	switch x := t.(type) {
	case *Optional:
		if x.Inner == nil {
			return true
		}
		return IsIncompleteType(x.Inner)
	case *List:
		return IsIncompleteType(x.Item)
	case *Set:
		return IsIncompleteType(x.Item)
	case *Table:
		return IsIncompleteType(x.Key) || IsIncompleteType(x.Value)
	case *Function:
		if IsIncompleteType(x.Ret) {
			return true
		}
		for _, a := range x.Args {
			if IsIncompleteType(a.Type) {
				return true
			}
		}
		return false
	case *Pointer:
		return IsIncompleteType(x.Pointed)
	default:
		return false
	}
}

// MostCompleteType unifies two candidate types where one may be incomplete
// (carrying an unresolved `none`). It returns (nil, false) when the two
// types are structurally incompatible outside of incompleteness — it does
// NOT perform general promotion (List(Int) vs List(Num) is incompatible
// here even though Int promotes to Num in other contexts; see §8 property 4).
func MostCompleteType(a, b Type) (Type, bool) {
	if a == nil {
		return b, b != nil
	}
	if b == nil {
		return a, true
	}
	if Eq(a, b) {
		return a, true
	}
	switch x := a.(type) {
	case *Optional:
		y, ok := b.(*Optional)
		if !ok {
			return nil, false
		}
		if x.Inner == nil {
			return y, true
		}
		if y.Inner == nil {
			return x, true
		}
		inner, ok := MostCompleteType(x.Inner, y.Inner)
		if !ok {
			return nil, false
		}
		return &Optional{Inner: inner}, true
	case *List:
		y, ok := b.(*List)
		if !ok {
			return nil, false
		}
		item, ok := MostCompleteType(x.Item, y.Item)
		if !ok {
			return nil, false
		}
		return &List{Item: item}, true
	case *Set:
		y, ok := b.(*Set)
		if !ok {
			return nil, false
		}
		item, ok := MostCompleteType(x.Item, y.Item)
		if !ok {
			return nil, false
		}
		return &Set{Item: item}, true
	case *Table:
		y, ok := b.(*Table)
		if !ok {
			return nil, false
		}
		key, ok := MostCompleteType(x.Key, y.Key)
		if !ok {
			return nil, false
		}
		val, ok := MostCompleteType(x.Value, y.Value)
		if !ok {
			return nil, false
		}
		return &Table{Key: key, Value: val, Default: x.Default, NS: x.NS}, true
	default:
		return nil, false
	}
}

// ComparePrecision orders the numeric range of two types. Same-kind
// comparisons (Int-Int, Num-Num) compare bit width directly; a fixed-width
// Int is Less than any Num and than BigInt, whatever the widths; BigInt is
// More than a fixed-width Int, Equal to BigInt and Less than any Num;
// anything else is Incomparable.
func ComparePrecision(a, b Type) Precision {
	switch x := a.(type) {
	case *Int:
		switch y := b.(type) {
		case *Int:
			return precisionFromCmp(x.Bits, y.Bits)
		case *Num:
			return Less
		case BigInt:
			return Less
		}
	case *Num:
		switch y := b.(type) {
		case *Num:
			return precisionFromCmp(x.Bits, y.Bits)
		case *Int:
			return More
		case BigInt:
			return More
		}
	case BigInt:
		switch b.(type) {
		case *Int:
			return More
		case BigInt:
			return Equal
		case *Num:
			return Less
		}
	}
	return Incomparable
}

func precisionFromCmp(a, b int) Precision {
	switch {
	case a < b:
		return Less
	case a > b:
		return More
	default:
		return Equal
	}
}

// CanPromote reports whether a value of type `from` can be implicitly
// coerced to type `to` at an assignment, call, or return boundary. This is
// the pure predicate; package codegen's promote() additionally produces the
// C code for the coercion (§4.5.4).
func CanPromote(from, to Type) bool {
	if Eq(from, to) {
		return true
	}
	switch f := from.(type) {
	case *Int:
		if t, ok := to.(*Int); ok {
			return f.Bits < t.Bits
		}
		if _, ok := to.(*Num); ok {
			return true
		}
		if _, ok := to.(BigInt); ok {
			return true
		}
	case *Num:
		if t, ok := to.(*Num); ok {
			return f.Bits < t.Bits
		}
	case BigInt:
		// widening from arbitrary precision to a fixed type is never implicit
	case *Function:
		if t, ok := to.(*Closure); ok {
			return f.Equals(t.Fn)
		}
	case *Pointer:
		if t, ok := to.(*Pointer); ok {
			return f.IsStack == t.IsStack && CanPromote(f.Pointed, t.Pointed)
		}
		// automatic dereference
		return CanPromote(f.Pointed, to)
	}

	if t, ok := to.(*Optional); ok && t.Inner != nil && CanPromote(from, t.Inner) {
		return true
	}
	if _, ok := from.(*Optional); ok {
		if _, ok := to.(Bool); ok {
			return true
		}
	}
	if ft, ok := from.(*Text); ok {
		if tt, ok := to.(*Text); ok && tt.effectiveLang() == "Text" {
			return ft.effectiveLang() != "Text"
		}
	}
	if _, ok := to.(*Table); ok {
		if _, ok := from.(*Table); ok {
			return true
		}
	}
	if _, ok := to.(*Closure); ok {
		if _, ok := from.(*Closure); ok {
			return true
		}
	}
	if ft, ok := from.(*Function); ok {
		if tt, ok := to.(*Function); ok {
			return ft.Equals(tt)
		}
	}
	if e, ok := to.(*Enum); ok {
		if tag, ok := enumSingleValueTag(e, from); ok {
			return CanPromote(from, tag.Payload.Fields[0].Type)
		}
	}
	return false
}

// enumSingleValueTag finds the unique tag whose payload is exactly one field
// matching `from`, enabling "single-value enum" construction (§4.5.4 item 10).
func enumSingleValueTag(e *Enum, from Type) (EnumTag, bool) {
	var found EnumTag
	count := 0
	for _, tag := range e.Tags {
		if tag.Payload != nil && len(tag.Payload.Fields) == 1 && CanPromote(from, tag.Payload.Fields[0].Type) {
			found = tag
			count++
		}
	}
	return found, count == 1
}

// TypeOrType computes the least common supertype of a and b under the
// promotion lattice, or (nil, false) when they are incompatible.
func TypeOrType(a, b Type) (Type, bool) {
	if Eq(a, b) {
		return a, true
	}
	if CanPromote(a, b) {
		return b, true
	}
	if CanPromote(b, a) {
		return a, true
	}
	return MostCompleteType(a, b)
}

// HasStackMemory transitively checks for any Pointer{IsStack: true}.
func HasStackMemory(t Type) bool {
	return hasStackMemory(t, map[string]bool{})
}

func hasStackMemory(t Type, visiting map[string]bool) bool {
	switch x := t.(type) {
	case *Pointer:
		return x.IsStack || hasStackMemory(x.Pointed, visiting)
	case *List:
		return hasStackMemory(x.Item, visiting)
	case *Set:
		return hasStackMemory(x.Item, visiting)
	case *Table:
		return hasStackMemory(x.Key, visiting) || hasStackMemory(x.Value, visiting)
	case *Optional:
		return x.Inner != nil && hasStackMemory(x.Inner, visiting)
	case *Struct:
		key := "struct:" + x.Name
		if visiting[key] {
			return false
		}
		visiting[key] = true
		for _, f := range x.Fields {
			if hasStackMemory(f.Type, visiting) {
				return true
			}
		}
		return false
	case *Enum:
		key := "enum:" + x.Name
		if visiting[key] {
			return false
		}
		visiting[key] = true
		for _, tag := range x.Tags {
			if tag.Payload != nil && hasStackMemory(tag.Payload, visiting) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HasHeapMemory transitively checks for any Pointer{IsStack: false}, used to
// decide whether a global's initializer must run at module-init time rather
// than as a static C initializer.
func HasHeapMemory(t Type) bool {
	return hasHeapMemory(t, map[string]bool{})
}

func hasHeapMemory(t Type, visiting map[string]bool) bool {
	switch x := t.(type) {
	case *Pointer:
		return !x.IsStack || hasHeapMemory(x.Pointed, visiting)
	case *List:
		return true // Lists always own heap-allocated backing storage
	case *Set:
		return true
	case *Table:
		return true
	case *Text:
		return false
	case *Optional:
		return x.Inner != nil && hasHeapMemory(x.Inner, visiting)
	case *Struct:
		key := "struct:" + x.Name
		if visiting[key] {
			return false
		}
		visiting[key] = true
		for _, f := range x.Fields {
			if hasHeapMemory(f.Type, visiting) {
				return true
			}
		}
		return false
	case *Enum:
		key := "enum:" + x.Name
		if visiting[key] {
			return false
		}
		visiting[key] = true
		for _, tag := range x.Tags {
			if tag.Payload != nil && hasHeapMemory(tag.Payload, visiting) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// GetFieldType looks up a struct field's declared type by name.
func GetFieldType(t Type, name string) (Type, bool) {
	s, ok := t.(*Struct)
	if !ok {
		return nil, false
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// GetIteratedType returns the natural "item" type produced by iterating t
// once (the type checker's env.for_scope uses this as a starting point and
// further splits Table/Function iteration into key+value / yielded forms).
func GetIteratedType(t Type) (Type, bool) {
	switch x := t.(type) {
	case *List:
		return x.Item, true
	case *Set:
		return x.Item, true
	case *Table:
		return x.Key, true
	case *Closure:
		return NonOptional(x.Fn.Ret), true
	case *Function:
		return NonOptional(x.Ret), true
	default:
		return nil, false
	}
}

// EnumHasFields reports whether any tag of an Enum carries a payload,
// determining whether the emitted C layout is a plain enum or a tagged
// union struct.
func EnumHasFields(t Type) bool {
	e, ok := t.(*Enum)
	if !ok {
		return false
	}
	for _, tag := range e.Tags {
		if tag.Payload != nil && len(tag.Payload.Fields) > 0 {
			return true
		}
	}
	return false
}
