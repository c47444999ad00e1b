package check

import "github.com/sunholo/ailang/internal/types"

// lookupCatalogMethod implements the fixed list/set/table method catalog
// (§4.4.2 "hard-coded return types for a fixed catalog of methods"),
// enumerated exhaustively per SPEC_FULL.md §12 rather than left partial,
// grounded on original_source/src/compile/lists.c's method set.
func lookupCatalogMethod(subject types.Type, method string) (types.Type, bool) {
	switch t := subject.(type) {
	case *types.List:
		return listMethod(t, method)
	case *types.Set:
		return setMethod(t, method)
	case *types.Table:
		return tableMethod(t, method)
	case *types.Text:
		return textMethod(t, method)
	default:
		return nil, false
	}
}

func listMethod(t *types.List, method string) (types.Type, bool) {
	boolT := types.Bool{}
	intT := &types.Int{Bits: 64}
	switch method {
	case "insert", "insert_all", "remove", "remove_at", "sort", "shuffle", "clear":
		return types.Void{}, true
	case "pop", "pop_at", "random":
		return &types.Optional{Inner: t.Item}, true
	case "sorted", "reversed", "unique", "where", "from", "to", "slice", "by", "sample":
		return t, true
	case "has":
		return boolT, true
	case "get":
		return &types.Optional{Inner: t.Item}, true
	case "counts":
		return &types.Table{Key: t.Item, Value: intT}, true
	case "binary_search":
		return intT, true
	case "heap_push", "heap_pop":
		return types.Void{}, true
	case "length":
		return intT, true
	default:
		return nil, false
	}
}

func setMethod(t *types.Set, method string) (types.Type, bool) {
	boolT := types.Bool{}
	intT := &types.Int{Bits: 64}
	switch method {
	case "add", "add_all", "remove", "remove_all", "clear":
		return types.Void{}, true
	case "has":
		return boolT, true
	case "with", "overlap", "without":
		return t, true
	case "is_subset_of", "is_superset_of":
		return boolT, true
	case "length":
		return intT, true
	default:
		return nil, false
	}
}

func tableMethod(t *types.Table, method string) (types.Type, bool) {
	boolT := types.Bool{}
	intT := &types.Int{Bits: 64}
	switch method {
	case "set":
		return types.Void{}, true
	case "remove":
		return types.Void{}, true
	case "get":
		return &types.Optional{Inner: t.Value}, true
	case "get_or_set":
		return t.Value, true
	case "has":
		return boolT, true
	case "keys":
		return &types.List{Item: t.Key}, true
	case "values":
		return &types.List{Item: t.Value}, true
	case "length":
		return intT, true
	default:
		return nil, false
	}
}

func textMethod(t *types.Text, method string) (types.Type, bool) {
	boolT := types.Bool{}
	intT := &types.Int{Bits: 64}
	switch method {
	case "upper", "lower", "trim", "reversed", "replace", "translate", "quoted":
		return t, true
	case "split", "lines", "by_line", "codepoint_names":
		return &types.List{Item: t}, true
	case "has", "starts_with", "ends_with", "matches":
		return boolT, true
	case "find":
		return &types.Optional{Inner: intT}, true
	case "length":
		return intT, true
	case "text":
		return &types.Text{Lang: "Text"}, true
	default:
		return nil, false
	}
}
