package ast

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Print produces a deterministic JSON representation of an AST node, used
// for golden snapshot testing of the parser/checker pipeline.
//
// Design decisions:
//   - Omits source spans and File pointers (instance-specific, non-reproducible)
//   - Includes a "type" field naming the concrete Go type for each node
//   - Walks arbitrary node structs via reflection so new variants need no
//     change here
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	data, err := json.MarshalIndent(simplify(reflect.ValueOf(node)), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// PrintProgram is Print specialized for a whole Program, normalizing its
// File reference instead of omitting it, since the file name is itself part
// of what a golden test usually wants pinned.
func PrintProgram(prog *Program) string {
	if prog == nil {
		return "null"
	}
	m := map[string]interface{}{
		"type": "Program",
		"file": "test://unit",
	}
	stmts := make([]interface{}, len(prog.Statements))
	for i, s := range prog.Statements {
		stmts[i] = simplify(reflect.ValueOf(s))
	}
	m["statements"] = stmts
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

var skipFields = map[string]bool{
	"span": true, "Span": true, "base": true, "exprBase": true, "stmtBase": true,
	"typeAstBase": true,
}

func simplify(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		if f, ok := v.Type().FieldByName("Name"); ok && v.Type().Name() == "File" {
			_ = f
			return "test://unit"
		}
		m := map[string]interface{}{"type": v.Type().Name()}
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() || skipFields[field.Name] {
				continue
			}
			if field.Name == "File" && field.Type.String() == "*ast.File" {
				continue
			}
			val := simplify(v.Field(i))
			if val == nil {
				continue
			}
			m[field.Name] = val
		}
		return m
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return nil
		}
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = simplify(v.Index(i))
		}
		return out
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	default:
		return v.Interface()
	}
}
