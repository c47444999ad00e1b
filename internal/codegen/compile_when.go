package codegen

import (
	"fmt"
	"strings"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/env"
	"github.com/sunholo/ailang/internal/types"
)

// compileWhenExpr compiles a When used in expression position, wrapping the
// statement-form switch in a GCC statement-expression that yields the
// matched clause's value (§4.5.2 "If/When/Block as expressions").
func compileWhenExpr(e *env.Env, x *ast.When) string {
	resultT := check.GetType(e, x)
	result := fmt.Sprintf("_when_%s", e.IDSuffix())
	body := compileWhenStatement(e, x, func(scope *env.Env, clauseBody *ast.Block) string {
		v := Compile(scope, clauseBody)
		return fmt.Sprintf("%s = %s;", result, CompileToType(v, check.GetType(scope, clauseBody), resultT))
	})
	return fmt.Sprintf("({ %s %s; %s %s; })", CompileType(resultT), result, body, result)
}

// compileWhenStatement implements §4.5.6 in full: non-enum subjects compile
// to an if/else-if chain; enum subjects with only bare tags compile to a
// plain switch; enum subjects with payload patterns compile to a switch that
// declares the pattern's bound names from the matched tag's union member.
// emit renders one clause's body into the branch/case.
func compileWhenStatement(e *env.Env, x *ast.When, emit func(scope *env.Env, body *ast.Block) string) string {
	subjectT := check.GetType(e, x.Subject)
	enumT, isEnum := subjectT.(*types.Enum)
	if !isEnum {
		return compileWhenNonEnum(e, x, emit)
	}

	subjectCode := Compile(e, x.Subject)
	subjectVar := subjectCode
	if !ast.IsIdempotent(x.Subject) {
		subjectVar = fmt.Sprintf("_subj_%s", e.IDSuffix())
	}

	var b strings.Builder
	if subjectVar != subjectCode {
		b.WriteString(fmt.Sprintf("{ %s %s = %s; ", CompileType(subjectT), subjectVar, subjectCode))
	}
	tagExpr := fmt.Sprintf("(%s).tag", subjectVar)
	if !types.EnumHasFields(enumT) {
		tagExpr = subjectVar // a payload-free enum compiles to a plain C enum value
	}
	b.WriteString(fmt.Sprintf("switch (%s) { ", tagExpr))
	for _, clause := range x.Clauses {
		if clause.Tag == "" {
			b.WriteString("default: { ")
			b.WriteString(emit(e.WhenClauseScope(subjectT, clause), clause.Body))
			b.WriteString(" break; } ")
			continue
		}
		b.WriteString(fmt.Sprintf("case %s$tag_%s: { ", enumT.Name, clause.Tag))
		scope := e.WhenClauseScope(subjectT, clause)
		scope = bindPayloadLocals(scope, subjectVar, enumT, clause)
		b.WriteString(emit(scope, clause.Body))
		b.WriteString(" break; } ")
	}
	b.WriteString("} ")
	if subjectVar != subjectCode {
		b.WriteString("}")
	}
	return b.String()
}

func bindPayloadLocals(e *env.Env, subjectVar string, enumT *types.Enum, clause ast.WhenClause) *env.Env {
	var tag *types.EnumTag
	for i := range enumT.Tags {
		if enumT.Tags[i].Name == clause.Tag {
			tag = &enumT.Tags[i]
			break
		}
	}
	if tag == nil || tag.Payload == nil {
		return e
	}
	scope := e.FreshScope()
	if clause.WholePayload && len(clause.Bindings) == 1 {
		return scope.WithBinding(clause.Bindings[0], env.Binding{
			Type: tag.Payload, Code: fmt.Sprintf("(%s).%s", subjectVar, clause.Tag),
		})
	}
	for i, name := range clause.Bindings {
		if i >= len(tag.Payload.Fields) {
			break
		}
		field := tag.Payload.Fields[i]
		scope = scope.WithBinding(name, env.Binding{
			Type: field.Type, Code: fmt.Sprintf("(%s).%s.%s", subjectVar, clause.Tag, field.Name),
		})
	}
	return scope
}

func compileWhenNonEnum(e *env.Env, x *ast.When, emit func(scope *env.Env, body *ast.Block) string) string {
	subjectCode := Compile(e, x.Subject)
	subjectVar := subjectCode
	useTemp := !ast.IsIdempotent(x.Subject)
	if useTemp {
		subjectVar = fmt.Sprintf("_subj_%s", e.IDSuffix())
	}

	var b strings.Builder
	if useTemp {
		subjectT := check.GetType(e, x.Subject)
		b.WriteString(fmt.Sprintf("{ %s %s = %s; ", CompileType(subjectT), subjectVar, subjectCode))
	}
	for i, clause := range x.Clauses {
		if clause.Tag == "" {
			b.WriteString("else { ")
			b.WriteString(emit(e, clause.Body))
			b.WriteString(" } ")
			continue
		}
		prefix := "if"
		if i > 0 {
			prefix = "else if"
		}
		b.WriteString(fmt.Sprintf("%s (%s == %s) { ", prefix, subjectVar, clause.Tag))
		b.WriteString(emit(e, clause.Body))
		b.WriteString(" } ")
	}
	if useTemp {
		b.WriteString("}")
	}
	return b.String()
}
