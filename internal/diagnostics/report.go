// Package diagnostics implements the compiler core's single error-reporting
// path: every fatal condition in the type checker and code generator raises
// a structured Report through Fatal, never a bare panic(string) or a
// silently swallowed error (§5, §7).
package diagnostics

import "github.com/sunholo/ailang/internal/ast"

// Code is a stable, phase-prefixed error identifier (§7: TYP### for the
// type checker, ENV### for environment/scoping, GEN### for the code
// generator).
type Code string

const (
	TYP001UnknownName          Code = "TYP001"
	TYP002TypeMismatch         Code = "TYP002"
	TYP003IncompleteType       Code = "TYP003"
	TYP004ConstraintViolation  Code = "TYP004"
	TYP005AmbiguousOverload    Code = "TYP005"
	TYP006NonExhaustive        Code = "TYP006"
	TYP007MissingValue         Code = "TYP007"
	ENV001UnknownName          Code = "ENV001"
	ENV002PrivateAccess        Code = "ENV002"
	ENV003DuplicateBinding     Code = "ENV003"
	GEN001UnreachableCode      Code = "GEN001"
	GEN002UnsupportedNode      Code = "GEN002"
)

// Report is a single diagnostic, mirroring the teacher's structured error
// report shape (internal/errors): a stable code, the phase that raised it, a
// human message, the offending span, and optional structured Data plus a
// suggested Fix.
type Report struct {
	Code    Code
	Phase   string // "typecheck", "environment", "codegen"
	Message string
	Span    ast.Span
	Data    map[string]string
	Fix     string // suggested remediation text, "" if none
}

// FatalError is the panic value Fatal raises; Guard is the sole recover
// point (§5's "fail-fast longjmp-equivalent abort").
type FatalError struct {
	Report Report
}

func (e *FatalError) Error() string { return e.Report.Message }

// Fatal raises r as the compiler's single abort path.
func Fatal(r Report) {
	panic(&FatalError{Report: r})
}

// ReportError builds and raises a Report in one call.
func ReportError(code Code, phase string, span ast.Span, message string) {
	Fatal(Report{Code: code, Phase: phase, Message: message, Span: span})
}
