package diagnostics_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diagnostics"
)

func TestGuardRecoversFatal(t *testing.T) {
	f := &ast.File{Name: "x.tomo", Text: "y := z\n"}
	var buf bytes.Buffer
	ok := diagnostics.Guard(&buf, func() {
		diagnostics.ReportError(diagnostics.TYP001UnknownName, "typecheck",
			ast.Span{Start: ast.Pos{File: f, Offset: 5}, End: ast.Pos{File: f, Offset: 6}},
			"unknown name 'z'")
	})
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "TYP001")
	assert.Contains(t, buf.String(), "unknown name 'z'")
}

func TestGuardPassesThroughNonFatalPanic(t *testing.T) {
	var buf bytes.Buffer
	assert.Panics(t, func() {
		diagnostics.Guard(&buf, func() {
			panic("not a diagnostic")
		})
	})
}

func TestGuardOKOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	ok := diagnostics.Guard(&buf, func() {})
	assert.True(t, ok)
	assert.Empty(t, buf.String())
}
