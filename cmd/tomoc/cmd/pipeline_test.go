package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadAndCheckStructDef(t *testing.T) {
	path := writeFixture(t, `{
		"statements": [
			{
				"type": "StructDef",
				"Name": "Point",
				"Fields": [
					{"Name": "x", "Type": {"type": "VarType", "Path": ["Int64"]}}
				]
			}
		]
	}`)

	prog, e, ok := loadAndCheck(path)
	assert.True(t, ok)
	assert.Len(t, prog.Statements, 1)
	ty, found := e.GetType("Point")
	assert.True(t, found)
	assert.False(t, ty == nil)
}

func TestLoadAndCheckReportsFatalOnUnknownType(t *testing.T) {
	path := writeFixture(t, `{
		"statements": [
			{
				"type": "StructDef",
				"Name": "Bad",
				"Fields": [
					{"Name": "x", "Type": {"type": "VarType", "Path": ["NoSuchType"]}}
				]
			}
		]
	}`)

	_, _, ok := loadAndCheck(path)
	assert.False(t, ok)
}
