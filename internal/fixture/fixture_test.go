package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/fixture"
)

func TestLoadDecodesStructAndFunction(t *testing.T) {
	src := `{
		"statements": [
			{
				"type": "StructDef",
				"Name": "Point",
				"Fields": [
					{"Name": "x", "Type": {"type": "VarType", "Path": ["Int64"]}},
					{"Name": "y", "Type": {"type": "VarType", "Path": ["Int64"]}}
				]
			},
			{
				"type": "FunctionDef",
				"Name": "main",
				"Args": [],
				"Ret": {"type": "VarType", "Path": ["Int64"]},
				"Body": {
					"type": "Block",
					"Statements": [
						{"type": "IntLiteral", "Text": "0", "Bits": 64}
					]
				}
			}
		]
	}`

	prog, err := fixture.Load([]byte(src), "test.json")
	assert.NoError(t, err)
	assert.Len(t, prog.Statements, 2)

	sd, ok := prog.Statements[0].(*ast.StructDef)
	assert.True(t, ok)
	assert.Equal(t, "Point", sd.Name)
	assert.Len(t, sd.Fields, 2)

	fd, ok := prog.Statements[1].(*ast.FunctionDef)
	assert.True(t, ok)
	assert.Equal(t, "main", fd.Name)
	assert.Len(t, fd.Body.Statements, 1)
}

func TestLoadRejectsUnknownNodeKind(t *testing.T) {
	src := `{"statements": [{"type": "NotARealNode"}]}`
	_, err := fixture.Load([]byte(src), "bad.json")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	_, err := fixture.Load([]byte("not json"), "bad.json")
	assert.Error(t, err)
}
