package textlang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/ailang/internal/textlang"
)

func TestNormalizeNFC(t *testing.T) {
	decomposed := "é" // e + combining acute accent
	assert.Equal(t, "é", textlang.Normalize(decomposed))
}

func TestValidTag(t *testing.T) {
	assert.True(t, textlang.ValidTag("Text"))
	assert.True(t, textlang.ValidTag(""))
	assert.True(t, textlang.ValidTag("en-US"))
	assert.True(t, textlang.ValidTag("Path"), "a user-defined lang name is not itself a locale tag failure")
}

func TestCanonicalTag(t *testing.T) {
	assert.Equal(t, "en-US", textlang.CanonicalTag("en-us"))
	assert.Equal(t, "Path", textlang.CanonicalTag("Path"))
}
