// Package textlang backs the language-tagged Text{lang} type (§3.1): it
// normalizes text literal content and validates the language tags used by
// lang-defs (`LangDef` in package ast), grounded on the teacher's own use of
// golang.org/x/text for literal normalization (internal/lexer/normalize.go).
package textlang

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode Normalization Form C, the canonical form
// text literals are stored in before being emitted as C string constants
// (stable byte-for-byte output across compiler runs, §8 property 1).
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// ValidTag reports whether tag is usable as the language name in a `lang`
// definition — the reserved "Text" (the untagged default), a syntactically
// valid BCP-47 language tag, or an identifier-style lang name such as "Path"
// or "HTML" (letters, digits and underscores, not starting with a digit).
func ValidTag(tag string) bool {
	if tag == "" || tag == "Text" {
		return true
	}
	if _, err := language.Parse(tag); err == nil {
		return true
	}
	for i, r := range tag {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}

// CanonicalTag returns the canonical form of a language tag (e.g. "en-us" ->
// "en-US"), or the input unchanged if it is not a parseable BCP-47 tag (the
// common case: a user-defined lang name like "Path" or "HTML" rather than a
// locale).
func CanonicalTag(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}
