// Package runtimeabi centralizes the naming conventions the code generator
// uses to reference the fixed, out-of-scope C runtime library (§6.3): the
// spec defines the runtime's external surface (function/macro names,
// calling convention) but not its internal struct layout, so this package
// only ever produces names and calling-convention strings, never layout
// assumptions (those live in internal/types/sizealign.go, clearly marked as
// approximations).
package runtimeabi

import "fmt"

// IntConstructor returns the runtime constructor used to build a BigInt
// value from a decimal literal too large for any fixed-width tier (§12
// "integer literal compilation tiers").
func IntConstructor() string { return "Int$from_str" }

// FixedIntCast returns the C cast/constructor for a literal that fits a
// machine int32 or int64 tier.
func FixedIntCast(bits int) string {
	if bits <= 32 {
		return "(Int32_t)"
	}
	return fmt.Sprintf("Int%d$from_int64", bits)
}

// TypeInfoSymbol returns the runtime TypeInfo constant name for a named
// struct/enum type, e.g. "Shape$info".
func TypeInfoSymbol(name string) string { return name + "$info" }

// StructTag returns the C struct tag for a named struct type, e.g. "Shape$struct".
func StructTag(name string) string { return name + "$struct" }

// OptionalWrapperType returns the C type name for a non-zero-cost Optional
// wrapper, e.g. "OptionalInt64_t".
func OptionalWrapperType(inner string) string { return "Optional" + inner + "_t" }

// GenericAsText is the runtime's universal stringify entry point, used by
// default `Text` conversion and doc-test comparison (§12 "doc-tests").
func GenericAsText() string { return "generic_as_text" }

// FailSymbol, SaySymbol, ExitSymbol and UseColorGlobal name the builtin globals
// global_env() populates (§4.3).
const (
	FailSymbol     = "fail"
	SaySymbol      = "say"
	ExitSymbol     = "tomo_exit"
	UseColorGlobal = "USE_COLOR"
)
