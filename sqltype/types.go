// Package sqltype derives concrete, nameable column types from base SQL types
// and modifiers. Derived types are immutable and memoized process-wide, so the
// same composition always yields the same *Type.
package sqltype

import (
	"sync/atomic"
)

type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindDecimal
	KindString
	KindDatetime
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindDatetime:
		return "datetime"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Modifier identifies how a derived type differs from its base.
type Modifier int

const (
	ModNone Modifier = iota
	ModNullable
	ModNotNull
	ModPrimaryKey
	ModForeignKey
	ModOptional
	ModLength
	ModPrecision
	ModValues
	ModDefault
	ModNoDefault
	ModComment
	ModGenerator
)

func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "base"
	case ModNullable:
		return "Nullable"
	case ModNotNull:
		return "NotNull"
	case ModPrimaryKey:
		return "PrimaryKey"
	case ModForeignKey:
		return "ForeignKey"
	case ModOptional:
		return "Optional"
	case ModLength:
		return "Length"
	case ModPrecision:
		return "Precision"
	case ModValues:
		return "Values"
	case ModDefault:
		return "Default"
	case ModNoDefault:
		return "NoDefault"
	case ModComment:
		return "Comment"
	case ModGenerator:
		return "Generator"
	default:
		return "Modifier(?)"
	}
}

// wrapper reports whether m wraps a complete type rather than parameterizing it.
func (m Modifier) wrapper() bool {
	switch m {
	case ModNullable, ModNotNull, ModPrimaryKey, ModForeignKey, ModOptional:
		return true
	}
	return false
}

// Target is the record declaration a foreign key points at.
type Target interface {
	Name() string
}

// Type is an immutable column type descriptor.
type Type struct {
	id   uint64
	name string
	kind Kind
	sql  string
	base *Type
	mod  Modifier

	// key accepted by the type (ModLength, ModPrecision, ModValues or ModNone)
	key         Modifier
	keyRequired bool
	hasKey      bool
	length      int
	precision   int
	scale       int
	values      []string

	target Target

	hasDefault   bool
	defaultValue any
	generator    Generator
	comment      string

	minInt, maxInt int64
	maxUint        uint64
	unsigned       bool
	ranged         bool
}

var typeIDs atomic.Uint64

func nextID() uint64 { return typeIDs.Add(1) }

func (t *Type) ID() uint64           { return t.id }
func (t *Type) Name() string         { return t.name }
func (t *Type) String() string       { return t.name }
func (t *Type) Kind() Kind           { return t.kind }
func (t *Type) Base() *Type          { return t.base }
func (t *Type) Modifier() Modifier   { return t.mod }
func (t *Type) Comment() string      { return t.comment }
func (t *Type) KeyRequired() bool    { return t.keyRequired }
func (t *Type) HasKey() bool         { return t.hasKey }
func (t *Type) Values() []string     { return append([]string(nil), t.values...) }
func (t *Type) Generator() Generator { return t.generator }

// SQL returns the type fragment used in CREATE TABLE statements.
func (t *Type) SQL() string { return t.sql }

// Length returns the length key, if one was supplied.
func (t *Type) Length() (int, bool) {
	return t.length, t.key == ModLength && t.hasKey
}

// Precision returns the precision and scale, if they were supplied.
func (t *Type) Precision() (precision, scale int, ok bool) {
	return t.precision, t.scale, t.key == ModPrecision && t.hasKey
}

// Is reports whether mod was applied anywhere in the derivation chain of t.
func (t *Type) Is(mod Modifier) bool {
	for cur := t; cur != nil; cur = cur.base {
		if cur.mod == mod {
			return true
		}
	}
	return false
}

func (t *Type) IsNotNull() bool    { return t.Is(ModNotNull) }
func (t *Type) IsNullable() bool   { return t.Is(ModNullable) || t.Is(ModOptional) }
func (t *Type) IsPrimaryKey() bool { return t.Is(ModPrimaryKey) }

// Target returns the record a foreign key type points at, or nil.
func (t *Type) Target() Target { return t.target }

// IsForeignKey reports whether t was derived with ForeignKey.
func (t *Type) IsForeignKey() bool { return t.target != nil }

// HasDefault reports whether rows may omit a value for a column of this type.
func (t *Type) HasDefault() bool { return t.hasDefault }

// DefaultValue returns the default. Generated defaults produce a fresh value
// on every call.
func (t *Type) DefaultValue() (any, error) {
	if !t.hasDefault {
		return nil, &TypeError{Type: t.name, Op: "default", Reason: "type has no default value", Err: ErrInvalidTypeState}
	}
	if t.generator != nil {
		return t.generator.Generate()
	}
	return t.defaultValue, nil
}

// WithDefault derives a type whose default value is v.
func (t *Type) WithDefault(v any) *Type { return mustDerive(t, ModDefault, v) }

// WithoutDefault derives a type that requires an explicit value.
func (t *Type) WithoutDefault() *Type { return mustDerive(t, ModNoDefault) }

// WithComment derives a type carrying a free-text comment.
func (t *Type) WithComment(comment string) *Type { return mustDerive(t, ModComment, comment) }

// WithGenerator derives a type whose default is produced by g.
func (t *Type) WithGenerator(g Generator) *Type { return mustDerive(t, ModGenerator, g) }
