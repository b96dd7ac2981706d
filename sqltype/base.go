package sqltype

import (
	"math"
	"strings"
)

// Base types. Every base type defaults to NULL; NotNull clears that default.
var (
	TinyInt     = newInteger("TinyInt", math.MinInt8, math.MaxInt8)
	SmallInt    = newInteger("SmallInt", math.MinInt16, math.MaxInt16)
	Int         = newInteger("Int", math.MinInt32, math.MaxInt32)
	BigInt      = newInteger("BigInt", math.MinInt64, math.MaxInt64)
	UnsignedInt = newUnsigned("UnsignedInt", "INT UNSIGNED", math.MaxUint32)

	Float  = newBase("Float", KindFloat)
	Double = newBase("Double", KindFloat)

	// Decimal requires a precision and scale: Precision(Decimal, 10, 2).
	Decimal = newKeyed("Decimal", KindDecimal, ModPrecision, true)

	// Char and VarChar require a length; Text accepts an optional one.
	Char    = newKeyed("Char", KindString, ModLength, true)
	VarChar = newKeyed("VarChar", KindString, ModLength, true)
	Text    = newKeyed("Text", KindString, ModLength, false)

	// Enum and Set require their value list: Values(Enum, "a", "b").
	Enum = newKeyed("Enum", KindString, ModValues, true)
	Set  = newKeyed("Set", KindString, ModValues, true)

	Bool      = newBase("Bool", KindBool)
	Date      = newBase("Date", KindDatetime)
	Datetime  = newBase("Datetime", KindDatetime)
	Timestamp = newBase("Timestamp", KindDatetime)
)

func newBase(name string, kind Kind) *Type {
	return &Type{
		id:         nextID(),
		name:       name,
		kind:       kind,
		sql:        strings.ToUpper(name),
		hasDefault: true,
	}
}

func newKeyed(name string, kind Kind, key Modifier, required bool) *Type {
	t := newBase(name, kind)
	t.key = key
	t.keyRequired = required
	return t
}

func newInteger(name string, lo, hi int64) *Type {
	t := newBase(name, KindInteger)
	t.minInt, t.maxInt, t.ranged = lo, hi, true
	return t
}

func newUnsigned(name, sql string, hi uint64) *Type {
	t := newBase(name, KindInteger)
	t.sql = sql
	t.maxUint, t.unsigned, t.ranged = hi, true, true
	return t
}
