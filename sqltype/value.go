package sqltype

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Value is a Go value boxed with the column type it was checked against.
type Value struct {
	typ *Type
	v   any
}

// Type returns the column type of the value.
func (v Value) Type() *Type { return v.typ }

// Interface returns the raw Go value.
func (v Value) Interface() any { return v.v }

// IsNull reports whether the boxed value is NULL.
func (v Value) IsNull() bool { return v.v == nil }

// Value implements driver.Valuer so boxed values can be bound directly.
func (v Value) Value() (driver.Value, error) {
	if valuer, ok := v.v.(driver.Valuer); ok {
		return valuer.Value()
	}
	return v.v, nil
}

func (v Value) String() string { return fmt.Sprintf("%s(%v)", v.typ.name, v.v) }

// New boxes v after validating it. Types whose required key was never supplied
// cannot hold values.
func (t *Type) New(v any) (Value, error) {
	if t.keyRequired && !t.hasKey {
		return Value{}, &TypeError{Type: t.name, Op: "New", Reason: t.key.String() + " is required", Err: ErrInvalidTypeState}
	}
	if err := t.Validate(v); err != nil {
		return Value{}, err
	}
	return Value{typ: t, v: v}, nil
}

// Null returns a NULL value of type t without validating it.
func (t *Type) Null() Value { return Value{typ: t} }

// Validate reports whether v can be stored in a column of type t.
func (t *Type) Validate(v any) error {
	if v == nil {
		if t.IsNotNull() {
			return t.invalid(v, "NULL is not allowed")
		}
		return nil
	}
	if boxed, ok := v.(Value); ok {
		return t.Validate(boxed.v)
	}

	switch t.kind {
	case KindInteger:
		return t.validateInteger(v)
	case KindFloat:
		if _, ok := toFloat(v); !ok {
			return t.invalid(v, "expected a number")
		}
	case KindDecimal:
		if s, ok := v.(string); ok {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return t.invalid(v, "expected a decimal string")
			}
			return nil
		}
		if _, ok := toFloat(v); !ok {
			return t.invalid(v, "expected a number")
		}
	case KindString:
		return t.validateString(v)
	case KindDatetime:
		switch v.(type) {
		case time.Time, string:
		default:
			return t.invalid(v, "expected time.Time or string")
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return t.invalid(v, "expected bool")
		}
	}
	return nil
}

func (t *Type) validateInteger(v any) error {
	var (
		i      int64
		u      uint64
		signed = true
	)
	switch n := v.(type) {
	case int:
		i = int64(n)
	case int8:
		i = int64(n)
	case int16:
		i = int64(n)
	case int32:
		i = int64(n)
	case int64:
		i = n
	case uint:
		u, signed = uint64(n), false
	case uint8:
		u, signed = uint64(n), false
	case uint16:
		u, signed = uint64(n), false
	case uint32:
		u, signed = uint64(n), false
	case uint64:
		u, signed = n, false
	default:
		return t.invalid(v, "expected an integer")
	}
	if !t.ranged {
		return nil
	}

	if signed && i < 0 {
		if t.unsigned || i < t.minInt {
			return t.outOfRange(v)
		}
		return nil
	}
	if signed {
		u = uint64(i)
	}
	if t.unsigned {
		if u > t.maxUint {
			return t.outOfRange(v)
		}
		return nil
	}
	if u > uint64(t.maxInt) {
		return t.outOfRange(v)
	}
	return nil
}

func (t *Type) outOfRange(v any) error {
	if t.unsigned {
		return t.invalid(v, fmt.Sprintf("out of range [0, %d]", t.maxUint))
	}
	return t.invalid(v, fmt.Sprintf("out of range [%d, %d]", t.minInt, t.maxInt))
}

func (t *Type) validateString(v any) error {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		return t.invalid(v, "expected a string")
	}

	if n, ok := t.Length(); ok && utf8.RuneCountInString(s) > n {
		return t.invalid(v, fmt.Sprintf("longer than %d characters", n))
	}
	if t.key != ModValues || !t.hasKey {
		return nil
	}

	members := []string{s}
	if t.isSet() {
		if s == "" {
			return nil
		}
		members = strings.Split(s, ",")
	}
	for _, m := range members {
		if !t.hasValue(m) {
			return t.invalid(v, fmt.Sprintf("%q is not one of %s", m, strings.Join(t.values, ", ")))
		}
	}
	return nil
}

func (t *Type) isSet() bool {
	root := t
	for root.base != nil {
		root = root.base
	}
	return root == Set
}

func (t *Type) hasValue(s string) bool {
	for _, v := range t.values {
		if v == s {
			return true
		}
	}
	return false
}

func (t *Type) invalid(v any, reason string) error {
	return &TypeError{Type: t.name, Op: "Validate", Reason: fmt.Sprintf("%v: %s", v, reason), Err: ErrInvalidValue}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
