package sqltype

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// memo maps a derivation (base, modifier, parameter) to its derived *Type.
var memo sync.Map

type memoKey struct {
	base  uint64
	mod   Modifier
	param any
}

// Derive applies mod to base with the given parameters and returns the derived
// type. Repeating a derivation returns the identical *Type.
//
//	Derive(Text, ModLength, 255)         // TEXT(255)
//	Derive(Decimal, ModPrecision, 10, 2) // DECIMAL(10, 2)
//	Derive(Enum, ModValues, "a", "b")    // ENUM('a', 'b')
//	Derive(Int, ModNotNull)              // INT NOT NULL
//	Derive(Int, ModForeignKey, student)  // INT, linked to student
func Derive(base *Type, mod Modifier, params ...any) (*Type, error) {
	if base == nil {
		return nil, paramsError(nil, mod, "base type is nil")
	}
	param, err := canonical(base, mod, params)
	if err != nil {
		return nil, err
	}

	// wrapping a type in the modifier it already carries is a no-op
	if param == nil && mod.wrapper() && base.Is(mod) {
		return base, nil
	}

	key := memoKey{base: base.id, mod: mod, param: param}
	if t, ok := memo.Load(key); ok {
		return t.(*Type), nil
	}
	t, _ := memo.LoadOrStore(key, build(base, mod, params))
	return t.(*Type), nil
}

func mustDerive(base *Type, mod Modifier, params ...any) *Type {
	t, err := Derive(base, mod, params...)
	if err != nil {
		panic(err)
	}
	return t
}

// canonical validates params and returns a comparable memo parameter.
func canonical(base *Type, mod Modifier, params []any) (any, error) {
	switch mod {
	case ModNullable, ModNotNull, ModPrimaryKey, ModOptional, ModNoDefault:
		if len(params) != 0 {
			return nil, paramsError(base, mod, "expects no parameters, got %d", len(params))
		}
		if mod == ModNotNull && base.IsNullable() {
			return nil, paramsError(base, mod, "type is already nullable")
		}
		if (mod == ModNullable || mod == ModOptional) && base.IsNotNull() {
			return nil, paramsError(base, mod, "type is already not-null")
		}
		return nil, nil

	case ModForeignKey:
		if len(params) != 1 {
			return nil, paramsError(base, mod, "expects one target, got %d", len(params))
		}
		target, ok := params[0].(Target)
		if !ok || target == nil {
			return nil, paramsError(base, mod, "target %T is not a record", params[0])
		}
		if !reflect.TypeOf(target).Comparable() {
			return nil, paramsError(base, mod, "target %T is not comparable", target)
		}
		if base.kind != KindInteger || base.base != nil {
			return nil, paramsError(base, mod, "foreign keys derive from a base integer type")
		}
		return target, nil

	case ModLength:
		if err := checkKey(base, mod); err != nil {
			return nil, err
		}
		if len(params) != 1 {
			return nil, paramsError(base, mod, "expects one length, got %d", len(params))
		}
		n, ok := params[0].(int)
		if !ok || n <= 0 {
			return nil, paramsError(base, mod, "length must be a positive int, got %v", params[0])
		}
		return n, nil

	case ModPrecision:
		if err := checkKey(base, mod); err != nil {
			return nil, err
		}
		if len(params) != 2 {
			return nil, paramsError(base, mod, "expects precision and scale, got %d parameters", len(params))
		}
		p, ok1 := params[0].(int)
		s, ok2 := params[1].(int)
		if !ok1 || !ok2 || p <= 0 || s < 0 || s > p {
			return nil, paramsError(base, mod, "invalid precision/scale %v, %v", params[0], params[1])
		}
		return [2]int{p, s}, nil

	case ModValues:
		if err := checkKey(base, mod); err != nil {
			return nil, err
		}
		values, err := flattenValues(base, params)
		if err != nil {
			return nil, err
		}
		return strings.Join(values, "\x00"), nil

	case ModDefault:
		if len(params) != 1 {
			return nil, paramsError(base, mod, "expects one default value, got %d", len(params))
		}
		return fmt.Sprintf("%T:%#v", params[0], params[0]), nil

	case ModComment:
		if len(params) != 1 {
			return nil, paramsError(base, mod, "expects one comment, got %d", len(params))
		}
		c, ok := params[0].(string)
		if !ok {
			return nil, paramsError(base, mod, "comment must be a string, got %T", params[0])
		}
		return c, nil

	case ModGenerator:
		if len(params) != 1 {
			return nil, paramsError(base, mod, "expects one generator, got %d", len(params))
		}
		g, ok := params[0].(Generator)
		if !ok || g == nil {
			return nil, paramsError(base, mod, "%T is not a Generator", params[0])
		}
		if reflect.TypeOf(g).Comparable() {
			return g, nil
		}
		return "gen:" + g.Type(), nil
	}
	return nil, paramsError(base, mod, "unknown modifier")
}

func checkKey(base *Type, mod Modifier) error {
	if base.key != mod {
		return paramsError(base, mod, "type does not accept this key")
	}
	if base.hasKey {
		return paramsError(base, mod, "key is already specified")
	}
	for cur := base; cur != nil; cur = cur.base {
		if cur.mod.wrapper() {
			return paramsError(base, mod, "key must be supplied before %s", cur.mod)
		}
	}
	return nil
}

func flattenValues(base *Type, params []any) ([]string, error) {
	var values []string
	for _, p := range params {
		switch v := p.(type) {
		case string:
			values = append(values, v)
		case []string:
			values = append(values, v...)
		default:
			return nil, paramsError(base, ModValues, "values must be strings, got %T", p)
		}
	}
	if len(values) == 0 {
		return nil, paramsError(base, ModValues, "at least one value is required")
	}
	return values, nil
}

func quoteValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// build assumes params were validated by canonical.
func build(base *Type, mod Modifier, params []any) *Type {
	t := *base
	t.id = nextID()
	t.base = base
	t.mod = mod

	switch mod {
	case ModNotNull:
		t.name = "NotNull[" + base.name + "]"
		t.sql = base.sql + " NOT NULL"
		t.hasDefault, t.defaultValue, t.generator = false, nil, nil
	case ModNullable:
		t.name = "Nullable[" + base.name + "]"
	case ModOptional:
		t.name = "Optional[" + base.name + "]"
	case ModPrimaryKey:
		t.name = "PrimaryKey[" + base.name + "]"
		t.sql = base.sql + " PRIMARY KEY"
	case ModForeignKey:
		t.target = params[0].(Target)
		t.name = "ForeignKey[" + t.target.Name() + "]"
	case ModLength:
		t.length = params[0].(int)
		t.hasKey = true
		t.name = base.name + "[" + strconv.Itoa(t.length) + "]"
		t.sql = base.sql + "(" + strconv.Itoa(t.length) + ")"
	case ModPrecision:
		t.precision, t.scale = params[0].(int), params[1].(int)
		t.hasKey = true
		ps := strconv.Itoa(t.precision) + ", " + strconv.Itoa(t.scale)
		t.name = base.name + "[" + ps + "]"
		t.sql = base.sql + "(" + ps + ")"
	case ModValues:
		values, _ := flattenValues(base, params)
		t.values = values
		t.hasKey = true
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = quoteValue(v)
		}
		t.name = base.name + "[" + strings.Join(quoted, ",") + "]"
		t.sql = base.sql + "(" + strings.Join(quoted, ", ") + ")"
	case ModDefault:
		t.hasDefault, t.defaultValue, t.generator = true, params[0], nil
		t.name = base.name + ".Default(" + fmt.Sprint(params[0]) + ")"
	case ModNoDefault:
		t.hasDefault, t.defaultValue, t.generator = false, nil, nil
		t.name = base.name + ".NoDefault()"
	case ModComment:
		t.comment = params[0].(string)
		t.name = base.name + ".Comment(" + strconv.Quote(t.comment) + ")"
	case ModGenerator:
		t.generator = params[0].(Generator)
		t.hasDefault, t.defaultValue = true, nil
		t.name = base.name + ".Generated(" + t.generator.Type() + ")"
	}
	return &t
}

// NotNull wraps t so the column rejects NULL. Any default is cleared.
func NotNull(t *Type) *Type { return mustDerive(t, ModNotNull) }

// Nullable marks t as explicitly nullable.
func Nullable(t *Type) *Type { return mustDerive(t, ModNullable) }

// PrimaryKey marks t as the primary key column type.
func PrimaryKey(t *Type) *Type { return mustDerive(t, ModPrimaryKey) }

// Optional annotates t as nullable; Normalize unwraps it when a table is built.
func Optional(t *Type) *Type { return mustDerive(t, ModOptional) }

// ForeignKey returns an Int-backed type linked to target.
func ForeignKey(target Target) *Type { return mustDerive(Int, ModForeignKey, target) }

// Length supplies the length key of t.
func Length(t *Type, n int) *Type { return mustDerive(t, ModLength, n) }

// Precision supplies the precision and scale of t.
func Precision(t *Type, precision, scale int) *Type {
	return mustDerive(t, ModPrecision, precision, scale)
}

// Values supplies the value list of an Enum or Set type.
func Values(t *Type, values ...string) *Type { return mustDerive(t, ModValues, values) }
