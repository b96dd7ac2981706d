package sqltype

// Normalize derives the type a table column is built with from a declared
// field type.
//
// An Optional type is unwrapped to its inner type and never forced to NOT NULL.
// A primary key's inner type is normalized with NOT NULL enforced. Otherwise,
// when defaultNotNull is set and t carries no nullability wrapper, t is wrapped
// in NotNull.
func Normalize(t *Type, defaultNotNull bool) (*Type, error) {
	if t == nil {
		return nil, paramsError(nil, ModNone, "cannot normalize a nil type")
	}
	if t.mod == ModOptional {
		return normalize(t.base, false)
	}
	return normalize(t, defaultNotNull)
}

func normalize(t *Type, ensureNotNull bool) (*Type, error) {
	if t.mod == ModPrimaryKey {
		inner, err := normalize(t.base, true)
		if err != nil {
			return nil, err
		}
		if inner == t.base {
			return t, nil
		}
		return Derive(inner, ModPrimaryKey)
	}
	if !ensureNotNull || t.Is(ModNotNull) || t.Is(ModNullable) || t.Is(ModOptional) {
		return t, nil
	}
	return Derive(t, ModNotNull)
}
