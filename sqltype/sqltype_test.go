package sqltype

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordName string

func (r recordName) Name() string { return string(r) }

func TestDeriveLengthMemoized(t *testing.T) {
	a := Length(Text, 100)
	b := Length(Text, 200)

	assert.NotSame(t, a, b)
	assert.Same(t, a, Length(Text, 100))
	assert.Equal(t, "TEXT(100)", a.SQL())
	assert.Equal(t, "TEXT(200)", b.SQL())
	assert.Equal(t, "Text[100]", a.Name())

	n, ok := a.Length()
	assert.True(t, ok)
	assert.Equal(t, 100, n)
}

func TestDeriveConcurrentFirstUse(t *testing.T) {
	const workers = 32
	results := make([]*Type, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Length(VarChar, 4242)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestWrapperSQL(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		sql  string
	}{
		{"not null", NotNull(Int), "INT NOT NULL"},
		{"nullable", Nullable(Int), "INT"},
		{"optional", Optional(Int), "INT"},
		{"primary key", PrimaryKey(NotNull(Int)), "INT NOT NULL PRIMARY KEY"},
		{"precision", Precision(Decimal, 10, 2), "DECIMAL(10, 2)"},
		{"values", Values(Enum, "a", "b"), "ENUM('a', 'b')"},
		{"quoted values", Values(Set, "it's"), "SET('it''s')"},
		{"unsigned", UnsignedInt, "INT UNSIGNED"},
		{"keyed not null", NotNull(Length(VarChar, 32)), "VARCHAR(32) NOT NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sql, tt.typ.SQL())
		})
	}
}

func TestWrappingIsIdempotent(t *testing.T) {
	nn := NotNull(Int)
	assert.Same(t, nn, NotNull(nn))

	pk := PrimaryKey(nn)
	assert.Same(t, pk, PrimaryKey(pk))
	assert.Same(t, pk, PrimaryKey(NotNull(Int)))
	assert.Equal(t, "PrimaryKey[NotNull[Int]]", pk.Name())
}

func TestNotNullClearsDefault(t *testing.T) {
	assert.True(t, Int.HasDefault())

	withDefault := Int.WithDefault(7)
	v, err := withDefault.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	nn := NotNull(withDefault)
	assert.False(t, nn.HasDefault())
	_, err = nn.DefaultValue()
	assert.ErrorIs(t, err, ErrInvalidTypeState)

	// other wrappers keep it
	pk := PrimaryKey(withDefault)
	v, err = pk.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDefaultIsImmutable(t *testing.T) {
	a := Int.WithDefault(1)
	b := Int.WithDefault(2)

	va, _ := a.DefaultValue()
	vb, _ := b.DefaultValue()
	assert.Equal(t, 1, va)
	assert.Equal(t, 2, vb)
	assert.Same(t, a, Int.WithDefault(1))

	base, err := Int.DefaultValue()
	require.NoError(t, err)
	assert.Nil(t, base)
	assert.False(t, Int.WithoutDefault().HasDefault())
}

func TestComment(t *testing.T) {
	c := NotNull(Int).WithComment("age in years")
	assert.Equal(t, "age in years", c.Comment())
	assert.Equal(t, "INT NOT NULL", c.SQL())
	assert.True(t, c.IsNotNull())
	assert.Empty(t, NotNull(Int).Comment())
}

func TestForeignKey(t *testing.T) {
	student := recordName("Student")
	fk := ForeignKey(student)

	assert.Equal(t, Int.SQL(), fk.SQL())
	assert.True(t, fk.IsForeignKey())
	assert.Equal(t, student, fk.Target())
	assert.Equal(t, "ForeignKey[Student]", fk.Name())
	assert.Same(t, fk, ForeignKey(student))
	assert.NotSame(t, fk, ForeignKey(recordName("Teacher")))

	nn := NotNull(fk)
	assert.True(t, nn.IsForeignKey())
	assert.Equal(t, "INT NOT NULL", nn.SQL())
}

func TestDeriveInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		base   *Type
		mod    Modifier
		params []any
	}{
		{"length on int", Int, ModLength, []any{10}},
		{"zero length", VarChar, ModLength, []any{0}},
		{"length wrong type", VarChar, ModLength, []any{"10"}},
		{"length arity", VarChar, ModLength, []any{1, 2}},
		{"scale above precision", Decimal, ModPrecision, []any{2, 5}},
		{"precision arity", Decimal, ModPrecision, []any{10}},
		{"empty values", Enum, ModValues, nil},
		{"non string values", Enum, ModValues, []any{1}},
		{"length twice", Length(VarChar, 5), ModLength, []any{6}},
		{"key after wrapper", NotNull(VarChar), ModLength, []any{6}},
		{"not null with params", Int, ModNotNull, []any{1}},
		{"not null over nullable", Nullable(Int), ModNotNull, nil},
		{"nullable over not null", NotNull(Int), ModNullable, nil},
		{"foreign key without target", Int, ModForeignKey, []any{"Student"}},
		{"foreign key on text", Text, ModForeignKey, []any{recordName("Student")}},
		{"unknown modifier", Int, Modifier(99), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.base, tt.mod, tt.params...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTypeParameters)

			var typeErr *TypeError
			assert.True(t, errors.As(err, &typeErr))
		})
	}
}

func TestHelpersPanicOnInvalidParameters(t *testing.T) {
	assert.Panics(t, func() { Length(Int, 3) })
	assert.Panics(t, func() { Values(Enum) })
}

func TestNewRequiresKey(t *testing.T) {
	_, err := VarChar.New("abc")
	assert.ErrorIs(t, err, ErrInvalidTypeState)

	_, err = NotNull(Decimal).New(1.5)
	assert.ErrorIs(t, err, ErrInvalidTypeState)

	// Text's length is optional
	v, err := Text.New("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", v.Interface())
	assert.Same(t, Text, v.Type())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		typ   *Type
		value any
		ok    bool
	}{
		{"int", Int, 42, true},
		{"int overflow", Int, int64(1) << 40, false},
		{"tinyint range", TinyInt, 128, false},
		{"tinyint negative", TinyInt, -128, true},
		{"unsigned negative", UnsignedInt, -1, false},
		{"unsigned max", UnsignedInt, uint32(4294967295), true},
		{"bigint uint64 overflow", BigInt, uint64(1) << 63, false},
		{"int wrong kind", Int, "42", false},
		{"float", Double, 1.5, true},
		{"float from int", Float, 3, true},
		{"decimal string", Precision(Decimal, 10, 2), "12.50", true},
		{"decimal bad string", Precision(Decimal, 10, 2), "twelve", false},
		{"varchar within length", Length(VarChar, 3), "abc", true},
		{"varchar too long", Length(VarChar, 3), "abcd", false},
		{"enum member", Values(Enum, "red", "green"), "red", true},
		{"enum non member", Values(Enum, "red", "green"), "blue", false},
		{"set members", Values(Set, "a", "b", "c"), "a,c", true},
		{"set non member", Values(Set, "a", "b"), "a,z", false},
		{"datetime", Datetime, time.Now(), true},
		{"datetime wrong kind", Datetime, 5, false},
		{"bool", Bool, true, true},
		{"null allowed", Int, nil, true},
		{"null rejected", NotNull(Int), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate(tt.value)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidValue)
			}
		})
	}
}

func TestValueImplementsValuer(t *testing.T) {
	v, err := NotNull(Int).New(5)
	require.NoError(t, err)

	dv, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, 5, dv)
	assert.False(t, v.IsNull())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		in             *Type
		defaultNotNull bool
		want           *Type
	}{
		{"wraps bare type", Int, true, NotNull(Int)},
		{"policy off", Int, false, Int},
		{"keeps not null", NotNull(Int), true, NotNull(Int)},
		{"keeps nullable", Nullable(Int), true, Nullable(Int)},
		{"unwraps optional", Optional(Int), true, Int},
		{"primary key inner", PrimaryKey(Int), false, PrimaryKey(NotNull(Int))},
		{"primary key already not null", PrimaryKey(NotNull(Int)), true, PrimaryKey(NotNull(Int))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in, tt.defaultNotNull)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestGenerators(t *testing.T) {
	gens := []Generator{UUIDGenerator{}, NewULIDGenerator(), NewSnowflakeGenerator(1)}
	for _, g := range gens {
		t.Run(g.Type(), func(t *testing.T) {
			a, err := g.Generate()
			require.NoError(t, err)
			b, err := g.Generate()
			require.NoError(t, err)
			assert.NotEqual(t, a, b)
		})
	}
}

func TestGeneratorInstancesDeriveDistinctTypes(t *testing.T) {
	g1, g2 := NewULIDGenerator(), NewULIDGenerator()
	a := Length(Char, 26).WithGenerator(g1)
	b := Length(Char, 26).WithGenerator(g2)

	assert.NotSame(t, a, b)
	assert.Same(t, g1, a.Generator())
	assert.Same(t, g2, b.Generator())
	assert.Same(t, a, Length(Char, 26).WithGenerator(g1))
}

func TestGeneratedDefault(t *testing.T) {
	typ := Length(Char, 36).WithGenerator(UUIDGenerator{})
	assert.True(t, typ.HasDefault())
	assert.Same(t, typ, Length(Char, 36).WithGenerator(UUIDGenerator{}))

	a, err := typ.DefaultValue()
	require.NoError(t, err)
	b, err := typ.DefaultValue()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NoError(t, typ.Validate(a))
}
