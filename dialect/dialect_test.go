package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`t_student`", NewMySQLDialect().QuoteIdentifier("t_student"))
	assert.Equal(t, "`a``b`", NewMySQLDialect().QuoteIdentifier("a`b"))
	assert.Equal(t, `"t_student"`, NewPostgresDialect().QuoteIdentifier("t_student"))
	assert.Equal(t, "`t_student`", NewSQLiteDialect().QuoteIdentifier("t_student"))
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", NewMySQLDialect().Placeholder(3))
	assert.Equal(t, "$3", NewPostgresDialect().Placeholder(3))
	assert.Equal(t, "?", NewTiDBDialect().Placeholder(1))
}

func TestUnboundedLimit(t *testing.T) {
	n, ok := NewMySQLDialect().UnboundedLimit()
	assert.True(t, ok)
	assert.Equal(t, "18446744073709551615", n)

	n, ok = NewSQLiteDialect().UnboundedLimit()
	assert.True(t, ok)
	assert.Equal(t, "-1", n)

	_, ok = NewPostgresDialect().UnboundedLimit()
	assert.False(t, ok)
}

func TestRenderValue(t *testing.T) {
	d := NewMySQLDialect()
	assert.Equal(t, "NULL", d.RenderValue(nil))
	assert.Equal(t, "'it''s'", d.RenderValue("it's"))
	assert.Equal(t, "18", d.RenderValue(18))
	assert.Equal(t, "1.5", d.RenderValue(1.5))
	assert.Equal(t, "TRUE", d.RenderValue(true))
	assert.Equal(t, "1", NewSQLiteDialect().RenderValue(true))
	assert.Equal(t, `'\x0102'::bytea`, NewPostgresDialect().RenderValue([]byte{1, 2}))
}

func TestForName(t *testing.T) {
	for name, want := range map[string]string{
		"mysql":    "mysql",
		"tidb":     "tidb",
		"pgx":      "postgres",
		"Postgres": "postgres",
		"sqlite":   "sqlite",
	} {
		d, err := ForName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, d.Name())
	}

	_, err := ForName("oracle")
	assert.Error(t, err)
}
