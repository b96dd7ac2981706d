package query

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/dialect"
	"github.com/Konsultn-Engineering/sqlview/schema"
	"github.com/Konsultn-Engineering/sqlview/sqltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openSchool creates the school tables in an in-memory SQLite database and
// fills them through generated INSERT statements.
func openSchool(t *testing.T) *Factory {
	t.Helper()
	ctx := context.Background()

	root := schema.NewRoot("School")
	class := root.Record("Class",
		schema.Field("id", sqltype.PrimaryKey(sqltype.Int)),
		schema.Field("title", sqltype.Length(sqltype.VarChar, 64)),
	)
	club := root.Record("Club",
		schema.Field("id", sqltype.PrimaryKey(sqltype.Int)),
		schema.Field("name", sqltype.Text),
	)
	root.Record("Student",
		schema.Field("id", sqltype.PrimaryKey(sqltype.Int)),
		schema.Field("name", sqltype.Length(sqltype.Text, 255)),
		schema.Field("age", sqltype.Int),
		schema.Field("class", class),
		schema.Field("club", sqltype.Optional(sqltype.ForeignKey(club))),
	)

	sdb, err := schema.New(schema.WithDialect(dialect.NewSQLiteDialect())).Database(root)
	require.NoError(t, err)

	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	exec := database.NewSqlDatabase(conn, database.WithStatementCache(16))
	t.Cleanup(func() { exec.Close() })

	stmts, err := sdb.CreateSQL(true)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := exec.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	insert := func(table string, args ...any) {
		t.Helper()
		tbl, err := sdb.Table(table)
		require.NoError(t, err)
		row, err := schema.NewRow(tbl, args, nil)
		require.NoError(t, err)
		query, params, err := row.InsertSQL(nil)
		require.NoError(t, err)
		_, err = exec.ExecContext(ctx, query, params...)
		require.NoError(t, err)
	}
	insert("t_class", 1, "Maths")
	insert("t_class", 2, "Physics")
	insert("t_club", 1, "Chess")
	insert("t_student", 1, "Ann", 18, 1, 1)
	insert("t_student", 2, "Bob", 18, 2, nil)
	insert("t_student", 3, "Cid", 19, 1, nil)

	return NewFactory(sdb, WithExecutor(exec))
}

func TestSQLiteJoinedRows(t *testing.T) {
	f := openSchool(t)
	ctx := context.Background()

	rows, err := f.Table("t_student").Eq("t_student", "age", 18).Orders("id").Maps(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ann", rows[0]["t_student__name"])
	assert.Equal(t, "Maths", rows[0]["t_class__title"])
	assert.Equal(t, "Chess", rows[0]["t_club__name"])

	// the club join is a LEFT JOIN, so Bob is kept without a club
	assert.Equal(t, "Bob", rows[1]["t_student__name"])
	assert.Equal(t, "Physics", rows[1]["t_class__title"])
	assert.Nil(t, rows[1]["t_club__name"])
}

func TestSQLiteOneCountPages(t *testing.T) {
	f := openSchool(t)
	ctx := context.Background()

	row, err := f.Table("t_student").Index(3).One(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cid", row["t_student__name"])

	_, err = f.Table("t_student").ID(42).One(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := f.Table("t_student").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = f.Table("t_student").Index(From(1)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	pages, err := f.Table("t_student").Orders("id").Pages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	var names []any
	for _, page := range pages {
		rows, err := page.Maps(ctx)
		require.NoError(t, err)
		for _, r := range rows {
			names = append(names, r["t_student__name"])
		}
	}
	assert.Equal(t, []any{"Ann", "Bob", "Cid"}, names)
}

func TestSQLiteChildJoin(t *testing.T) {
	f := openSchool(t)
	ctx := context.Background()

	rows, err := f.Table("t_class").
		JoinChildren(false).
		Term("t_class.title", "=", "Physics").
		Maps(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0]["t_class__id"])

	rows, err = f.Table("t_class").Orders("t_student.id").Maps(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Maths", rows[0]["t_class__title"])
	assert.Equal(t, "Physics", rows[1]["t_class__title"])
}
