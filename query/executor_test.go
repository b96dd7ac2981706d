package query

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentsByAge = "SELECT " + studentColumns + " FROM `t_student` WHERE `t_student`.`age` = ?"

var studentAliases = []string{"t_student__id", "t_student__age", "t_student__name"}

func mockFactory(t *testing.T) (*Factory, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFactory(studentDB(t), WithExecutor(database.NewSqlDatabase(db))), mock
}

func TestMaps(t *testing.T) {
	f, mock := mockFactory(t)
	mock.ExpectQuery(studentsByAge).
		WithArgs(18).
		WillReturnRows(sqlmock.NewRows(studentAliases).
			AddRow(int64(1), int64(18), []byte("Ann")).
			AddRow(int64(2), int64(18), "Bob"))

	rows, err := f.Table("t_student").Eq("t_student", "age", 18).Maps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"t_student__id": int64(1), "t_student__age": int64(18), "t_student__name": "Ann"},
		{"t_student__id": int64(2), "t_student__age": int64(18), "t_student__name": "Bob"},
	}, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRowsCursor(t *testing.T) {
	f, mock := mockFactory(t)
	mock.ExpectQuery(studentsByAge).
		WithArgs(18).
		WillReturnRows(sqlmock.NewRows(studentAliases).
			AddRow(int64(1), int64(18), "Ann").
			AddRow(int64(2), int64(18), "Bob"))

	cur, err := f.Table("t_student").Eq("t_student", "age", 18).Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, studentAliases, cur.Columns())

	var names []any
	for cur.Next() {
		names = append(names, cur.Row()["t_student__name"])
	}
	require.NoError(t, cur.Err())
	require.NoError(t, cur.Close())
	assert.Equal(t, []any{"Ann", "Bob"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOne(t *testing.T) {
	query := "SELECT " + studentColumns + " FROM `t_student` WHERE `t_student`.`id` = ? LIMIT ?"

	t.Run("single row", func(t *testing.T) {
		f, mock := mockFactory(t)
		mock.ExpectQuery(query).WithArgs(7, 2).
			WillReturnRows(sqlmock.NewRows(studentAliases).AddRow(int64(7), int64(20), "Ann"))

		row, err := f.Table("t_student").ID(7).One(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(7), row["t_student__id"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		f, mock := mockFactory(t)
		mock.ExpectQuery(query).WithArgs(7, 2).WillReturnRows(sqlmock.NewRows(studentAliases))

		_, err := f.Table("t_student").ID(7).One(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("several rows", func(t *testing.T) {
		f, mock := mockFactory(t)
		mock.ExpectQuery(query).WithArgs(7, 2).
			WillReturnRows(sqlmock.NewRows(studentAliases).
				AddRow(int64(7), int64(20), "Ann").
				AddRow(int64(7), int64(21), "Bob"))

		_, err := f.Table("t_student").ID(7).One(context.Background())
		assert.ErrorIs(t, err, ErrNotSingular)
	})

	t.Run("keeps a smaller limit", func(t *testing.T) {
		f, mock := mockFactory(t)
		mock.ExpectQuery("SELECT " + studentColumns + " FROM `t_student` LIMIT ?").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(studentAliases).AddRow(int64(1), int64(20), "Ann"))

		v := f.Table("t_student").Limit(1)
		_, err := v.One(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, *v.limit)
	})
}

func TestCount(t *testing.T) {
	f, mock := mockFactory(t)
	mock.ExpectQuery("SELECT COUNT(*) FROM (" + studentsByAge + ") AS `view_count`").
		WithArgs(18).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(5)))

	n, err := f.Table("t_student").Eq("t_student", "age", 18).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPages(t *testing.T) {
	f, mock := mockFactory(t)
	mock.ExpectQuery("SELECT COUNT(*) FROM (" + studentsByAge + " LIMIT 18446744073709551615 OFFSET ?) AS `view_count`").
		WithArgs(18, 10).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(5)))

	pages, err := f.Table("t_student").Eq("t_student", "age", 18).Offset(10).Pages(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	want := [][]any{{18, 2, 10}, {18, 2, 12}, {18, 1, 14}}
	for i, page := range pages {
		sql, args, err := page.Build()
		require.NoError(t, err)
		assert.Equal(t, studentsByAge+" LIMIT ? OFFSET ?", sql)
		assert.Equal(t, want[i], args)
	}
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = f.Table("t_student").Pages(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecutionErrors(t *testing.T) {
	t.Run("no executor", func(t *testing.T) {
		f := NewFactory(studentDB(t))
		_, err := f.Table("t_student").Maps(context.Background())
		assert.ErrorIs(t, err, ErrNoExecutor)
	})

	t.Run("unbound view", func(t *testing.T) {
		f, mock := mockFactory(t)
		_, err := f.New().Rows(context.Background())
		assert.ErrorIs(t, err, ErrTableNotSet)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		f, mock := mockFactory(t)
		boom := errors.New("boom")
		mock.ExpectQuery("SELECT " + studentColumns + " FROM `t_student`").WillReturnError(boom)

		_, err := f.Table("t_student").Maps(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}
