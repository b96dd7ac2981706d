package query

import (
	"context"
	"fmt"

	"github.com/Konsultn-Engineering/sqlview/ast"
	"github.com/Konsultn-Engineering/sqlview/database"
	"github.com/Konsultn-Engineering/sqlview/visitor"
)

// Cursor iterates the rows of one executed view. Rows are read lazily; the
// cursor must be closed.
type Cursor struct {
	rows    database.Rows
	columns []string
	current map[string]any
	err     error
}

// Next advances to the next row and scans it.
func (c *Cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	c.current, c.err = scanMap(c.rows, c.columns)
	return c.err == nil
}

// Row returns the current row keyed by result column name.
func (c *Cursor) Row() map[string]any { return c.current }

// Columns returns the result column names, the aliases of the view's columns.
func (c *Cursor) Columns() []string { return c.columns }

func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *Cursor) Close() error { return c.rows.Close() }

// Rows executes the view and returns a cursor over its rows.
func (v *View) Rows(ctx context.Context) (*Cursor, error) {
	sql, args, err := v.Build()
	if err != nil {
		return nil, err
	}
	exec, err := v.executor()
	if err != nil {
		return nil, err
	}

	rows, err := exec.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: execute %s: %w", v.table.Name(), err)
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &Cursor{rows: rows, columns: columns}, nil
}

// Maps executes the view and reads every row.
func (v *View) Maps(ctx context.Context) ([]map[string]any, error) {
	sql, args, err := v.Build()
	if err != nil {
		return nil, err
	}
	exec, err := v.executor()
	if err != nil {
		return nil, err
	}

	rows, err := exec.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: execute %s: %w", v.table.Name(), err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// One returns the only row of the view. It fails with ErrNotFound when there
// is none and ErrNotSingular when there is more than one.
func (v *View) One(ctx context.Context) (map[string]any, error) {
	probe := v.Clone()
	if probe.limit == nil || *probe.limit > 2 {
		probe.Limit(2)
	}

	rows, err := probe.Maps(ctx)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return rows[0], nil
	}
	return nil, ErrNotSingular
}

// Count returns the number of rows the view yields, limit and offset
// included.
func (v *View) Count(ctx context.Context) (int64, error) {
	stmt, err := v.Statement()
	if err != nil {
		return 0, err
	}
	exec, err := v.executor()
	if err != nil {
		return 0, err
	}

	count := &ast.SelectStmt{
		Columns: []ast.Node{ast.Count(nil)},
		From:    ast.NewSubqueryExpr(stmt, "view_count"),
	}
	sql, args, err := visitor.Render(v.factory.dialect, count)
	if err != nil {
		return 0, err
	}

	rows, err := exec.QueryContext(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("query: count %s: %w", v.table.Name(), err)
	}
	defer rows.Close()

	var n int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, ErrNotFound
	}
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}
	return n, rows.Err()
}

// Pages splits the rows of the view into views of size rows each. The last
// page may be shorter; a view without rows has no pages.
func (v *View) Pages(ctx context.Context, size int) ([]*View, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: page size %d", ErrInvalidRange, size)
	}
	total, err := v.Count(ctx)
	if err != nil {
		return nil, err
	}

	base := 0
	if v.offset != nil {
		base = *v.offset
	}

	pages := make([]*View, 0, (int(total)+size-1)/size)
	for start := 0; start < int(total); start += size {
		n := size
		if rest := int(total) - start; rest < n {
			n = rest
		}
		pages = append(pages, v.Clone().Offset(base+start).Limit(n))
	}
	return pages, nil
}

func (v *View) executor() (database.Querier, error) {
	if v.factory.exec == nil {
		return nil, ErrNoExecutor
	}
	return v.factory.exec, nil
}
