package schema

import (
	"sort"

	"github.com/Konsultn-Engineering/sqlview/ast"
	"github.com/Konsultn-Engineering/sqlview/dialect"
	"github.com/Konsultn-Engineering/sqlview/sqltype"
	"github.com/Konsultn-Engineering/sqlview/visitor"
)

// Row holds one boxed value per column of its table.
type Row struct {
	table  *Table
	values []sqltype.Value
}

// NewRow assigns args to columns by position and named values by column
// name. Columns given neither take their type's default value. A column may
// not be given both ways.
func NewRow(table *Table, args []any, named map[string]any) (*Row, error) {
	if len(args) > len(table.columns) {
		return nil, &ValueError{Table: table.name, Index: len(table.columns), Err: ErrUnknownColumn}
	}
	if err := checkNames(table, named); err != nil {
		return nil, err
	}

	row := &Row{table: table, values: make([]sqltype.Value, len(table.columns))}
	for i, col := range table.columns {
		raw, inNamed := named[col.name]
		inArgs := i < len(args)

		switch {
		case inArgs && inNamed:
			return nil, col.valueError(ErrDuplicateValue)
		case inArgs:
			raw = args[i]
		case !inNamed:
			if !col.typ.HasDefault() {
				return nil, col.valueError(ErrMissingValue)
			}
			v, err := col.typ.DefaultValue()
			if err != nil {
				return nil, col.valueError(err)
			}
			raw = v
		}

		if raw == nil {
			row.values[i] = col.typ.Null()
			continue
		}
		v, err := col.typ.New(raw)
		if err != nil {
			return nil, col.valueError(err)
		}
		row.values[i] = v
	}
	return row, nil
}

func checkNames(table *Table, named map[string]any) error {
	var unknown []string
	for name := range named {
		if _, ok := table.byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &ValueError{Table: table.name, Column: unknown[0], Index: -1, Err: ErrUnknownColumn}
}

func (c *Column) valueError(err error) error {
	return &ValueError{Table: c.table.name, Column: c.name, Index: c.index, Err: err}
}

func (r *Row) Table() *Table { return r.table }

// Get returns the raw value of a column.
func (r *Row) Get(column string) (any, bool) {
	c, ok := r.table.byName[column]
	if !ok {
		return nil, false
	}
	return r.values[c.index].Interface(), true
}

// Values returns the raw values in column order.
func (r *Row) Values() []any {
	out := make([]any, len(r.values))
	for i, v := range r.values {
		out[i] = v.Interface()
	}
	return out
}

func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, c := range r.table.columns {
		out[c.name] = r.values[i].Interface()
	}
	return out
}

// Validate checks every value against its column type, NOT NULL included.
func (r *Row) Validate() error {
	for i, c := range r.table.columns {
		if err := c.typ.Validate(r.values[i].Interface()); err != nil {
			return c.valueError(err)
		}
	}
	return nil
}

// InsertSQL renders an INSERT of the row. A nil dialect uses the table's.
func (r *Row) InsertSQL(d dialect.Dialect) (string, []any, error) {
	if d == nil {
		d = r.table.ctx.dialect
	}
	cols := make([]string, len(r.table.columns))
	vals := make([]ast.Node, len(r.values))
	for i, c := range r.table.columns {
		cols[i] = c.name
		vals[i] = ast.NewValue(r.values[i].Interface())
	}
	stmt := &ast.InsertStmt{
		Table:   ast.NewTable("", r.table.name, ""),
		Columns: cols,
		Values:  [][]ast.Node{vals},
	}
	return visitor.Render(d, stmt)
}
