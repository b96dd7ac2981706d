package query

import (
	"fmt"
	"strings"

	"github.com/Konsultn-Engineering/sqlview/ast"
	"github.com/Konsultn-Engineering/sqlview/schema"
	"github.com/Konsultn-Engineering/sqlview/visitor"
)

// View accumulates the clauses of one SELECT over a bound table. Clause calls
// on an unbound view record a *TableNotSetError; every recorded error is kept
// and Build returns the first one. A View is owned by one caller and is not
// safe for concurrent mutation.
type View struct {
	BaseBuilder

	factory  *Factory
	table    *schema.Table
	columns  []ast.Node
	where    ast.Node
	groups   []ast.Node
	orders   []*ast.OrderByClause
	limit    *int
	offset   *int
	parents  bool
	children bool
}

// Table binds the view to table, a *schema.Table or a table name. Rebinding
// keeps the accumulated clauses.
func (v *View) Table(table any) *View {
	t, err := v.resolveTable("Table", table)
	if err != nil {
		v.AddError(err)
		return v
	}
	v.table = t
	return v
}

// Bound returns the bound table, or nil.
func (v *View) Bound() *schema.Table { return v.table }

// Where ANDs exprs into the filter.
func (v *View) Where(exprs ...ast.Node) *View {
	if !v.bound("Where") {
		return v
	}
	for _, expr := range exprs {
		if expr == nil {
			v.AddError(&MalformedFilterError{Op: "Where", Key: expr, Reason: "nil expression"})
			continue
		}
		v.where = ast.And(v.where, expr)
	}
	return v
}

// Term adds "left op right" to the filter. left is an expression or a column
// name, either "table.column" or a column of the bound table.
func (v *View) Term(left any, op string, right any) *View {
	if !v.bound("Term") {
		return v
	}
	l, err := v.resolveExpr("Term", left)
	if err != nil {
		v.AddError(err)
		return v
	}
	expr, err := ast.Compare(op, l, right)
	if err != nil {
		v.AddError(err)
		return v
	}
	return v.Where(expr)
}

// Eq adds one equality term per column/value pair, comparing columns of table
// with literal values: Eq("t_student", "age", 18, "name", "Ann").
func (v *View) Eq(table any, pairs ...any) *View {
	if !v.bound("Eq") {
		return v
	}
	t, err := v.resolveTable("Eq", table)
	if err != nil {
		v.AddError(err)
		return v
	}
	if len(pairs)%2 != 0 {
		v.AddError(&MalformedFilterError{Op: "Eq", Key: pairs, Reason: "expected column/value pairs"})
		return v
	}

	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			v.AddError(&MalformedFilterError{Op: "Eq", Key: pairs[i], Reason: "column name must be a string"})
			continue
		}
		col, err := t.Column(name)
		if err != nil {
			v.AddError(err)
			continue
		}
		v.Where(col.Ref().Eq(pairs[i+1]))
	}
	return v
}

// ID filters the bound table by its primary key.
func (v *View) ID(value any) *View {
	if !v.bound("ID") {
		return v
	}
	pk := v.table.PrimaryKey()
	if pk == nil {
		v.AddError(fmt.Errorf("%w: %s has no primary key", schema.ErrColumnNotFound, v.table.Name()))
		return v
	}
	return v.Eq(v.table, pk.Name(), value)
}

// Column appends projections after the columns of the bound and joined tables.
func (v *View) Column(exprs ...ast.Node) *View {
	if !v.bound("Column") {
		return v
	}
	for _, expr := range exprs {
		if expr == nil {
			v.AddError(&MalformedFilterError{Op: "Column", Key: expr, Reason: "nil expression"})
			continue
		}
		v.columns = append(v.columns, expr)
	}
	return v
}

// Group appends GROUP BY terms: expressions or column names.
func (v *View) Group(columns ...any) *View {
	if !v.bound("Group") {
		return v
	}
	for _, c := range columns {
		expr, err := v.resolveExpr("Group", c)
		if err != nil {
			v.AddError(err)
			continue
		}
		v.groups = append(v.groups, expr)
	}
	return v
}

// Orders appends ORDER BY terms. A term is an *ast.OrderByClause, an
// expression (ascending) or a column name; a "-" prefix on a name sorts it
// descending.
func (v *View) Orders(terms ...any) *View {
	if !v.bound("Orders") {
		return v
	}
	for _, term := range terms {
		switch t := term.(type) {
		case *ast.OrderByClause:
			if t == nil || t.Expr == nil {
				v.AddError(&MalformedFilterError{Op: "Orders", Key: term, Reason: "empty order term"})
				continue
			}
			v.orders = append(v.orders, t)
		case string:
			desc := strings.HasPrefix(t, "-")
			expr, err := v.resolveExpr("Orders", strings.TrimLeft(t, "+-"))
			if err != nil {
				v.AddError(err)
				continue
			}
			v.orders = append(v.orders, &ast.OrderByClause{Expr: expr, Desc: desc})
		default:
			expr, err := v.resolveExpr("Orders", term)
			if err != nil {
				v.AddError(err)
				continue
			}
			v.orders = append(v.orders, ast.Asc(expr))
		}
	}
	return v
}

// Limit sets the row count, replacing any earlier one.
func (v *View) Limit(n int) *View {
	if !v.bound("Limit") {
		return v
	}
	if n < 0 {
		v.AddError(fmt.Errorf("%w: negative limit %d", ErrInvalidRange, n))
		return v
	}
	v.limit = &n
	return v
}

// Offset sets the number of skipped rows, replacing any earlier one.
func (v *View) Offset(n int) *View {
	if !v.bound("Offset") {
		return v
	}
	if n < 0 {
		v.AddError(fmt.Errorf("%w: negative offset %d", ErrInvalidRange, n))
		return v
	}
	v.offset = &n
	return v
}

func (v *View) ClearLimit() *View {
	v.limit = nil
	return v
}

func (v *View) ClearOffset() *View {
	v.offset = nil
	return v
}

// JoinParents sets whether the tables referenced by the bound table's foreign
// keys are joined.
func (v *View) JoinParents(enabled bool) *View {
	v.parents = enabled
	return v
}

// JoinChildren sets whether the tables whose foreign keys reference the bound
// table are joined.
func (v *View) JoinChildren(enabled bool) *View {
	v.children = enabled
	return v
}

// Index applies key the way indexing the view would: an expression filters,
// an integer selects by primary key and a Slice sets offset and limit.
func (v *View) Index(key any) *View {
	if !v.bound("Index") {
		return v
	}
	switch k := key.(type) {
	case ast.Node:
		return v.Where(k)
	case Slice:
		offset, limit, err := k.bounds()
		if err != nil {
			v.AddError(err)
			return v
		}
		if offset != nil {
			v.Offset(*offset)
		}
		if limit != nil {
			v.Limit(*limit)
		}
		return v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v.ID(k)
	}
	v.AddError(&MalformedFilterError{Op: "Index", Key: key})
	return v
}

// Clone returns an independent copy of the view. Expressions are immutable
// and shared.
func (v *View) Clone() *View {
	c := *v
	c.errors = append([]error(nil), v.errors...)
	c.columns = append([]ast.Node(nil), v.columns...)
	c.groups = append([]ast.Node(nil), v.groups...)
	c.orders = append([]*ast.OrderByClause(nil), v.orders...)
	if v.limit != nil {
		n := *v.limit
		c.limit = &n
	}
	if v.offset != nil {
		n := *v.offset
		c.offset = &n
	}
	return &c
}

// Statement returns the SELECT statement the view renders, or the first
// recorded error.
func (v *View) Statement() (*ast.SelectStmt, error) {
	if err := v.GetFirstError(); err != nil {
		return nil, err
	}
	if v.table == nil {
		return nil, &TableNotSetError{Op: "Build"}
	}

	links, err := v.joins()
	if err != nil {
		return nil, err
	}

	stmt := &ast.SelectStmt{
		From:    ast.NewTable("", v.table.Name(), ""),
		OrderBy: append([]*ast.OrderByClause(nil), v.orders...),
	}

	stmt.Columns = appendColumns(stmt.Columns, v.table, v.table.Name())
	for _, j := range links {
		stmt.Columns = appendColumns(stmt.Columns, j.Table, j.alias)

		joinType := ast.JoinLeft
		if j.NotNull() {
			joinType = ast.JoinInner
		}
		on := ast.Col(v.table.Name(), j.Local.Name()).Eq(ast.Col(j.alias, j.Remote.Name()))
		stmt.Joins = append(stmt.Joins, ast.NewJoinClause(joinType, ast.NewTable("", j.Table.Name(), j.alias), on))
	}
	stmt.Columns = append(stmt.Columns, v.columns...)

	if v.where != nil {
		stmt.Where = &ast.WhereClause{Condition: v.where}
	}
	if len(v.groups) > 0 {
		stmt.GroupBy = &ast.GroupByClause{Exprs: append([]ast.Node(nil), v.groups...)}
	}
	if v.limit != nil || v.offset != nil {
		stmt.Limit = ast.NewLimitClause(v.limit, v.offset)
	}
	return stmt, nil
}

// Build renders the view. It does not change the view and may be called any
// number of times.
func (v *View) Build() (string, []any, error) {
	stmt, err := v.Statement()
	if err != nil {
		return "", nil, err
	}
	return visitor.Render(v.factory.dialect, stmt)
}

// Explain renders the view with its parameters written in place, for logs
// and debugging. The result must not be executed.
func (v *View) Explain() (string, error) {
	stmt, err := v.Statement()
	if err != nil {
		return "", err
	}
	return visitor.Inline(v.factory.dialect, stmt)
}

func (v *View) String() string {
	sql, err := v.Explain()
	if err != nil {
		return "<invalid view: " + err.Error() + ">"
	}
	return sql
}

// join is a link plus the name the joined table is referenced by.
type join struct {
	schema.TableLink
	alias string
}

// joins returns the links to join, skipping links back to the bound table.
// The first link to a table references it by name; further links to the same
// table get the alias "<table>_2", "<table>_3" and so on.
func (v *View) joins() ([]join, error) {
	var candidates []schema.TableLink
	if v.parents {
		parents, err := v.table.ParentLinks()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, parents...)
	}
	if v.children {
		children, err := v.table.ChildLinks()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, children...)
	}

	used := map[string]bool{v.table.Name(): true}
	for _, l := range candidates {
		used[l.Table.Name()] = true
	}

	seen := make(map[*schema.Table]bool)
	joins := make([]join, 0, len(candidates))
	for _, l := range candidates {
		if l.Table == v.table {
			continue
		}
		alias := l.Table.Name()
		if seen[l.Table] {
			for n := 2; used[alias]; n++ {
				alias = fmt.Sprintf("%s_%d", l.Table.Name(), n)
			}
			used[alias] = true
		}
		seen[l.Table] = true
		joins = append(joins, join{TableLink: l, alias: alias})
	}
	return joins, nil
}

// appendColumns projects the columns of t referenced through alias, each
// named "<alias>__<column>".
func appendColumns(dst []ast.Node, t *schema.Table, alias string) []ast.Node {
	for _, c := range t.Columns() {
		dst = append(dst, ast.Col(alias, c.Name()).As(alias+"__"+c.Name()))
	}
	return dst
}

func (v *View) bound(op string) bool {
	if v.table == nil {
		v.AddError(&TableNotSetError{Op: op})
		return false
	}
	return true
}

func (v *View) resolveTable(op string, table any) (*schema.Table, error) {
	switch t := table.(type) {
	case *schema.Table:
		if t == nil {
			return nil, &MalformedFilterError{Op: op, Key: table, Reason: "nil table"}
		}
		return t, nil
	case string:
		return v.factory.db.Table(t)
	case *schema.Record:
		return v.factory.db.Context().Table(t)
	}
	return nil, &MalformedFilterError{Op: op, Key: table, Reason: "expected a table, record or table name"}
}

// resolveExpr turns an expression or column name into an expression. Names
// containing a dot are looked up in the database, others in the bound table.
func (v *View) resolveExpr(op string, e any) (ast.Node, error) {
	switch x := e.(type) {
	case ast.Node:
		return x, nil
	case *schema.Column:
		return x.Ref(), nil
	case string:
		var (
			col *schema.Column
			err error
		)
		if strings.Contains(x, ".") {
			col, err = v.factory.db.Column(x)
		} else {
			col, err = v.table.Column(x)
		}
		if err != nil {
			return nil, err
		}
		return col.Ref(), nil
	}
	return nil, &MalformedFilterError{Op: op, Key: e, Reason: "expected an expression or column name"}
}
