// Package visitor renders ast trees to SQL text and an ordered argument list.
package visitor

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Konsultn-Engineering/sqlview/ast"
	"github.com/Konsultn-Engineering/sqlview/dialect"
)

var ErrEmptyExpression = errors.New("visitor: empty expression")

var visitorPool = sync.Pool{
	New: func() any {
		return &SQLVisitor{
			args: make([]any, 0, 8),
		}
	},
}

// SQLVisitor is single-use state for one render; it is not safe for
// concurrent use.
type SQLVisitor struct {
	sb      strings.Builder
	args    []any
	dialect dialect.Dialect
	inline  bool // render literals instead of placeholders
}

func NewSQLVisitor(d dialect.Dialect) *SQLVisitor {
	v := visitorPool.Get().(*SQLVisitor)
	v.dialect = d
	v.Reset()
	return v
}

func (v *SQLVisitor) Release() {
	v.dialect = nil
	v.inline = false
	v.Reset()
	visitorPool.Put(v)
}

func (v *SQLVisitor) Reset() {
	v.sb.Reset()
	v.args = v.args[:0]
}

// Build renders root. The returned args slice is owned by the caller.
func (v *SQLVisitor) Build(root ast.Node) (string, []any, error) {
	v.Reset()
	if root == nil {
		return "", nil, ErrEmptyExpression
	}
	if err := root.Accept(v); err != nil {
		return "", nil, err
	}

	var args []any
	if len(v.args) > 0 {
		args = make([]any, len(v.args))
		copy(args, v.args)
	}
	return v.sb.String(), args, nil
}

// Render is a convenience wrapper around a pooled visitor.
func Render(d dialect.Dialect, root ast.Node) (string, []any, error) {
	v := NewSQLVisitor(d)
	defer v.Release()
	return v.Build(root)
}

// Inline renders root with every literal written in place. The result is for
// logs and explanations; it must never be executed.
func Inline(d dialect.Dialect, root ast.Node) (string, error) {
	v := NewSQLVisitor(d)
	defer v.Release()
	v.inline = true
	sql, _, err := v.Build(root)
	return sql, err
}

func (v *SQLVisitor) Arg(a any) {
	v.args = append(v.args, a)
}

func (v *SQLVisitor) VisitSelect(s *ast.SelectStmt) error {
	if len(s.Columns) == 0 || s.From == nil {
		return fmt.Errorf("%w: select needs columns and a source", ErrEmptyExpression)
	}

	v.sb.WriteString("SELECT ")
	for i, col := range s.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := col.Accept(v); err != nil {
			return err
		}
	}

	v.sb.WriteString(" FROM ")
	if err := s.From.Accept(v); err != nil {
		return err
	}

	for _, join := range s.Joins {
		if err := join.Accept(v); err != nil {
			return err
		}
	}

	if s.Where != nil {
		if err := s.Where.Accept(v); err != nil {
			return err
		}
	}

	if s.GroupBy != nil {
		if err := s.GroupBy.Accept(v); err != nil {
			return err
		}
	}

	if len(s.OrderBy) > 0 {
		v.sb.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				v.sb.WriteString(", ")
			}
			if err := o.Accept(v); err != nil {
				return err
			}
		}
	}

	if s.Limit != nil {
		if err := s.Limit.Accept(v); err != nil {
			return err
		}
	}

	return nil
}

func (v *SQLVisitor) VisitInsert(stmt *ast.InsertStmt) error {
	if len(stmt.Columns) == 0 || len(stmt.Values) == 0 {
		return fmt.Errorf("%w: insert needs columns and values", ErrEmptyExpression)
	}

	v.sb.WriteString("INSERT INTO ")
	if err := stmt.Table.Accept(v); err != nil {
		return err
	}
	v.sb.WriteString(" (")
	for i, c := range stmt.Columns {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteString(v.dialect.QuoteIdentifier(c))
	}
	v.sb.WriteString(") VALUES ")

	for i, row := range stmt.Values {
		if len(row) != len(stmt.Columns) {
			return fmt.Errorf("visitor: insert row %d has %d values for %d columns", i, len(row), len(stmt.Columns))
		}
		if i > 0 {
			v.sb.WriteString(", ")
		}
		v.sb.WriteByte('(')
		for j, val := range row {
			if j > 0 {
				v.sb.WriteString(", ")
			}
			if err := val.Accept(v); err != nil {
				return err
			}
		}
		v.sb.WriteByte(')')
	}
	return nil
}

// VisitCreateTable renders one column per line. Column comments are not rendered.
func (v *SQLVisitor) VisitCreateTable(stmt *ast.CreateTableStmt) error {
	name := v.dialect.QuoteIdentifier(stmt.Table.Name)
	if stmt.DropIfExists {
		v.sb.WriteString("DROP TABLE IF EXISTS ")
		v.sb.WriteString(name)
		v.sb.WriteString(";\n")
	}

	v.sb.WriteString("CREATE TABLE ")
	v.sb.WriteString(name)
	v.sb.WriteString("(\n")
	for i, col := range stmt.Columns {
		if i > 0 {
			v.sb.WriteString(",\n")
		}
		v.sb.WriteString("  ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(col.Name))
		v.sb.WriteByte(' ')
		v.sb.WriteString(col.SQLType)
	}
	v.sb.WriteString("\n)")
	return nil
}

func (v *SQLVisitor) VisitColumn(c *ast.Column) error {
	if c.Table != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Table))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(c.Name))

	if c.Alias != "" && c.Alias != c.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(c.Alias))
	}

	return nil
}

func (v *SQLVisitor) VisitTable(t *ast.Table) error {
	if t.Schema != "" {
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Schema))
		v.sb.WriteByte('.')
	}
	v.sb.WriteString(v.dialect.QuoteIdentifier(t.Name))

	if t.Alias != "" && t.Alias != t.Name {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(t.Alias))
	}

	return nil
}

func (v *SQLVisitor) VisitValue(val *ast.Value) error {
	if v.inline {
		v.sb.WriteString(v.dialect.RenderValue(val.Val))
		return nil
	}
	v.Arg(val.Val)
	v.sb.WriteString(v.dialect.Placeholder(len(v.args)))
	return nil
}

func (v *SQLVisitor) VisitStar(*ast.Star) error {
	v.sb.WriteByte('*')
	return nil
}

func (v *SQLVisitor) VisitFunction(f *ast.Function) error {
	v.sb.WriteString(f.Name)
	v.sb.WriteByte('(')
	for i, arg := range f.Args {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := arg.Accept(v); err != nil {
			return err
		}
	}
	v.sb.WriteByte(')')

	if f.Alias != "" {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(f.Alias))
	}
	return nil
}

func (v *SQLVisitor) VisitGroupedExpr(g *ast.GroupedExpr) error {
	v.sb.WriteByte('(')
	err := g.Expr.Accept(v)
	v.sb.WriteByte(')')
	return err
}

func (v *SQLVisitor) VisitBinaryExpr(expr *ast.BinaryExpr) error {
	if err := expr.Left.Accept(v); err != nil {
		return err
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(expr.Operator)
	v.sb.WriteByte(' ')

	return expr.Right.Accept(v)
}

// VisitConjunction joins terms with AND, parenthesizing nested multi-term
// conjunctions.
func (v *SQLVisitor) VisitConjunction(c *ast.Conjunction) error {
	if len(c.Terms) == 0 {
		return fmt.Errorf("%w: conjunction without terms", ErrEmptyExpression)
	}
	for i, term := range c.Terms {
		if i > 0 {
			v.sb.WriteString(" AND ")
		}
		if nested, ok := term.(*ast.Conjunction); ok && len(nested.Terms) > 1 {
			term = &ast.GroupedExpr{Expr: nested}
		}
		if err := term.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

func (v *SQLVisitor) VisitSubqueryExpr(s *ast.SubqueryExpr) error {
	v.sb.WriteByte('(')
	if err := s.Stmt.Accept(v); err != nil {
		return err
	}
	v.sb.WriteByte(')')

	if s.Alias != "" {
		v.sb.WriteString(" AS ")
		v.sb.WriteString(v.dialect.QuoteIdentifier(s.Alias))
	}
	return nil
}

func (v *SQLVisitor) VisitWhereClause(clause *ast.WhereClause) error {
	if clause == nil || clause.Condition == nil {
		return nil
	}

	v.sb.WriteString(" WHERE ")
	return clause.Condition.Accept(v)
}

func (v *SQLVisitor) VisitJoinClause(clause *ast.JoinClause) error {
	if clause == nil || clause.Table == nil {
		return nil
	}

	v.sb.WriteByte(' ')
	v.sb.WriteString(joinKeyword(clause.JoinType))
	v.sb.WriteByte(' ')
	if err := clause.Table.Accept(v); err != nil {
		return err
	}

	if clause.On != nil {
		v.sb.WriteString(" ON ")
		return clause.On.Accept(v)
	}
	return nil
}

// --- helpers ---

func joinKeyword(t ast.JoinType) string {
	switch t {
	case ast.JoinInner:
		return "INNER JOIN"
	case ast.JoinLeft:
		return "LEFT JOIN"
	case ast.JoinRight:
		return "RIGHT JOIN"
	case ast.JoinFull:
		return "FULL JOIN"
	case ast.JoinCross:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

func (v *SQLVisitor) VisitGroupBy(g *ast.GroupByClause) error {
	if len(g.Exprs) == 0 {
		return nil
	}
	v.sb.WriteString(" GROUP BY ")
	for i, expr := range g.Exprs {
		if i > 0 {
			v.sb.WriteString(", ")
		}
		if err := unaliased(expr).Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// unaliased strips select-list aliases from grouping and ordering terms.
func unaliased(n ast.Node) ast.Node {
	switch x := n.(type) {
	case *ast.Column:
		if x.Alias != "" {
			return x.As("")
		}
	case *ast.Function:
		if x.Alias != "" {
			return x.As("")
		}
	}
	return n
}

func (v *SQLVisitor) VisitOrderByClause(clause *ast.OrderByClause) error {
	if err := unaliased(clause.Expr).Accept(v); err != nil {
		return err
	}

	if clause.Desc {
		v.sb.WriteString(" DESC")
	} else {
		v.sb.WriteString(" ASC")
	}
	return nil
}

// VisitLimitClause binds the row count and offset as parameters. The
// dialect's unbounded LIMIT is a keyword-level constant and is written as is.
func (v *SQLVisitor) VisitLimitClause(clause *ast.LimitClause) error {
	switch {
	case clause.Count != nil:
		v.sb.WriteString(" LIMIT ")
		if err := v.VisitValue(ast.NewValue(*clause.Count)); err != nil {
			return err
		}
	case clause.Offset != nil:
		if n, ok := v.dialect.UnboundedLimit(); ok {
			v.sb.WriteString(" LIMIT ")
			v.sb.WriteString(n)
		}
	}

	if clause.Offset != nil {
		v.sb.WriteString(" OFFSET ")
		return v.VisitValue(ast.NewValue(*clause.Offset))
	}
	return nil
}

var _ ast.Visitor = (*SQLVisitor)(nil)
