package visitor

import (
	"testing"

	"github.com/Konsultn-Engineering/sqlview/ast"
	"github.com/Konsultn-Engineering/sqlview/dialect"
)

func BenchmarkVisitorBuild(b *testing.B) {
	visitor := NewSQLVisitor(dialect.NewMySQLDialect())
	defer visitor.Release()

	stmt := &ast.SelectStmt{
		Columns: []ast.Node{
			ast.Col("users", "id"),
			ast.Col("users", "first_name"),
			ast.Col("users", "email"),
			ast.Col("users", "created_at"),
			ast.Col("users", "updated_at"),
		},
		From:  ast.NewTable("", "users", ""),
		Where: &ast.WhereClause{Condition: ast.Col("users", "id").Eq(123)},
		Limit: ast.NewLimitClause(ptr(1), nil),
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = visitor.Build(stmt)
	}
}
