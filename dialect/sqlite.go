package dialect

// SQLite accepts both backticks and "?" placeholders, so generated MySQL-style
// DDL runs unchanged.
type SQLite struct{}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (s *SQLite) Name() string { return "sqlite" }

func (s *SQLite) QuoteIdentifier(name string) string {
	return quote(name, "`")
}

func (s *SQLite) Placeholder(n int) string {
	return "?"
}

func (s *SQLite) RenderValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "1"
		}
		return "0"
	}
	return renderLiteral(v)
}

func (s *SQLite) UnboundedLimit() (string, bool) {
	return "-1", true
}
