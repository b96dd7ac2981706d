package dialect

type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (m *MySQL) Name() string { return "mysql" }

func (m *MySQL) QuoteIdentifier(name string) string {
	return quote(name, "`")
}

func (m *MySQL) Placeholder(n int) string {
	return "?"
}

func (m *MySQL) RenderValue(v any) string {
	return renderLiteral(v)
}

// UnboundedLimit is the largest BIGINT UNSIGNED, as the MySQL manual suggests.
func (m *MySQL) UnboundedLimit() (string, bool) {
	return "18446744073709551615", true
}

// TiDB speaks the MySQL dialect.
type TiDB struct {
	*MySQL
}

func NewTiDBDialect() Dialect {
	return &TiDB{MySQL: &MySQL{}}
}

func (t *TiDB) Name() string { return "tidb" }
