package dialect

import (
	"encoding/hex"
	"strconv"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (p *Postgres) Name() string { return "postgres" }

func (p *Postgres) QuoteIdentifier(name string) string {
	return quote(name, `"`)
}

func (p *Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (p *Postgres) RenderValue(v any) string {
	if b, ok := v.([]byte); ok {
		return `'\x` + hex.EncodeToString(b) + "'::bytea"
	}
	return renderLiteral(v)
}

func (p *Postgres) UnboundedLimit() (string, bool) {
	return "", false
}
