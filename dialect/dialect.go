// Package dialect describes the SQL surface that differs between databases:
// identifier quoting, parameter placeholders and literal rendering.
package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Placeholder(n int) string
	// RenderValue inlines a literal. It is only used by Explain output, never
	// for executed statements.
	RenderValue(v any) string
	// UnboundedLimit returns the LIMIT count that stands for "no limit" when an
	// OFFSET is rendered alone. ok is false when OFFSET may appear without LIMIT.
	UnboundedLimit() (count string, ok bool)
}

// ForName returns the dialect registered for a driver or provider name.
func ForName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	case "tidb":
		return NewTiDBDialect(), nil
	case "postgres", "postgresql", "pgx":
		return NewPostgresDialect(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), nil
	}
	return nil, fmt.Errorf("dialect: unknown dialect %q", name)
}

func quote(name string, q string) string {
	return q + strings.ReplaceAll(name, q, q+q) + q
}

func renderLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64)
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05.000000") + "'"
	case []byte:
		return fmt.Sprintf("X'%x'", val)
	case fmt.Stringer:
		return "'" + strings.ReplaceAll(val.String(), "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}
