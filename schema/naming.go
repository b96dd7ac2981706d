package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// pluralizeClient is a singleton instance for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// NamingStrategy converts declared record and field names to SQL identifiers.
type NamingStrategy interface {
	// TableName converts a record name to a table name.
	TableName(recordName string) string
	// ColumnName converts a field name to a column name.
	ColumnName(fieldName string) string
}

type prefixNaming struct {
	prefix string
}

// PrefixNaming lower-cases record names behind prefix and keeps field names.
func PrefixNaming(prefix string) NamingStrategy {
	return prefixNaming{prefix: prefix}
}

// DefaultNamingStrategy produces "t_student" for a record named Student.
func DefaultNamingStrategy() NamingStrategy {
	return PrefixNaming("t_")
}

func (p prefixNaming) TableName(recordName string) string {
	return p.prefix + strings.ToLower(recordName)
}

func (p prefixNaming) ColumnName(fieldName string) string { return fieldName }

type snakePluralNaming struct{}

// SnakePluralNaming produces "blog_posts" for BlogPost and snake_case columns.
func SnakePluralNaming() NamingStrategy {
	return snakePluralNaming{}
}

func (snakePluralNaming) TableName(recordName string) string {
	return pluralize(toSnakeCase(recordName))
}

func (snakePluralNaming) ColumnName(fieldName string) string {
	return toSnakeCase(fieldName)
}

// toSnakeCase converts any naming convention to snake_case.
// Handles acronyms and digits: HTTPServer -> http_server, a1B -> a1_b.
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	switch name {
	case "ID":
		return "id"
	case "UUID":
		return "uuid"
	case "URL":
		return "url"
	case "API":
		return "api"
	case "JSON":
		return "json"
	}

	// If already snake_case (contains underscores and no uppercase), return as-is
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var result strings.Builder
	result.Grow(len(name) + 10)

	runes := []rune(name)
	for i, r := range runes {
		needsUnderscore := false

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]

			// aB -> a_b, a1B -> a1_b, ABc -> a_bc
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				needsUnderscore = true
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				needsUnderscore = true
			}
		}

		if needsUnderscore {
			result.WriteByte('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// pluralize converts singular nouns to their plural forms. Only the last
// snake_case segment is pluralized.
func pluralize(name string) string {
	if name == "" {
		return ""
	}

	head, last := "", name
	if i := strings.LastIndexByte(name, '_'); i >= 0 {
		head, last = name[:i+1], name[i+1:]
	}

	switch strings.ToLower(last) {
	case "person":
		return head + preserveCase(last, "people")
	case "datum":
		return head + preserveCase(last, "data")
	case "criterion":
		return head + preserveCase(last, "criteria")
	}

	return head + preserveCase(last, pluralizeClient.Pluralize(last, 2, false))
}

// hasUpperCase returns true if the string contains any uppercase letters.
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// preserveCase preserves the case pattern of the original string in the result.
func preserveCase(original, result string) string {
	if original == "" || result == "" {
		return result
	}

	if strings.ToLower(original) == original {
		return strings.ToLower(result)
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(result)
	}

	if unicode.IsUpper(rune(original[0])) {
		if len(result) == 1 {
			return strings.ToUpper(result)
		}
		return strings.ToUpper(result[:1]) + strings.ToLower(result[1:])
	}

	return strings.ToLower(result)
}
