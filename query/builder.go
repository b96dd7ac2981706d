package query

import (
	"github.com/Konsultn-Engineering/sqlview/database"
)

// BaseBuilder collects the errors of a chain of builder calls. The chain keeps
// going after a failure; Build reports the first error.
type BaseBuilder struct {
	errors []error
}

// AddError adds an error to the builder
func (bb *BaseBuilder) AddError(err error) {
	if err != nil {
		bb.errors = append(bb.errors, err)
	}
}

// HasErrors returns true if there are any errors
func (bb *BaseBuilder) HasErrors() bool {
	return len(bb.errors) > 0
}

// GetErrors returns all accumulated errors
func (bb *BaseBuilder) GetErrors() []error {
	return append([]error(nil), bb.errors...)
}

// GetFirstError returns the first error or nil
func (bb *BaseBuilder) GetFirstError() error {
	if len(bb.errors) > 0 {
		return bb.errors[0]
	}
	return nil
}

// scanRows reads every remaining row into a map keyed by result column name.
// Byte slices are converted to strings.
func scanRows(rows database.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		row, err := scanMap(rows, columns)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

func scanMap(rows database.Rows, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(columns))
	for i, col := range columns {
		if b, ok := values[i].([]byte); ok {
			row[col] = string(b)
		} else {
			row[col] = values[i]
		}
	}
	return row, nil
}
