package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompatibleColumnType = errors.New("schema: incompatible column type")
	ErrDuplicateTableName     = errors.New("schema: duplicate table name")
	ErrTableNotFound          = errors.New("schema: table not found")
	ErrColumnNotFound         = errors.New("schema: column not found")

	// Row construction errors.
	ErrMissingValue   = errors.New("schema: missing value")
	ErrDuplicateValue = errors.New("schema: duplicate value")
	ErrUnknownColumn  = errors.New("schema: unknown column")
)

// IncompatibleColumnTypeError reports a record field whose declared type
// cannot become a column.
type IncompatibleColumnTypeError struct {
	Record string
	Field  string
	Reason string
	Err    error
}

func (e *IncompatibleColumnTypeError) Error() string {
	msg := fmt.Sprintf("schema: type of column `%s` in %s is not compatible: %s", e.Field, e.Record, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether the target error matches IncompatibleColumnTypeError.
func (e *IncompatibleColumnTypeError) Is(err error) bool {
	return err == ErrIncompatibleColumnType
}

func (e *IncompatibleColumnTypeError) Unwrap() error { return e.Err }

// DuplicateTableNameError reports two records of one database resolving to
// the same table name.
type DuplicateTableNameError struct {
	Database string
	Table    string
	Records  []string
}

func (e *DuplicateTableNameError) Error() string {
	return fmt.Sprintf("schema: table name %q is used by %s in database %q",
		e.Table, strings.Join(e.Records, " and "), e.Database)
}

func (e *DuplicateTableNameError) Is(err error) bool {
	return err == ErrDuplicateTableName
}

// ValueError reports a failed row construction for one column.
type ValueError struct {
	Table  string
	Column string
	Index  int // position of the column, -1 for unknown names
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("schema: key #%d:%s of %s: %v", e.Index, e.Column, e.Table, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }
