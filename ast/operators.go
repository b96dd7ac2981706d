package ast

import (
	"errors"
	"fmt"
)

// Comparison operators accepted by Compare.
const (
	OpEqual              = "="
	OpNotEqual           = "<>"
	OpLessThan           = "<"
	OpLessThanOrEqual    = "<="
	OpGreaterThan        = ">"
	OpGreaterThanOrEqual = ">="
)

const OpAnd = "AND"

var ErrUnsupportedOperator = errors.New("ast: unsupported operator")

func checkOperator(op string) error {
	switch op {
	case OpEqual, OpNotEqual, OpLessThan, OpLessThanOrEqual, OpGreaterThan, OpGreaterThanOrEqual:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
}
