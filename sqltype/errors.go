package sqltype

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTypeState is returned when a value is boxed with a type whose
	// required key (length, precision/scale or value list) was never supplied.
	ErrInvalidTypeState = errors.New("sqltype: type key parameter is not specified")

	// ErrInvalidTypeParameters is returned when a derivation receives parameters
	// of the wrong arity or shape, or a modifier the base type does not accept.
	ErrInvalidTypeParameters = errors.New("sqltype: invalid type parameters")

	// ErrInvalidValue is returned by Validate when a Go value does not fit a type.
	ErrInvalidValue = errors.New("sqltype: invalid value")
)

// TypeError describes a failed derivation, boxing or validation.
type TypeError struct {
	Type   string // name of the type the operation was applied to
	Op     string
	Reason string
	Err    error
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("sqltype: %s on %s", e.Op, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *TypeError) Unwrap() error { return e.Err }

func paramsError(t *Type, mod Modifier, format string, args ...any) error {
	name := "<nil>"
	if t != nil {
		name = t.name
	}
	return &TypeError{
		Type:   name,
		Op:     mod.String(),
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrInvalidTypeParameters,
	}
}
