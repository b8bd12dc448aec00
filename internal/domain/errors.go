package domain

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every input validation failure
var ErrOutOfRange = errors.New("input out of range")

// OutOfRangeError reports a parameter outside its documented bounds
type OutOfRangeError struct {
	Field      string
	Value      string
	Constraint string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s=%s: %s", e.Field, e.Value, e.Constraint)
}

// Is lets errors.Is(err, ErrOutOfRange) match any OutOfRangeError
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func newOutOfRange(field, value, constraint string) error {
	return &OutOfRangeError{Field: field, Value: value, Constraint: constraint}
}
