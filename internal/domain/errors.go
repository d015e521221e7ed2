package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks rejected user input. Commands that fail with it leave
// state untouched.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
