package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors surfaced by store operations. Handlers map these to
// HTTP statuses; anything else is an upstream failure.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError reports malformed client input. The message is written
// for the client and names the violated constraint.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
