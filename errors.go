package todo_list

import (
	"errors"
	"fmt"
)

// Sentinels shared by the repository, service and HTTP layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewValidationError is a shorthand for &ValidationError{Field: field, Msg: msg}.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// PersistenceKind classifies why the store rejected a write.
type PersistenceKind string

const (
	KindDuplicate  PersistenceKind = "duplicate"
	KindForeignKey PersistenceKind = "foreign_key"
	KindStore      PersistenceKind = "store"
)

// PersistenceError is returned when the backing store rejects a commit.
// Staged changes have already been rolled back when it is returned.
type PersistenceError struct {
	Kind PersistenceKind
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AuthenticationError wraps ErrInvalidCredentials or ErrUnauthenticated with a reason
// that is logged but never sent to the client.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err carries a *PersistenceError of the given kind.
// An empty kind matches any persistence error.
func IsPersistence(err error, kind PersistenceKind) bool {
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		return false
	}
	return kind == "" || pe.Kind == kind
}
