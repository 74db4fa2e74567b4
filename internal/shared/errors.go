package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated indicates a missing, invalid, expired or revoked credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden indicates a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate create, e.g. an email that is already registered.
	ErrConflict = errors.New("conflict")
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRepository indicates the storage layer is unavailable. Treated as transient.
	ErrRepository = errors.New("repository unavailable")
)

// ValidationError reports which input fields were rejected.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError names the entity that could not be resolved.
func NotFoundError(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// ConflictError describes a uniqueness violation on entity.
func ConflictError(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// RepositoryError wraps a storage failure. The cause is kept for logging through
// errors.Unwrap chains but never rendered to clients.
func RepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &repositoryError{op: op, err: err}
}

type repositoryError struct {
	op  string
	err error
}

func (e *repositoryError) Error() string {
	return e.op + ": " + ErrRepository.Error() + ": " + e.err.Error()
}

func (e *repositoryError) Unwrap() []error {
	return []error{ErrRepository, e.err}
}

// UserSafeMessage returns a message that can be shown to API clients without
// leaking storage internals.
func UserSafeMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, ErrRepository):
		return "internal error, please retry"
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrValidation):
		return err.Error()
	default:
		return "internal error"
	}
}
