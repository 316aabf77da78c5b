package ledger

import "fmt"

// ValidationError indicates bad input: a split sum mismatch, a
// non-positive amount, or an empty split list. The caller can correct
// the input and resubmit; it is never retried automatically.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthorizationError indicates the actor is not a member of the target
// group. This is a ledger-integrity rule, not a transport concern: an
// entry written by a non-member would corrupt balance semantics.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

// Authorizationf builds an AuthorizationError with a formatted message.
func Authorizationf(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced group, user, or entry does not
// exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given kind and identifier.
func NotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IntegrityError indicates an atomic write failed at the storage layer.
// The entry-plus-splits write is rolled back as a whole unit, so a
// failed create leaves zero side effects.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
