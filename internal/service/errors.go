// Package service implements the application's use cases on top of the
// repository interfaces. Failures are typed here and mapped to HTTP status
// codes at the handler boundary; anything not covered by these values is a
// storage failure and surfaces as a 500.
package service

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUnauthorized covers every credential failure: unknown email, wrong
// password, suspended account, invalid or expired token, dead session. It
// is deliberately generic so callers cannot probe which check failed.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden means the credential is fine but the role is not.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound means the addressed entity does not exist or is not visible.
var ErrNotFound = errors.New("not found")

// ErrBadRequest flags input the schema layer let through but the domain
// rejects (unsupported content type, unknown plan).
var ErrBadRequest = errors.New("bad request")

// ConflictError reports a uniqueness violation on signup and names the
// offending field so clients can highlight it.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s already exists", e.Field)
}

// AsConflict unwraps err into a ConflictError when possible.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// translateLookup maps a storage miss to ErrNotFound and passes every other
// error through untouched.
func translateLookup(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
