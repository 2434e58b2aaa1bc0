// Package repository persists the application's entities in MySQL. Each
// repository is a thin struct over *sql.DB; services depend on the small
// interfaces defined next to each repository so tests can swap in fakes.
//
// This file defines sentinel errors shared across repositories. They let
// services distinguish uniqueness violations from plain storage failures.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when inserting a user whose email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when inserting a profile whose username is
// taken.
var ErrUsernameExists = errors.New("username already exists")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
