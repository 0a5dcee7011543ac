// Package domain defines domain-level errors for the users feature.
package domain

import "errors"

// Errors reported by the user repository.
var (
	// ErrUserNotFound indicates that no user matched the given id or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists indicates the unique email index rejected a write.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserReferenced indicates the user cannot be removed because simulations still reference it.
	ErrUserReferenced = errors.New("user is referenced by simulations")
)
