package domain

import "errors"

var (
	// ErrInvalidInput marks user-supplied text or tokens that can be corrected by the user.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage marks failures of the underlying store (connection loss, constraint violation).
	ErrStorage = errors.New("storage error")

	// ErrNotFound marks a referenced user or word that does not exist.
	ErrNotFound = errors.New("not found")
)
