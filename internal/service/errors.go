package service

import "errors"

var (
	// ErrInvalidInput marks a request the caller can fix.
	ErrInvalidInput = errors.New("service: invalid input")

	// ErrPermissionDenied marks an operation the acting user may not perform.
	ErrPermissionDenied = errors.New("service: permission denied")

	// ErrConflict marks an operation that collides with existing state, such
	// as creating an organization whose identifier is already taken.
	ErrConflict = errors.New("service: conflict")
)
