package store

import "errors"

// Sentinel errors returned by Store and SessionStore implementations.
// Services translate them into coded domain errors.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced resource does not exist")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)
