package store

import "errors"

// Sentinel errors returned by store operations. Services translate
// these into domain errors with user-facing messages.
var (
	// ErrNotFound is returned when an entity cannot be found.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned on ID or unique index conflicts.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrSessionNotFound is returned when a session cannot be found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session expired")
	// ErrEmailExists is returned when registering an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
)
