package service

import "errors"

// Domain outcomes surfaced by the services. Handlers map these to HTTP
// statuses; anything else is an unexpected persistence failure (500).
var (
	// ErrDuplicateUsername is returned when registering an already taken username
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is the single generic login failure. It never
	// reveals whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the requester is not allowed to perform
	// the operation on an existing record
	ErrForbidden = errors.New("forbidden")
)
