package identity

import "errors"

var (
	// ErrNotFound indicates no user exists for the given phone or id. It is a
	// first-class outcome of repository lookups, not an infrastructure fault.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicatePhone indicates a user already holds the phone number.
	ErrDuplicatePhone = errors.New("phone already registered")
)
