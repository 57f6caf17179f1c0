// Package common defines shared constants and sentinel errors used across
// the account service and its callers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Validation errors.
	ErrMissingField     = errors.New("missing required field")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidEmail     = errors.New("invalid email address")

	// Authentication errors. A lookup miss and a password mismatch are
	// deliberately indistinguishable to callers of Authenticate.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotFound is returned only by password reset, where the
	// existence of the address is part of the contract.
	ErrEmailNotFound = errors.New("email not found")

	// ErrStoreUnavailable covers any underlying persistence failure:
	// connection, I/O, timeout, or a driver error not otherwise classified.
	// The wrapped diagnostic is best-effort and not part of the contract.
	ErrStoreUnavailable = errors.New("store unavailable")
)
