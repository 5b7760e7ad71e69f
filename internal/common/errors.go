// Package common defines the sentinel errors shared by the credential engine,
// its stores and its transports. Callers should use errors.Is to match these
// values; implementations wrap them with fmt.Errorf("...: %w", ...).
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrStore      = errors.New("store error")

	// Create-time identity collision. The only error surfaced distinctly to
	// callers of account creation.
	ErrDuplicateIdentity = errors.New("identity already exists")

	// Codec errors.
	ErrHashing             = errors.New("hashing error")
	ErrMalformedCredential = errors.New("malformed credential")

	// Service-level errors.
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInternal     = errors.New("internal error")
)
