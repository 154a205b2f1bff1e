// Package common defines sentinel errors shared by the TaskDesk client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrUnauthorized matches backend rejections of the current credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidSession rejects a login whose token or user record is unusable.
	ErrInvalidSession = errors.New("invalid session")
)
