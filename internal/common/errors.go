// Package common defines sentinel errors shared across the layers of the
// note service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrUsernameTaken = errors.New("username is taken")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrBadCredentials covers both an unknown username and a wrong
	// password. Login must never reveal which of the two failed.
	ErrBadCredentials = errors.New("bad credentials")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
