package shared

import "errors"

// Role values stored on user accounts and embedded in access tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRevoked occurs when a bearer token has been logged out.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrAccountDisabled occurs when a deactivated account authenticates.
	ErrAccountDisabled = errors.New("account disabled")
)
