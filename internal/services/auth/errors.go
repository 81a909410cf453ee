package auth

import "errors"

// Service errors
var (
	// ErrInvalidCredentials is returned on any sign-in mismatch or
	// absence. It never reveals which half of the pair failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidRole     = errors.New("invalid admin role")
	ErrNotAuthorized   = errors.New("not authorized for admin access")
	ErrWeakPassword    = errors.New("password does not meet length requirements")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidUsername = errors.New("invalid username")
	ErrMissingBaaSAuth = errors.New("managed identity service is not configured")
)
