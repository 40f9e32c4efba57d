package domain

import "errors"

// Sentinel errors shared across layers. Controllers map these to HTTP
// status codes; everything else is reported as an internal error.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMailerNotConfigured = errors.New("mail provider API key is not configured")
)
