package common

import "errors"

var (
	// Validation errors raised before a request leaves the client.
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors (token cannot be parsed).
	ErrInvalidToken = errors.New("invalid token")
)
