// Package common contains shared constants and small helpers used across
// MotoSegura client components.
package common

// Header names understood by the MotoSegura backend.
const (
	AuthorizationHeaderName = "Authorization"
	APIKeyHeaderName        = "X-API-Key"
	MobileDeviceHeaderName  = "X-Mobile-Device"
	RequestIDHeaderName     = "X-Request-ID"
	RetryAfterHeaderName    = "Retry-After"
)

// TokenMetadataKey is the key under which the bearer token is persisted in
// the local metadata store.
const TokenMetadataKey = "token"

// LastUsernameMetadataKey remembers the last successful login name for the
// login prompt.
const LastUsernameMetadataKey = "last_username"

// RoleAdmin is the role value that grants administrative views.
const RoleAdmin = "admin"
