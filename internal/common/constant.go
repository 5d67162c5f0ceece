// Package common contains shared constants and sentinel errors used across
// ConstructHub client components.
package common

// Storage keys under which the session credentials are persisted. Every token
// repository driver uses the same names so switching drivers keeps the layout.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// HTTP header names used on outbound requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)
