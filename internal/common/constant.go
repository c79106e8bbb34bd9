// Package common contains shared constants, sentinel errors and small
// helpers used across packadmin components.
package common

// Outbound request headers.
const (
	// RequestIDHeader carries a per-request uuid so a failed mutation can be
	// matched with the server's own logs.
	RequestIDHeader = "X-Request-ID"
	// AuthorizationHeader carries the optional session token as
	// "Bearer <token>".
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)
