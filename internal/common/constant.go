// Package common contains shared constants and sentinel errors used across
// the column client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound calls.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token value in AuthorizationHeaderName.
	BearerPrefix = "Bearer "

	// TokenStorageKey is the single durable key holding the session token.
	TokenStorageKey = "token"

	// ICodeParamName is the shared application key appended to every call.
	ICodeParamName = "icode"
)
