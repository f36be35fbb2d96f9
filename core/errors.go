package core

import "errors"

// Identity and reconciliation errors
var (
	ErrUnsupportedProvider = errors.New("unsupported oauth provider") // 400 Bad Request
	ErrMissingClaim        = errors.New("required claim missing")     // 400 Bad Request
	ErrAccountExists       = errors.New("account already exists")     // 409 Conflict
	ErrAccountNotFound     = errors.New("account not found")          // 404 Not Found
)

// Refresh token store errors
var (
	ErrTokenNotFound  = errors.New("refresh token not found")         // 401
	ErrTokenNotActive = errors.New("refresh token no longer active")  // 401, replay signal on ROTATED records
	ErrTokenExpired   = errors.New("refresh token expired")           // 401
	ErrRefreshDenied  = errors.New("session refresh denied")          // 401, the only failure refresh callers see
	ErrCacheNotFound  = errors.New("account not found in cache")
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
	ErrSecretRequired  = errors.New("secret is required")          // 500
	ErrSecretTooShort  = errors.New("secret too short")            // 500
)
