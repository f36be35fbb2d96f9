package core

import "time"

type Config struct {
	// Secret signs access credentials. Minimum 32 characters.
	Secret string

	Database AuthStorage

	HTTP HTTPAdapter

	// Optional config
	TokenConfig  *TokenConfig
	CacheAdapter Cache
	DisableCache bool
	Issuer       string
	BasePath     string
}

// TokenConfig sets the two credential lifetimes. Access credentials stay
// minutes-scale so compromise exposure is bounded; refresh credentials carry
// the long-lived session.
type TokenConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 14 * 24 * time.Hour,
	}
}

// AuthHandler provides the session operations HTTP adapters bind to routes.
type AuthHandler interface {
	// CompleteLogin reconciles validated provider claims into an account and
	// issues a credential pair. Normalization and conflict errors propagate
	// typed so the boundary can redirect to a failure location.
	CompleteLogin(provider Provider, raw map[string]any) (*LoginResult, error)

	// RefreshSession rotates the refresh credential and mints a new access
	// credential. Every failure collapses to ErrRefreshDenied.
	RefreshSession(refreshToken string) (*RefreshResult, error)

	// TerminateSession revokes the refresh credential. Idempotent; invalid
	// or absent tokens still succeed.
	TerminateSession(refreshToken string) error

	// Resolve derives the calling principal from an access credential.
	// It never fails: any invalid, expired or orphaned credential resolves
	// to the anonymous principal.
	Resolve(accessToken string) Principal
}

// HTTPAdapter registers the session endpoints on a concrete framework.
type HTTPAdapter interface {
	RegisterRoutes(handler AuthHandler, basePath string, refreshTTL time.Duration) error
}
