// Package suho is the authentication core of a web backend: it reconciles
// OAuth2 identities into canonical accounts, issues and rotates session
// credentials, and resolves the calling principal per request.
package suho

import (
	"fmt"

	"github.com/seojunn/suho/core"
	"github.com/seojunn/suho/pkg/crypto"
	"github.com/seojunn/suho/services"
)

// interfaces
type (
	AuthStorage    = core.AuthStorage
	AccountStorage = core.AccountStorage
	TokenStorage   = core.TokenStorage
	Cache          = core.Cache

	HTTPAdapter = core.HTTPAdapter
	AuthHandler = core.AuthHandler
)

// structs
type (
	Config      = core.Config
	TokenConfig = core.TokenConfig
	CacheConfig = core.CacheConfig

	AuthService  = services.AuthService
	TokenManager = services.TokenManager
	Reconciler   = services.Reconciler
)

type (
	Account            = core.Account
	AccountSummary     = core.AccountSummary
	RefreshToken       = core.RefreshToken
	NormalizedIdentity = core.NormalizedIdentity
	Principal          = core.Principal
	Provider           = core.Provider
	TokenState         = core.TokenState
	LoginResult        = core.LoginResult
	RefreshResult      = core.RefreshResult
	CacheStats         = core.CacheStats
)

const (
	TokenActive  = core.TokenActive
	TokenRotated = core.TokenRotated
	TokenRevoked = core.TokenRevoked
)

const (
	defaultBasePath  = "/auth"
	defaultIssuer    = "suho"
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache   = core.NewInMemoryCache
	DefaultTokenConfig = core.DefaultTokenConfig
	Normalize          = core.Normalize
	ParseProvider      = core.ParseProvider
)

var (
	ProviderKakao  = core.ProviderKakao
	ProviderGoogle = core.ProviderGoogle
	ProviderNaver  = core.ProviderNaver
)

var (
	ErrUnsupportedProvider = core.ErrUnsupportedProvider
	ErrMissingClaim        = core.ErrMissingClaim
	ErrAccountExists       = core.ErrAccountExists
	ErrAccountNotFound     = core.ErrAccountNotFound
)

var (
	ErrTokenNotFound  = core.ErrTokenNotFound
	ErrTokenNotActive = core.ErrTokenNotActive
	ErrTokenExpired   = core.ErrTokenExpired
	ErrRefreshDenied  = core.ErrRefreshDenied
	ErrCacheNotFound  = core.ErrCacheNotFound
)

var (
	ErrAccessInvalid = crypto.ErrAccessInvalid
	ErrAccessExpired = crypto.ErrAccessExpired
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrSecretRequired  = core.ErrSecretRequired
	ErrSecretTooShort  = core.ErrSecretTooShort
)

// Suho wires the reconciler, token manager and session façade over one
// storage adapter. Construct with New.
type Suho struct {
	Auth       *services.AuthService
	Tokens     *services.TokenManager
	Reconciler *services.Reconciler
	BasePath   string
}

func New(config Config) (*Suho, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Database == nil {
		return nil, ErrStorageRequired
	}

	// Set Defaults

	tokenConfig := core.DefaultTokenConfig()
	if config.TokenConfig != nil {
		if config.TokenConfig.AccessTTL > 0 {
			tokenConfig.AccessTTL = config.TokenConfig.AccessTTL
		}
		if config.TokenConfig.RefreshTTL > 0 {
			tokenConfig.RefreshTTL = config.TokenConfig.RefreshTTL
		}
	}

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = core.NewInMemoryCache(CacheConfig{})
	}

	issuer := config.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	codec := crypto.NewAccessCodec(config.Secret, issuer, tokenConfig.AccessTTL)
	tokens := services.NewTokenManager(tokenConfig, config.Database)
	reconciler := services.NewReconciler(config.Database, cacheAdapter)
	auth := services.NewAuthService(config.Database, codec, tokens, reconciler, cacheAdapter)

	s := &Suho{
		Auth:       auth,
		Tokens:     tokens,
		Reconciler: reconciler,
		BasePath:   basePath,
	}

	if config.HTTP != nil {
		if err := config.HTTP.RegisterRoutes(auth, basePath, tokenConfig.RefreshTTL); err != nil {
			return nil, err
		}
	}

	return s, nil
}
