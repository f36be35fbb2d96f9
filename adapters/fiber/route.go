package fiber

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/seojunn/suho"
	"github.com/seojunn/suho/services"
)

// Config controls cookie attributes and the login redirect locations.
type Config struct {
	CookieDomain string
	CookieSecure bool   // set in production
	SameSite     string // "Lax" (default), "Strict" or "None"

	// Redirect targets for the federated-login boundary.
	LoginSuccessURL string
	LoginFailureURL string
}

type Adapter struct {
	app    *fiber.App
	config Config

	handler    suho.AuthHandler
	basePath   string
	refreshTTL time.Duration
}

var _ suho.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App, config Config) *Adapter {
	if config.SameSite == "" {
		config.SameSite = "Lax"
	}
	return &Adapter{app: app, config: config}
}

func (a *Adapter) RegisterRoutes(handler suho.AuthHandler, basePath string, refreshTTL time.Duration) error {
	a.handler = handler
	a.basePath = basePath
	a.refreshTTL = refreshTTL

	handlers := map[string]fiber.Handler{
		"refreshSession": a.refresh,
		"logout":         a.logout,
		"getCurrentUser": a.me,
	}

	api := a.app.Group(basePath)

	for _, ep := range services.BaseEndpoints() {
		h, ok := handlers[ep.Metadata.OperationID]
		if !ok {
			return fmt.Errorf("no handler bound for operation %q", ep.Metadata.OperationID)
		}
		switch ep.Method {
		case fiber.MethodPost:
			api.Post(ep.Path, h)
		case fiber.MethodGet:
			api.Get(ep.Path, h)
		default:
			return fmt.Errorf("unsupported method %q for %s", ep.Method, ep.Path)
		}
	}

	return nil
}
