package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/seojunn/suho"
)

const principalLocal = "principal"

// WithPrincipal resolves the calling principal once per request and stores
// it in the context for downstream handlers. It never rejects: anonymous
// requests pass through with the zero principal, so handlers decide their
// own access policy.
func (a *Adapter) WithPrincipal() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(principalLocal, a.handler.Resolve(extractAccessToken(c)))
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests with a 401. Run it after
// WithPrincipal, or standalone (it resolves on its own when needed).
func (a *Adapter) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		principal := PrincipalFromCtx(c)
		if principal.Anonymous() {
			principal = a.handler.Resolve(extractAccessToken(c))
		}
		if principal.Anonymous() {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"code": http.StatusUnauthorized,
			})
		}

		c.Locals(principalLocal, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal stored by WithPrincipal or
// RequireAuth. The zero principal means anonymous.
func PrincipalFromCtx(c fiber.Ctx) suho.Principal {
	if p, ok := c.Locals(principalLocal).(suho.Principal); ok {
		return p
	}
	return suho.Principal{}
}
