package fiber

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/seojunn/suho"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"

	// Access credentials are minutes-scale; the cookie just needs to outlive
	// the signed expiry, which the codec enforces.
	accessCookieMaxAge = 900
)

// refresh exchanges the refresh cookie for a new credential pair.
// Failures are uniform 401s: clients learn "re-authenticate", nothing about
// why the old token was rejected.
func (a *Adapter) refresh(c fiber.Ctx) error {
	result, err := a.handler.RefreshSession(c.Cookies(refreshCookieName))
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"code": http.StatusUnauthorized,
		})
	}

	a.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"code":        http.StatusOK,
		"accessToken": result.AccessToken,
		"user":        result.Account,
	})
}

// logout revokes the refresh credential if present and clears both cookies.
// Always 200, even when the token was already invalid.
func (a *Adapter) logout(c fiber.Ctx) error {
	_ = a.handler.TerminateSession(c.Cookies(refreshCookieName))

	a.clearSessionCookies(c)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"code": http.StatusOK,
	})
}

// me is a soft session probe: always 200, user is null for the anonymous
// caller. Never a 401 - this endpoint exists so clients can test a session
// without tripping error handling.
func (a *Adapter) me(c fiber.Ctx) error {
	principal := a.handler.Resolve(extractAccessToken(c))

	var user *suho.AccountSummary
	if !principal.Anonymous() {
		user = principal.Account.Summary()
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"code": http.StatusOK,
		"user": user,
	})
}

// CompleteLogin is the federated-login boundary for the app's OAuth2 client
// collaborator: it receives already-validated provider claims, reconciles
// them into an account, writes the credential cookies and redirects. Any
// failure redirects to the configured failure location instead of erroring
// the pipeline.
func (a *Adapter) CompleteLogin(c fiber.Ctx, providerName string, claims map[string]any) error {
	provider, err := suho.ParseProvider(providerName)
	if err != nil {
		return a.redirectFailure(c, err)
	}

	result, err := a.handler.CompleteLogin(provider, claims)
	if err != nil {
		return a.redirectFailure(c, err)
	}

	a.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	return c.Redirect().To(a.config.LoginSuccessURL)
}

func (a *Adapter) redirectFailure(c fiber.Ctx, err error) error {
	location := a.config.LoginFailureURL + "?message=" + url.QueryEscape(err.Error())
	return c.Redirect().To(location)
}

func (a *Adapter) setSessionCookies(c fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    accessToken,
		Path:     "/",
		Domain:   a.config.CookieDomain,
		MaxAge:   accessCookieMaxAge,
		HTTPOnly: true,
		Secure:   a.config.CookieSecure,
		SameSite: a.config.SameSite,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     a.basePath, // refresh credential only ever travels to the session endpoints
		Domain:   a.config.CookieDomain,
		MaxAge:   int(a.refreshTTL.Seconds()),
		HTTPOnly: true,
		Secure:   a.config.CookieSecure,
		SameSite: a.config.SameSite,
	})
}

func (a *Adapter) clearSessionCookies(c fiber.Ctx) {
	// A past expiry is what actually deletes the cookie; fasthttp only
	// serializes max-age when positive.
	expired := time.Now().Add(-time.Hour)

	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    "",
		Path:     "/",
		Domain:   a.config.CookieDomain,
		Expires:  expired,
		HTTPOnly: true,
		Secure:   a.config.CookieSecure,
		SameSite: a.config.SameSite,
	})
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     a.basePath,
		Domain:   a.config.CookieDomain,
		Expires:  expired,
		HTTPOnly: true,
		Secure:   a.config.CookieSecure,
		SameSite: a.config.SameSite,
	})
}

// extractAccessToken reads the access credential from the request.
// Checks the Authorization header (Bearer token) first, then falls back to
// the cookie.
func extractAccessToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies(accessCookieName)
}
