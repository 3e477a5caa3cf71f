package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/service"
)

// identityCookieMaxAge keeps the anonymous token long-lived; there is no
// hard expiry requirement beyond that.
var identityCookieMaxAge = int((400 * 24 * time.Hour).Seconds())

// resolveIdentity turns the request's cookie into the stored identity key,
// minting and setting a fresh token when the cookie is absent or malformed.
func resolveIdentity(c fiber.Ctx, svc *service.IdentityService, cookieName string) string {
	token, minted := svc.Identify(c.Cookies(cookieName))
	if minted {
		c.Cookie(&fiber.Cookie{
			Name:     cookieName,
			Value:    token,
			MaxAge:   identityCookieMaxAge,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
		})
	}
	return svc.StorageKey(token)
}
