package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const bearerPrefix = "Bearer "

// TokenFromRequest returns the first candidate token present on the
// request, checking in fixed priority order: Authorization header
// (Bearer scheme), query parameter "token", cookie "token". A missing
// token is not an error; many routes are public.
func TokenFromRequest(c *fiber.Ctx) (string, bool) {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):], true
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	if token := c.Cookies("token"); token != "" {
		return token, true
	}
	return "", false
}
