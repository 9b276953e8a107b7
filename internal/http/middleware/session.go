package middleware

import (
	"time"

	"github.com/drivefetch/drivefetch/internal/http/util"
	"github.com/gofiber/fiber/v2"
)

// SessionCookie names the cookie carrying the session token.
const SessionCookie = "drivefetch_session"

// SessionKey is the Locals key under which handlers find the session ID.
const SessionKey = "session_id"

const sessionCookieMaxAge = 180 * 24 * time.Hour

// Session assigns each visitor a stable session ID, minting a new signed
// cookie when none is present or the existing one fails verification.
func Session(signer *util.SessionSigner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := signer.Verify(c.Cookies(SessionCookie))
		if !ok {
			var token string
			token, id = signer.Issue()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    token,
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(SessionKey, id)
		return c.Next()
	}
}

// SessionID extracts the session ID set by the Session middleware.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(SessionKey).(string); ok {
		return id
	}
	return ""
}
