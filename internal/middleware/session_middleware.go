package middleware

import (
	"pizzeria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionKey is the Locals key under which the session container is stored.
const SessionKey = "session"

// HeaderSessionID is the header carrying the client's session id.
const HeaderSessionID = "X-Session-ID"

// WithSession resolves the caller's session container from the X-Session-ID
// header, minting a fresh session when the header is absent, and stores it
// in the request context. The session id is echoed on the response so new
// clients learn theirs.
func WithSession(sessions *services.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := sessions.GetOrCreate(c.Get(HeaderSessionID))
		c.Locals(SessionKey, session)
		c.Set(HeaderSessionID, session.ID)
		return c.Next()
	}
}

// SessionFromCtx returns the session container resolved by WithSession.
func SessionFromCtx(c *fiber.Ctx) *services.Session {
	return c.Locals(SessionKey).(*services.Session)
}
