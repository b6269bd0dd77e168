package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/response"
)

const sessionContextKey = "session"

// SessionLookup resolves the authenticated session behind a request, nil when there is none.
type SessionLookup interface {
	Lookup(r *http.Request) (*domain.Session, error)
}

// secureCompare compares two strings in a way that is safer against timing attacks.
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RequireSession rejects requests without a valid session cookie and stores
// the session in the echo context for the handler.
func RequireSession(sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := sessions.Lookup(c.Request())
			if err != nil {
				logger.Errorf("Session lookup failed: %v", err)
				return response.InternalServerError(c, err)
			}
			if session == nil {
				return response.Unauthorized(c, domain.ErrUnauthorized.Error())
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}
