package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
)

// Manager ties the session cookie to a Store. The HTTP middleware and the
// live-channel handshake both resolve sessions through Lookup.
type Manager struct {
	store      Store
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewManager(store Store, cfg environments.SessionConfig, production bool) *Manager {
	return &Manager{
		store:      store,
		ttl:        cfg.TTL,
		cookieName: cfg.CookieName,
		secure:     production,
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Create stores a fresh authenticated session for username.
func (m *Manager) Create(ctx context.Context, username string) (*domain.Session, error) {
	now := m.now()
	session := &domain.Session{
		ID:            uuid.NewString(),
		Authenticated: true,
		Username:      username,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}

	if err := m.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Lookup resolves the session named by the request cookie. It returns nil, nil
// when the cookie is missing or the session is unknown, unauthenticated or expired.
func (m *Manager) Lookup(r *http.Request) (*domain.Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	session, err := m.store.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if !session.Valid(m.now()) {
		return nil, nil
	}

	session.ID = cookie.Value
	return session, nil
}

func (m *Manager) Destroy(ctx context.Context, id string) error {
	if err := m.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Cookie returns the Set-Cookie value for an issued session.
func (m *Manager) Cookie(session *domain.Session) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite(),
	}
}

// ClearCookie returns a cookie that removes the session cookie from the browser.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite(),
	}
}

// sameSite allows the cross-site dashboard origin in production, where cookies are Secure.
func (m *Manager) sameSite() http.SameSite {
	if m.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
