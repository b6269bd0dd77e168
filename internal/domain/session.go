package domain

import "time"

// Session is the server-held authentication state behind a session cookie.
type Session struct {
	ID            string    `json:"-"`
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Valid reports whether the session is authenticated and not yet expired.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Authenticated && now.Before(s.ExpiresAt)
}
