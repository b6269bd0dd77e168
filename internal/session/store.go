// Package session issues, resolves and destroys cookie-keyed staff sessions.
package session

import (
	"context"

	"github.com/onurcolak/listener-text-service/internal/domain"
)

// Store persists sessions until their expiry. GetSession returns nil, nil for
// an unknown or expired id.
type Store interface {
	SaveSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
}
