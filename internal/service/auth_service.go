package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

type sessionManager interface {
	Create(ctx context.Context, username string) (*domain.Session, error)
	Destroy(ctx context.Context, id string) error
}

type sessionCloser interface {
	CloseSession(sessionID string) int
}

// AuthService checks the single staff credential and owns the session lifecycle.
type AuthService struct {
	config   environments.AuthConfig
	sessions sessionManager
	hub      sessionCloser
}

func NewAuthService(config environments.AuthConfig, sessions sessionManager, hub sessionCloser) *AuthService {
	return &AuthService{config: config, sessions: sessions, hub: hub}
}

// Login returns a new authenticated session, or ErrUnauthorized on bad credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if !s.checkCredentials(username, password) {
		logger.Warnf("Rejected login attempt for user %q", username)
		return nil, domain.ErrUnauthorized
	}

	session, err := s.sessions.Create(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	logger.Infof("User %s logged in", username)
	return session, nil
}

// Logout destroys the session and drops the live connections it opened.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}

	if s.hub != nil {
		if closed := s.hub.CloseSession(session.ID); closed > 0 {
			logger.Infof("Closed %d live connections for %s on logout", closed, session.Username)
		}
	}

	if err := s.sessions.Destroy(ctx, session.ID); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	return nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.config.Username)) == 1

	var passOK bool
	if s.config.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(password)) == nil
	} else {
		passOK = s.config.Password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(s.config.Password)) == 1
	}

	return s.config.Username != "" && userOK && passOK
}
