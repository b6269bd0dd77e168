package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
)

type fakeSessions struct {
	created   []string
	destroyed []string
}

func (s *fakeSessions) Create(ctx context.Context, username string) (*domain.Session, error) {
	s.created = append(s.created, username)
	return &domain.Session{
		ID:            "sess-1",
		Authenticated: true,
		Username:      username,
		ExpiresAt:     time.Now().Add(time.Hour),
	}, nil
}

func (s *fakeSessions) Destroy(ctx context.Context, id string) error {
	s.destroyed = append(s.destroyed, id)
	return nil
}

type fakeCloser struct {
	closed []string
}

func (c *fakeCloser) CloseSession(sessionID string) int {
	c.closed = append(c.closed, sessionID)
	return 1
}

func TestLogin_PlainPassword(t *testing.T) {
	sessions := &fakeSessions{}
	svc := NewAuthService(environments.AuthConfig{Username: "dj", Password: "secret"}, sessions, nil)

	session, err := svc.Login(context.Background(), "dj", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Username != "dj" || len(sessions.created) != 1 {
		t.Fatalf("expected session for dj, got %+v", session)
	}

	if _, err := svc.Login(context.Background(), "dj", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "other", "secret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad username, got %v", err)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected no session for rejected logins")
	}
}

func TestLogin_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}

	cfg := environments.AuthConfig{Username: "dj", PasswordHash: string(hash)}
	svc := NewAuthService(cfg, &fakeSessions{}, nil)

	if _, err := svc.Login(context.Background(), "dj", "s3cret"); err != nil {
		t.Fatalf("expected hash match, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dj", "nope"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnconfiguredCredentialsRejectEverything(t *testing.T) {
	svc := NewAuthService(environments.AuthConfig{}, &fakeSessions{}, nil)

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogout_DestroysSessionAndClosesConnections(t *testing.T) {
	sessions := &fakeSessions{}
	closer := &fakeCloser{}
	svc := NewAuthService(environments.AuthConfig{Username: "dj", Password: "x"}, sessions, closer)

	if err := svc.Logout(context.Background(), &domain.Session{ID: "sess-9", Username: "dj"}); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != "sess-9" {
		t.Errorf("expected sess-9 destroyed, got %v", sessions.destroyed)
	}
	if len(closer.closed) != 1 || closer.closed[0] != "sess-9" {
		t.Errorf("expected sess-9 connections closed, got %v", closer.closed)
	}

	if err := svc.Logout(context.Background(), nil); err != nil {
		t.Fatalf("expected nil session logout to be a no-op, got %v", err)
	}
}
