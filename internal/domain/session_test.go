package domain

import (
	"testing"
	"time"
)

func TestSessionValid(t *testing.T) {
	now := time.Now()

	var nilSession *Session
	if nilSession.Valid(now) {
		t.Errorf("expected nil session to be invalid")
	}

	anonymous := &Session{Authenticated: false, ExpiresAt: now.Add(time.Hour)}
	if anonymous.Valid(now) {
		t.Errorf("expected unauthenticated session to be invalid")
	}

	expired := &Session{Authenticated: true, ExpiresAt: now.Add(-time.Second)}
	if expired.Valid(now) {
		t.Errorf("expected expired session to be invalid")
	}

	live := &Session{Authenticated: true, Username: "dj", ExpiresAt: now.Add(time.Hour)}
	if !live.Valid(now) {
		t.Errorf("expected live session to be valid")
	}
}
