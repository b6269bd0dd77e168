package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/onurcolak/listener-text-service/internal/domain"
)

type fakeSettingsRepo struct {
	values map[string]bool
	setErr error
}

func (r *fakeSettingsRepo) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

func (r *fakeSettingsRepo) SetBool(ctx context.Context, key string, value bool) error {
	if r.setErr != nil {
		return r.setErr
	}
	if r.values == nil {
		r.values = make(map[string]bool)
	}
	r.values[key] = value
	return nil
}

func TestMessagingEnabled_DefaultsToTrue(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, &fakeHub{})

	enabled, err := svc.MessagingEnabled(context.Background())
	if err != nil {
		t.Fatalf("MessagingEnabled returned error: %v", err)
	}
	if !enabled {
		t.Fatalf("expected messaging enabled by default")
	}
}

func TestSetMessagingEnabled_BroadcastsNewValue(t *testing.T) {
	repo := &fakeSettingsRepo{}
	hub := &fakeHub{}
	svc := NewSettingsService(repo, hub)

	enabled, err := svc.SetMessagingEnabled(context.Background(), false)
	if err != nil {
		t.Fatalf("SetMessagingEnabled returned error: %v", err)
	}
	if enabled {
		t.Errorf("expected false to be returned")
	}

	if got, _ := svc.MessagingEnabled(context.Background()); got {
		t.Errorf("expected stored value false")
	}

	if len(hub.events) != 1 || hub.events[0].eventType != domain.EventSettingsUpdated {
		t.Fatalf("expected one %s event, got %+v", domain.EventSettingsUpdated, hub.events)
	}
	if string(hub.events[0].payload) != `{"messagingEnabled":false}` {
		t.Errorf("unexpected payload %s", hub.events[0].payload)
	}

	var update domain.SettingsUpdate
	if err := json.Unmarshal(hub.events[0].payload, &update); err != nil || update.MessagingEnabled {
		t.Errorf("unexpected decoded payload %+v (err %v)", update, err)
	}
}

func TestSetMessagingEnabled_StorageFailureBroadcastsNothing(t *testing.T) {
	repo := &fakeSettingsRepo{setErr: domain.ErrStorage}
	hub := &fakeHub{}
	svc := NewSettingsService(repo, hub)

	if _, err := svc.SetMessagingEnabled(context.Background(), true); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(hub.events) != 0 {
		t.Fatalf("expected no broadcast")
	}
}
