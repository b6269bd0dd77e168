package service

import (
	"context"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

type settingsRepository interface {
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

type SettingsService struct {
	repo settingsRepository
	hub  broadcaster
}

func NewSettingsService(repo settingsRepository, hub broadcaster) *SettingsService {
	return &SettingsService{repo: repo, hub: hub}
}

// MessagingEnabled reads the toggle; an unset toggle means enabled.
func (s *SettingsService) MessagingEnabled(ctx context.Context) (bool, error) {
	return s.repo.GetBool(ctx, domain.SettingMessagingEnabled, true)
}

// SetMessagingEnabled overwrites the toggle and switches every open dashboard.
func (s *SettingsService) SetMessagingEnabled(ctx context.Context, enabled bool) (bool, error) {
	if err := s.repo.SetBool(ctx, domain.SettingMessagingEnabled, enabled); err != nil {
		return false, err
	}

	logger.Infof("Messaging enabled set to %t", enabled)

	if s.hub != nil {
		if err := s.hub.Broadcast(domain.EventSettingsUpdated, domain.SettingsUpdate{MessagingEnabled: enabled}); err != nil {
			logger.Errorf("Failed to broadcast settings update: %v", err)
		}
	}

	return enabled, nil
}
