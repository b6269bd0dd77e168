package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/metrics"
)

// Small internal interfaces so we can test without touching real DB/carrier/hub.
type messageRepository interface {
	Insert(ctx context.Context, phone, text string) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	ListRecent(ctx context.Context, window time.Duration) ([]domain.Message, error)
	ListAll(ctx context.Context) ([]domain.Message, error)
	GetStats(ctx context.Context) (*domain.MessageStats, error)
	SetRead(ctx context.Context, id int64, read bool) (*domain.Message, error)
	SetReplied(ctx context.Context, id int64, replyText string) (*domain.Message, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type carrierClient interface {
	Send(ctx context.Context, phone, body string) (*domain.CarrierResponse, error)
}

type broadcaster interface {
	Broadcast(eventType string, payload any) error
}

type MessageService struct {
	repo    messageRepository
	carrier carrierClient
	hub     broadcaster
	config  environments.MessageConfig
}

func NewMessageService(
	repo messageRepository,
	carrier carrierClient,
	hub broadcaster,
	config environments.MessageConfig,
) *MessageService {
	return &MessageService{
		repo:    repo,
		carrier: carrier,
		hub:     hub,
		config:  config,
	}
}

// Ingest stores an inbound text and announces it to every live dashboard.
// Messages are stored whatever the messaging toggle says.
func (s *MessageService) Ingest(ctx context.Context, phone, text string) (*domain.Message, error) {
	msg, err := s.repo.Insert(ctx, phone, text)
	if err != nil {
		metrics.InboundMessages.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.InboundMessages.WithLabelValues("stored").Inc()
	logger.Infof("Stored inbound message %d from %s", msg.ID, phone)

	s.broadcast(domain.EventMessageNew, msg)

	return msg, nil
}

// ListRecent returns the live-dashboard snapshot: messages inside the configured window.
func (s *MessageService) ListRecent(ctx context.Context) ([]domain.Message, error) {
	return s.repo.ListRecent(ctx, s.config.Window)
}

// ListAll returns the full history with its totals for the admin listing.
func (s *MessageService) ListAll(ctx context.Context) ([]domain.Message, *domain.MessageStats, error) {
	messages, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, nil, err
	}

	return messages, stats, nil
}

func (s *MessageService) SetRead(ctx context.Context, id int64, read bool) (*domain.Message, error) {
	msg, err := s.repo.SetRead(ctx, id, read)
	if err != nil {
		return nil, err
	}

	s.broadcast(domain.EventMessageUpdated, msg)

	return msg, nil
}

// Reply sends replyText to the message's sender and records it only once the
// carrier has accepted it. A delivery failure leaves the message untouched.
func (s *MessageService) Reply(ctx context.Context, id int64, replyText string) (*domain.Message, error) {
	// Whitespace-only replies are empty; otherwise the text is sent as typed.
	if strings.TrimSpace(replyText) == "" {
		return nil, fmt.Errorf("%w: reply text is required", domain.ErrValidation)
	}

	if max := s.config.ReplyMaxLength; max > 0 && utf8.RuneCountInString(replyText) > max {
		return nil, fmt.Errorf("%w: reply text exceeds maximum length of %d characters", domain.ErrValidation, max)
	}

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := s.carrier.Send(ctx, msg.Phone, replyText)
	if err != nil {
		metrics.Replies.WithLabelValues("delivery_failed").Inc()
		logger.Errorf("Failed to deliver reply to message %d: %v", id, err)
		return nil, err
	}

	updated, err := s.repo.SetReplied(ctx, id, replyText)
	if err != nil {
		metrics.Replies.WithLabelValues("storage_failed").Inc()
		logger.Errorf("Reply to message %d was sent (sid %s) but could not be recorded: %v", id, resp.SID, err)
		return nil, err
	}

	metrics.Replies.WithLabelValues("sent").Inc()
	logger.Infof("Replied to message %d (sid: %s)", id, resp.SID)

	s.broadcast(domain.EventMessageUpdated, updated)

	return updated, nil
}

// Delete permanently removes a message. It reports ErrNotFound for unknown ids.
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrNotFound
	}

	logger.Infof("Deleted message %d", id)
	return nil
}

// broadcast never fails the caller: the store write has already committed.
func (s *MessageService) broadcast(eventType string, msg *domain.Message) {
	if s.hub == nil {
		return
	}
	if err := s.hub.Broadcast(eventType, msg); err != nil {
		logger.Errorf("Failed to broadcast %s for message %d: %v", eventType, msg.ID, err)
	}
}
