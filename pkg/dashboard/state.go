// Package dashboard is a Go client for the staff dashboard: it logs in, takes
// a snapshot of recent messages and the messaging toggle, then keeps that view
// current from the live event channel.
package dashboard

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/onurcolak/listener-text-service/internal/domain"
)

// View is an immutable copy of the reconciled state.
type View struct {
	Messages         []domain.Message
	MessagingEnabled bool
	Unread           int
}

// State merges one snapshot with the events that follow it. Messages keep
// the order the snapshot and message:new gave them; updates replace in place.
type State struct {
	mu               sync.RWMutex
	messages         []domain.Message
	messagingEnabled bool
}

func NewState() *State {
	return &State{messagingEnabled: true}
}

// Reset replaces all local state with a fresh snapshot.
func (s *State) Reset(messages []domain.Message, messagingEnabled bool) {
	copied := make([]domain.Message, len(messages))
	copy(copied, messages)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = copied
	s.messagingEnabled = messagingEnabled
}

// Apply merges one live event. Unknown event types are ignored.
func (s *State) Apply(event domain.Event) error {
	switch event.Type {
	case domain.EventMessageNew:
		var msg domain.Message
		if err := json.Unmarshal(event.Data, &msg); err != nil {
			return fmt.Errorf("failed to decode %s: %w", event.Type, err)
		}
		s.prepend(msg)

	case domain.EventMessageUpdated:
		var msg domain.Message
		if err := json.Unmarshal(event.Data, &msg); err != nil {
			return fmt.Errorf("failed to decode %s: %w", event.Type, err)
		}
		s.replace(msg)

	case domain.EventSettingsUpdated:
		var update domain.SettingsUpdate
		if err := json.Unmarshal(event.Data, &update); err != nil {
			return fmt.Errorf("failed to decode %s: %w", event.Type, err)
		}
		s.mu.Lock()
		s.messagingEnabled = update.MessagingEnabled
		s.mu.Unlock()
	}

	return nil
}

// prepend is idempotent against duplicate delivery.
func (s *State) prepend(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(msg.ID) >= 0 {
		return
	}
	s.messages = append([]domain.Message{msg}, s.messages...)
}

// replace keeps the entry's position; an id outside the snapshot is dropped.
func (s *State) replace(msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(msg.ID); i >= 0 {
		s.messages[i] = msg
	}
}

func (s *State) indexLocked(id int64) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *State) MessagingEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messagingEnabled
}

// UnreadCount is what the dashboard shows in its tab title.
func (s *State) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadLocked()
}

func (s *State) unreadLocked() int {
	n := 0
	for i := range s.messages {
		if !s.messages[i].Read {
			n++
		}
	}
	return n
}

func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]domain.Message, len(s.messages))
	copy(messages, s.messages)

	return View{
		Messages:         messages,
		MessagingEnabled: s.messagingEnabled,
		Unread:           s.unreadLocked(),
	}
}
