package domain

import "encoding/json"

const (
	EventMessageNew      = "message:new"
	EventMessageUpdated  = "message:updated"
	EventSettingsUpdated = "settings:updated"
)

// Event is the live-channel frame: {"type": "...", "data": ...}.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEvent marshals payload into an Event of the given type.
func NewEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Data: data}, nil
}
