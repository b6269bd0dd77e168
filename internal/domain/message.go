package domain

import "time"

// Message is one inbound listener text together with its staff-side state.
// Replied, ReplyText and RepliedAt are always written together.
type Message struct {
	ID        int64      `db:"id" json:"id"`
	Phone     string     `db:"phone" json:"phone"`
	Text      string     `db:"text" json:"text"`
	Timestamp time.Time  `db:"received_at" json:"timestamp"`
	Read      bool       `db:"is_read" json:"read"`
	Replied   bool       `db:"replied" json:"replied"`
	ReplyText *string    `db:"reply_text" json:"replyText"`
	RepliedAt *time.Time `db:"replied_at" json:"repliedAt"`
}

// MessageStats summarises the full history for the admin listing.
type MessageStats struct {
	Total   int64 `db:"total" json:"total"`
	Unread  int64 `db:"unread" json:"unread"`
	Replied int64 `db:"replied" json:"replied"`
}

// CarrierRequest is the outbound send payload handed to the SMS gateway.
type CarrierRequest struct {
	To   string
	From string
	Body string
}

// CarrierResponse is the subset of the gateway's message resource we keep.
type CarrierResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorCode    *int    `json:"error_code,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}
