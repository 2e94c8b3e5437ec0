package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event carried through the notification topic
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventTicketCreated    EventType = "support.ticket_created"
	EventTicketResolved   EventType = "support.ticket_resolved"
)

type Status string

const (
	StatusQueued  Status = "QUEUED"
	StatusSending Status = "SENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Event is the message envelope published to Kafka. Payload carries the
// event-specific template data; the recipient fields are lifted out so
// consumers can route without inspecting the payload.
type Event struct {
	ID             uuid.UUID              `json:"id"`
	Type           EventType              `json:"type"`
	RecipientEmail string                 `json:"recipient_email"`
	RecipientName  string                 `json:"recipient_name"`
	Payload        map[string]interface{} `json:"payload"`

	Status    Status     `json:"status"`
	LastError *string    `json:"last_error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// NewEvent builds an event envelope with a fresh ID
func NewEvent(eventType EventType, recipientEmail, recipientName string, payload map[string]interface{}) *Event {
	now := time.Now()
	return &Event{
		ID:             uuid.New(),
		Type:           eventType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Payload:        payload,
		Status:         StatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes events for the same recipient to one partition so
// their emails are delivered in order.
func (e *Event) PartitionKey() string {
	if e.RecipientEmail != "" {
		return e.RecipientEmail
	}
	return e.ID.String()
}

func (e *Event) MarkSent() {
	now := time.Now()
	e.Status = StatusSent
	e.SentAt = &now
	e.UpdatedAt = now
}

func (e *Event) MarkFailed(err error) {
	e.Status = StatusFailed
	msg := err.Error()
	e.LastError = &msg
	e.UpdatedAt = time.Now()
}

// PayloadString reads a string value out of the payload, empty if absent
func (e *Event) PayloadString(key string) string {
	if v, ok := e.Payload[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
