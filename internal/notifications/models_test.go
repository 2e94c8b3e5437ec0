package notifications

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventBookingConfirmed, "elena@example.com", "Elena Garcia", map[string]interface{}{
		"booking_ref": "CTR-20261017-A1B2C3",
	})

	assert.Equal(t, StatusQueued, event.Status)
	assert.NotEqual(t, "", event.ID.String())
	assert.Equal(t, "CTR-20261017-A1B2C3", event.PayloadString("booking_ref"))
	assert.Equal(t, "", event.PayloadString("missing"))
}

func TestPartitionKeyPrefersRecipient(t *testing.T) {
	event := NewEvent(EventBookingConfirmed, "elena@example.com", "Elena", nil)
	assert.Equal(t, "elena@example.com", event.PartitionKey())

	anonymous := NewEvent(EventTicketCreated, "", "", nil)
	assert.Equal(t, anonymous.ID.String(), anonymous.PartitionKey())
}

func TestEventRoundTrip(t *testing.T) {
	event := NewEvent(EventBookingCancelled, "elena@example.com", "Elena Garcia", map[string]interface{}{
		"event_title": "Garcia Wedding",
	})

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, EventBookingCancelled, decoded.Type)
	assert.Equal(t, "Garcia Wedding", decoded.PayloadString("event_title"))
}

func TestMarkSentAndFailed(t *testing.T) {
	event := NewEvent(EventTicketResolved, "elena@example.com", "Elena", nil)

	event.MarkSent()
	assert.Equal(t, StatusSent, event.Status)
	assert.NotNil(t, event.SentAt)

	event.MarkFailed(errors.New("smtp timeout"))
	assert.Equal(t, StatusFailed, event.Status)
	require.NotNil(t, event.LastError)
	assert.Equal(t, "smtp timeout", *event.LastError)
}

func TestSubjectFor(t *testing.T) {
	confirmed := NewEvent(EventBookingConfirmed, "e@example.com", "E", map[string]interface{}{
		"event_title": "Garcia Wedding",
	})
	assert.Equal(t, "Booking confirmed: Garcia Wedding", subjectFor(confirmed))

	bare := NewEvent(EventBookingConfirmed, "e@example.com", "E", nil)
	assert.Equal(t, "Your booking is confirmed", subjectFor(bare))

	unknown := NewEvent(EventType("something.else"), "e@example.com", "E", nil)
	assert.Equal(t, "Notification from Caterly", subjectFor(unknown))
}
