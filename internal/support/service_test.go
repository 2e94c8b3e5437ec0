package support

import (
	"context"
	"testing"

	"caterly/internal/bookings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tickets map[uuid.UUID]*Ticket
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: make(map[uuid.UUID]*Ticket)}
}

func (r *fakeRepo) Create(ctx context.Context, t *Ticket) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tickets[t.ID] = t
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return t, nil
}

func (r *fakeRepo) Update(ctx context.Context, t *Ticket) error {
	r.tickets[t.ID] = t
	return nil
}

func (r *fakeRepo) List(ctx context.Context, query TicketListQuery) ([]Ticket, int64, error) {
	var out []Ticket
	for _, t := range r.tickets {
		if query.Status == "" || string(t.Status) == query.Status {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) Publish(ctx context.Context, eventType string, payload map[string]interface{}) error {
	f.events = append(f.events, eventType)
	return nil
}

type fakeBookingDir struct {
	refs map[string]*bookings.Booking
}

func (f *fakeBookingDir) GetByRef(ctx context.Context, ref string) (*bookings.Booking, error) {
	b, ok := f.refs[ref]
	if !ok {
		return nil, bookings.ErrBookingNotFound
	}
	return b, nil
}

func TestCreateTicket(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, nil)

	ticket, err := svc.CreateTicket(context.Background(), nil, CreateTicketRequest{
		Name:    "Elena Garcia",
		Email:   "elena@example.com",
		Subject: "Deposit question",
		Message: "How do I pay the remaining balance?",
	})

	require.NoError(t, err)
	assert.Contains(t, ticket.TicketRef, "SUP-")
	assert.Equal(t, TicketStatusOpen, ticket.Status)
	assert.Nil(t, ticket.UserID)
	assert.Equal(t, []string{"support.ticket_created"}, notifier.events)
}

func TestCreateTicketWithAuthenticatedUser(t *testing.T) {
	dir := &fakeBookingDir{refs: map[string]*bookings.Booking{
		"CTR-20261017-A1B2C3": {BookingRef: "CTR-20261017-A1B2C3"},
	}}
	svc := NewService(newFakeRepo(), nil, dir)
	userID := uuid.New()

	ticket, err := svc.CreateTicket(context.Background(), &userID, CreateTicketRequest{
		Name:       "Elena Garcia",
		Email:      "elena@example.com",
		Subject:    "Change guest count",
		Message:    "Can I raise the count on my booking?",
		BookingRef: "CTR-20261017-A1B2C3",
	})

	require.NoError(t, err)
	require.NotNil(t, ticket.UserID)
	assert.Equal(t, userID, *ticket.UserID)
	assert.Equal(t, "CTR-20261017-A1B2C3", ticket.BookingRef)
}

func TestCreateTicketRejectsUnknownBookingRef(t *testing.T) {
	dir := &fakeBookingDir{refs: map[string]*bookings.Booking{}}
	svc := NewService(newFakeRepo(), nil, dir)

	_, err := svc.CreateTicket(context.Background(), nil, CreateTicketRequest{
		Name:       "Elena Garcia",
		Email:      "elena@example.com",
		Subject:    "Wrong reference",
		Message:    "My booking page is blank.",
		BookingRef: "CTR-20261017-ZZZZZZ",
	})

	assert.ErrorIs(t, err, ErrUnknownBookingRef)
}

func TestResolveTicket(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier, nil)
	adminID := uuid.New()

	ticket, err := svc.CreateTicket(context.Background(), nil, CreateTicketRequest{
		Name:    "Elena Garcia",
		Email:   "elena@example.com",
		Subject: "Deposit question",
		Message: "How do I pay the remaining balance?",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveTicket(context.Background(), ticket.ID, adminID, ResolveTicketRequest{
		Resolution: "The remaining balance is collected two weeks before the event.",
	})
	require.NoError(t, err)
	assert.Equal(t, TicketStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, adminID, *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)

	// Resolving twice is rejected
	_, err = svc.ResolveTicket(context.Background(), ticket.ID, adminID, ResolveTicketRequest{Resolution: "again"})
	assert.ErrorIs(t, err, ErrTicketNotOpen)

	assert.Equal(t, []string{"support.ticket_created", "support.ticket_resolved"}, notifier.events)
}

func TestListTicketsFiltersByStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	adminID := uuid.New()

	open, err := svc.CreateTicket(context.Background(), nil, CreateTicketRequest{
		Name: "A", Email: "a@example.com", Subject: "s", Message: "m",
	})
	require.NoError(t, err)
	_, err = svc.CreateTicket(context.Background(), nil, CreateTicketRequest{
		Name: "B", Email: "b@example.com", Subject: "s", Message: "m",
	})
	require.NoError(t, err)

	_, err = svc.ResolveTicket(context.Background(), open.ID, adminID, ResolveTicketRequest{Resolution: "done"})
	require.NoError(t, err)

	result, err := svc.ListTickets(context.Background(), TicketListQuery{Status: "OPEN"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalCount)
}
