package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"caterly/internal/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory test doubles. The service only sees the Repository,
// SessionStore, and collaborator interfaces, so the tests run without
// Postgres, Redis, or Kafka.

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	failNext error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeRepo) GetByRef(ctx context.Context, ref string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingRef == ref {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *fakeRepo) GetByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Update(ctx context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = booking
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*WizardSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*WizardSession)}
}

func (s *fakeSessionStore) Save(ctx context.Context, session *WizardSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.SessionID] = &copied
	return nil
}

func (s *fakeSessionStore) Get(ctx context.Context, sessionID string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type fakeCatalog struct {
	item *catalog.CatalogItem
	err  error
}

func (f *fakeCatalog) GetBookableItem(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

type fakePromotions struct {
	discount  decimal.Decimal
	err       error
	previewed []string
	redeemed  []string
}

func (f *fakePromotions) Preview(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	f.previewed = append(f.previewed, code)
	return f.discount, nil
}

func (f *fakePromotions) Redeem(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	f.redeemed = append(f.redeemed, code)
	return f.discount, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (f *fakeNotifier) Publish(ctx context.Context, eventType string, payload map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, eventType)
	return nil
}

type serviceFixture struct {
	service  Service
	repo     *fakeRepo
	sessions *fakeSessionStore
	catalog  *fakeCatalog
	promos   *fakePromotions
	notifier *fakeNotifier
	userID   uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	item := &catalog.CatalogItem{
		ID:             uuid.New(),
		Name:           "Classic Wedding Buffet",
		PricePerPerson: decimal.NewFromInt(45),
		ServiceFeePct:  decimal.NewFromInt(10),
		DeliveryFee:    decimal.NewFromInt(50),
		DepositPct:     decimal.NewFromInt(30),
		MinimumGuests:  25,
		Status:         catalog.ItemStatusPublished,
	}

	f := &serviceFixture{
		repo:     newFakeRepo(),
		sessions: newFakeSessionStore(),
		catalog:  &fakeCatalog{item: item},
		promos:   &fakePromotions{},
		notifier: &fakeNotifier{},
		userID:   uuid.New(),
	}
	f.service = NewService(
		f.repo,
		f.sessions,
		f.catalog,
		f.promos,
		f.notifier,
		testEngine(),
		"USD",
		30*time.Minute,
	)
	return f
}

func (f *serviceFixture) startedSession(t *testing.T) string {
	t.Helper()
	resp, err := f.service.StartWizard(context.Background(), f.userID, StartWizardRequest{
		CatalogItemID: f.catalog.item.ID.String(),
	})
	require.NoError(t, err)
	return resp.SessionID
}

func (f *serviceFixture) fillSession(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.service.SetEventDetails(ctx, f.userID, sessionID, EventDetailsPayload{
		EventTitle: "Garcia Wedding",
		EventType:  "wedding",
		EventDate:  "2026-10-17",
		StartTime:  "17:00",
		EndTime:    "23:00",
	})
	require.NoError(t, err)

	_, fieldErrs, err := f.service.SetServiceDetails(ctx, f.userID, sessionID, ServiceDetailsPayload{
		GuestCount: 100,
		Address:    "100 Main Street",
		City:       "Austin",
		State:      "TX",
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	_, err = f.service.SetContactInfo(ctx, f.userID, sessionID, ContactInfoPayload{
		ContactName:  "Elena Garcia",
		ContactEmail: "elena@example.com",
		ContactPhone: "512-555-0142",
	})
	require.NoError(t, err)
}

func TestStartWizardSnapshotsRule(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.StartWizard(context.Background(), f.userID, StartWizardRequest{
		CatalogItemID: f.catalog.item.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentStep)
	assert.Equal(t, 4, resp.TotalSteps)
	assert.Nil(t, resp.Quote, "no quote before a guest count is entered")

	stored, err := f.sessions.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.True(t, stored.Rule.PricePerPerson.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, 25, stored.Rule.MinimumGuests)
}

func TestStartWizardRejectsUnknownItem(t *testing.T) {
	f := newServiceFixture(t)
	f.catalog.err = catalog.ErrItemNotFound

	_, err := f.service.StartWizard(context.Background(), f.userID, StartWizardRequest{
		CatalogItemID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)

	_, err := f.service.GetWizard(context.Background(), uuid.New(), sessionID)

	assert.ErrorIs(t, err, ErrSessionOwnership)
}

func TestQuotePreviewAppearsWithGuestCount(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)

	resp, fieldErrs, err := f.service.SetServiceDetails(context.Background(), f.userID, sessionID, ServiceDetailsPayload{
		GuestCount: 100,
		Address:    "100 Main Street",
		City:       "Austin",
		State:      "TX",
	})

	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, resp.Quote)

	// 45*100=4500 base, 450 service fee, 50 delivery, 5000 subtotal,
	// 425 tax at 8.5%, 5425 total, 1627.50 deposit, 3797.50 remaining
	assert.Equal(t, "4500.00", resp.Quote.Base)
	assert.Equal(t, "450.00", resp.Quote.ServiceFee)
	assert.Equal(t, "50.00", resp.Quote.FlatFees)
	assert.Equal(t, "5000.00", resp.Quote.Subtotal)
	assert.Equal(t, "425.00", resp.Quote.Tax)
	assert.Equal(t, "5425.00", resp.Quote.Total)
	assert.Equal(t, "1627.50", resp.Quote.Deposit)
	assert.Equal(t, "3797.50", resp.Quote.Remaining)
}

func TestSetServiceDetailsKeepsDataBelowMinimum(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)

	resp, fieldErrs, err := f.service.SetServiceDetails(context.Background(), f.userID, sessionID, ServiceDetailsPayload{
		GuestCount: 10,
		Address:    "100 Main Street",
		City:       "Austin",
		State:      "TX",
	})

	require.NoError(t, err)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "guest_count", fieldErrs[0].Field)
	assert.Nil(t, resp.Quote)

	// The entered value is saved even though it fails the minimum
	stored, err := f.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Request.GuestCount)
}

func TestSubmitCreatesBookingAndDeletesSession(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	booking, fieldErrs, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})

	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.NotNil(t, booking)

	assert.Equal(t, "CONFIRMED", booking.Status)
	assert.Contains(t, booking.BookingRef, "CTR-")
	assert.Equal(t, "5425.00", booking.Quote.Total)
	assert.Equal(t, "5425.00", booking.AmountDue)

	_, err = f.sessions.Get(context.Background(), sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, []string{"booking.confirmed"}, f.notifier.events)
}

func TestSubmitIncompleteReturnsAllFieldErrors(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)

	_, fieldErrs, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.NotEmpty(t, fieldErrs)

	// Session survives a failed submission
	_, getErr := f.sessions.Get(context.Background(), sessionID)
	assert.NoError(t, getErr)
}

func TestSubmitFailurePreservesSessionAndReleasesGuard(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	f.repo.failNext = errors.New("connection refused")

	_, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})
	require.Error(t, err)

	stored, getErr := f.sessions.Get(context.Background(), sessionID)
	require.NoError(t, getErr)
	assert.False(t, stored.Submitting, "guard must be released after a failed submit")
	assert.Equal(t, 100, stored.Request.GuestCount, "entered data must survive")

	// Retry succeeds
	booking, fieldErrs, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.NotNil(t, booking)
}

func TestSubmitWhileSubmittingRejected(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	stored, err := f.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	stored.Submitting = true
	require.NoError(t, f.sessions.Save(context.Background(), stored))

	_, _, err = f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})

	assert.ErrorIs(t, err, ErrSubmitInProgress)
}

func TestSubmitWithPromoCode(t *testing.T) {
	f := newServiceFixture(t)
	f.promos.discount = decimal.NewFromFloat(542.50)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	booking, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{PromoCode: "welcome10"})

	require.NoError(t, err)
	assert.Equal(t, []string{"welcome10"}, f.promos.previewed)
	assert.Equal(t, []string{"WELCOME10"}, f.promos.redeemed, "exactly one redemption per booking")
	assert.Equal(t, "WELCOME10", booking.PromoCode)
	assert.Equal(t, "542.50", booking.DiscountAmount)
	assert.Equal(t, "4882.50", booking.AmountDue)
	assert.Equal(t, "5425.00", booking.Quote.Total, "quote identities are untouched by the discount")
}

func TestFailedSubmitDoesNotConsumeRedemption(t *testing.T) {
	f := newServiceFixture(t)
	f.promos.discount = decimal.NewFromFloat(542.50)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	f.repo.failNext = errors.New("connection refused")

	_, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{PromoCode: "WELCOME10"})
	require.Error(t, err)
	assert.Empty(t, f.promos.redeemed, "a failed booking write must not burn a campaign slot")

	// The retry creates one booking and consumes exactly one redemption
	booking, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{PromoCode: "WELCOME10"})
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, []string{"WELCOME10"}, f.promos.redeemed)
}

func TestSubmitWithInvalidPromoFailsAndKeepsSession(t *testing.T) {
	f := newServiceFixture(t)
	f.promos.err = errors.New("promotion code is not redeemable")
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	_, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{PromoCode: "EXPIRED"})
	require.Error(t, err)

	stored, getErr := f.sessions.Get(context.Background(), sessionID)
	require.NoError(t, getErr)
	assert.False(t, stored.Submitting)
}

func TestNotificationFailureDoesNotFailSubmit(t *testing.T) {
	f := newServiceFixture(t)
	f.notifier.err = errors.New("kafka unavailable")
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	booking, fieldErrs, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})

	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.NotNil(t, booking)
}

func TestCancelBooking(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	booking, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})
	require.NoError(t, err)

	bookingID, err := uuid.Parse(booking.ID)
	require.NoError(t, err)

	cancelled, err := f.service.CancelBooking(context.Background(), f.userID, bookingID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// Second cancel is rejected
	_, err = f.service.CancelBooking(context.Background(), f.userID, bookingID)
	assert.ErrorIs(t, err, ErrBookingNotCancellable)

	assert.Equal(t, []string{"booking.confirmed", "booking.cancelled"}, f.notifier.events)
}

func TestCancelBookingOwnership(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)
	f.fillSession(t, sessionID)

	booking, _, err := f.service.Submit(context.Background(), f.userID, sessionID, SubmitWizardRequest{})
	require.NoError(t, err)

	bookingID, err := uuid.Parse(booking.ID)
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), uuid.New(), bookingID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAbandonWizard(t *testing.T) {
	f := newServiceFixture(t)
	sessionID := f.startedSession(t)

	require.NoError(t, f.service.AbandonWizard(context.Background(), f.userID, sessionID))

	_, err := f.sessions.Get(context.Background(), sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
