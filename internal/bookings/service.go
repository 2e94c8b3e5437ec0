package bookings

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"caterly/internal/catalog"
	"caterly/internal/pricing"
	"caterly/internal/shared/utils/response"
	"caterly/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionOwnership      = errors.New("wizard session belongs to another user")
	ErrSubmitInProgress      = errors.New("a submission for this session is already in progress")
	ErrValidationFailed      = errors.New("wizard validation failed")
	ErrBookingNotCancellable = errors.New("booking is already cancelled")
)

// CatalogService is the slice of the catalog package the wizard needs.
// Declared locally so the dependency surface stays explicit.
type CatalogService interface {
	GetBookableItem(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error)
}

// PromotionValidator resolves a promo code into a discount off the given
// total. Preview checks without consuming; Redeem consumes one redemption.
// A nil implementation disables promotions.
type PromotionValidator interface {
	Preview(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error)
	Redeem(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error)
}

// NotificationPublisher emits domain events for async delivery. Publish
// failures never fail the booking itself.
type NotificationPublisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]interface{}) error
}

type Service interface {
	StartWizard(ctx context.Context, userID uuid.UUID, req StartWizardRequest) (*WizardSessionResponse, error)
	GetWizard(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSessionResponse, error)
	SetEventDetails(ctx context.Context, userID uuid.UUID, sessionID string, payload EventDetailsPayload) (*WizardSessionResponse, error)
	SetServiceDetails(ctx context.Context, userID uuid.UUID, sessionID string, payload ServiceDetailsPayload) (*WizardSessionResponse, []response.FieldError, error)
	SetContactInfo(ctx context.Context, userID uuid.UUID, sessionID string, payload ContactInfoPayload) (*WizardSessionResponse, error)
	Advance(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSessionResponse, []response.FieldError, error)
	Retreat(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSessionResponse, error)
	Submit(ctx context.Context, userID uuid.UUID, sessionID string, req SubmitWizardRequest) (*BookingResponse, []response.FieldError, error)
	AbandonWizard(ctx context.Context, userID uuid.UUID, sessionID string) error

	GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)
}

type service struct {
	repo       Repository
	sessions   SessionStore
	catalog    CatalogService
	promotions PromotionValidator
	notifier   NotificationPublisher
	engine     *pricing.Engine
	currency   string
	sessionTTL time.Duration
}

func NewService(
	repo Repository,
	sessions SessionStore,
	catalogService CatalogService,
	promotions PromotionValidator,
	notifier NotificationPublisher,
	engine *pricing.Engine,
	currency string,
	sessionTTL time.Duration,
) Service {
	return &service{
		repo:       repo,
		sessions:   sessions,
		catalog:    catalogService,
		promotions: promotions,
		notifier:   notifier,
		engine:     engine,
		currency:   currency,
		sessionTTL: sessionTTL,
	}
}

// === Wizard lifecycle ===

func (s *service) StartWizard(ctx context.Context, userID uuid.UUID, req StartWizardRequest) (*WizardSessionResponse, error) {
	itemID, err := uuid.Parse(req.CatalogItemID)
	if err != nil {
		return nil, errors.New("invalid catalog item ID")
	}

	item, err := s.catalog.GetBookableItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	session := NewWizardSession(userID, item.ID, item.PricingRule())
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.GetDefault().LogWizardSessionStarted(ctx, session.SessionID, item.ID.String())
	return s.toSessionResponse(session), nil
}

func (s *service) GetWizard(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

func (s *service) SetEventDetails(ctx context.Context, userID uuid.UUID, sessionID string, payload EventDetailsPayload) (*WizardSessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Request.EventTitle = payload.EventTitle
	session.Request.EventType = payload.EventType
	session.Request.EventDate = payload.EventDate
	session.Request.StartTime = payload.StartTime
	session.Request.EndTime = payload.EndTime

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

// SetServiceDetails updates the guest count among other fields, so it also
// reports the below-minimum condition as a field error while still saving
// the entered values.
func (s *service) SetServiceDetails(ctx context.Context, userID uuid.UUID, sessionID string, payload ServiceDetailsPayload) (*WizardSessionResponse, []response.FieldError, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	session.Request.GuestCount = payload.GuestCount
	session.Request.Address = payload.Address
	session.Request.City = payload.City
	session.Request.State = payload.State
	session.Request.MenuSelections = payload.MenuSelections
	session.Request.Notes = payload.Notes

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}

	var fieldErrs []response.FieldError
	if payload.GuestCount < session.Rule.MinimumGuests {
		fieldErrs = append(fieldErrs, response.FieldError{
			Field:   "guest_count",
			Message: fmt.Sprintf("guest count must be at least %d", session.Rule.MinimumGuests),
		})
	}

	return s.toSessionResponse(session), fieldErrs, nil
}

func (s *service) SetContactInfo(ctx context.Context, userID uuid.UUID, sessionID string, payload ContactInfoPayload) (*WizardSessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Request.ContactName = payload.ContactName
	session.Request.ContactEmail = payload.ContactEmail
	session.Request.ContactPhone = payload.ContactPhone

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

func (s *service) Advance(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSessionResponse, []response.FieldError, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if fieldErrs := session.Advance(s.engine); len(fieldErrs) > 0 {
		return s.toSessionResponse(session), fieldErrs, nil
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return s.toSessionResponse(session), nil, nil
}

func (s *service) Retreat(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSessionResponse, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Retreat()

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.toSessionResponse(session), nil
}

// Submit finalizes the wizard: every step is re-validated, the quote is
// recomputed from the session's rule snapshot, and the confirmed booking
// is written. On any failure the session survives with all entered data.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, sessionID string, req SubmitWizardRequest) (*BookingResponse, []response.FieldError, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.Submitting {
		return nil, nil, ErrSubmitInProgress
	}

	var allErrs []response.FieldError
	for step := StepEventDetails; step <= StepReview; step++ {
		allErrs = append(allErrs, session.ValidateStep(step, s.engine)...)
	}
	if len(allErrs) > 0 {
		return nil, allErrs, ErrValidationFailed
	}

	session.Submitting = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}

	booking, err := s.createBooking(ctx, session, req.PromoCode)
	if err != nil {
		// Release the guard so the user can retry with their data intact
		session.Submitting = false
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			logger.GetDefault().Error("failed to release submit guard", "session_id", sessionID, "error", saveErr)
		}
		return nil, nil, err
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		logger.GetDefault().Warn("failed to delete wizard session after submit", "session_id", sessionID, "error", err)
	}

	s.publishEvent(ctx, "booking.confirmed", booking)
	logger.GetDefault().LogBookingSubmitted(ctx, booking.BookingRef, sessionID)

	resp := booking.ToResponse()
	return &resp, nil, nil
}

func (s *service) AbandonWizard(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if _, err := s.loadOwnedSession(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *service) createBooking(ctx context.Context, session *WizardSession, promoCode string) (*Booking, error) {
	quote := session.Quote(s.engine)
	if quote == nil {
		return nil, errors.New("quote could not be computed for this session")
	}

	eventDate, err := time.Parse("2006-01-02", session.Request.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event date: %w", err)
	}

	booking := &Booking{
		UserID:        session.UserID,
		CatalogItemID: session.CatalogItemID,
		BookingRef:    generateBookingRef(),

		EventTitle: session.Request.EventTitle,
		EventType:  session.Request.EventType,
		EventDate:  eventDate,
		StartTime:  session.Request.StartTime,
		EndTime:    session.Request.EndTime,

		GuestCount:     session.Request.GuestCount,
		Address:        session.Request.Address,
		City:           session.Request.City,
		State:          session.Request.State,
		MenuSelections: strings.Join(session.Request.MenuSelections, ","),
		Notes:          session.Request.Notes,

		ContactName:  session.Request.ContactName,
		ContactEmail: session.Request.ContactEmail,
		ContactPhone: session.Request.ContactPhone,

		BaseAmount:       quote.Base,
		ServiceFee:       quote.ServiceFee,
		FlatFees:         quote.FlatFees,
		TaxAmount:        quote.Tax,
		TotalAmount:      quote.Total,
		DepositAmount:    quote.Deposit,
		RemainingBalance: quote.Remaining,

		Currency: s.currency,
		Status:   StatusConfirmed,
	}

	if promoCode != "" && s.promotions != nil {
		discount, err := s.promotions.Preview(ctx, promoCode, quote.Total)
		if err != nil {
			return nil, err
		}
		booking.PromoCode = strings.ToUpper(promoCode)
		booking.DiscountAmount = discount
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// The redemption is consumed only after the booking row exists, so a
	// failed write cannot burn a campaign slot on a retryable submit.
	if booking.PromoCode != "" && s.promotions != nil {
		if _, err := s.promotions.Redeem(ctx, booking.PromoCode, quote.Total); err != nil {
			logger.GetDefault().Warn("failed to record promo redemption",
				"booking_ref", booking.BookingRef, "promo_code", booking.PromoCode, "error", err)
		}
	}

	return booking, nil
}

// === Confirmed bookings ===

func (s *service) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetByUserID(ctx, userID, query.Page, query.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	totalPages := int(totalCount) / query.Limit
	if int(totalCount)%query.Limit > 0 {
		totalPages++
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if booking.IsCancelled() {
		return nil, ErrBookingNotCancellable
	}

	booking.Cancel()
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "booking.cancelled", booking)
	logger.GetDefault().LogBookingCancelled(ctx, booking.BookingRef, userID.String())

	resp := booking.ToResponse()
	return &resp, nil
}

// === Helpers ===

func (s *service) loadOwnedSession(ctx context.Context, userID uuid.UUID, sessionID string) (*WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionOwnership
	}
	return session, nil
}

func (s *service) toSessionResponse(session *WizardSession) *WizardSessionResponse {
	return &WizardSessionResponse{
		SessionID:     session.SessionID,
		CatalogItemID: session.CatalogItemID.String(),
		CurrentStep:   int(session.CurrentStep),
		StepName:      session.CurrentStep.String(),
		TotalSteps:    TotalSteps,
		Request:       session.Request,
		Quote:         NewQuoteResponse(session.Quote(s.engine), s.currency),
		ExpiresInSecs: int(s.sessionTTL.Seconds()),
	}
}

func (s *service) publishEvent(ctx context.Context, eventType string, booking *Booking) {
	if s.notifier == nil {
		return
	}
	payload := map[string]interface{}{
		"booking_id":    booking.ID.String(),
		"booking_ref":   booking.BookingRef,
		"user_id":       booking.UserID.String(),
		"event_title":   booking.EventTitle,
		"event_date":    booking.EventDate.Format("2006-01-02"),
		"guest_count":   booking.GuestCount,
		"total_amount":  booking.TotalAmount.StringFixed(2),
		"deposit":       booking.DepositAmount.StringFixed(2),
		"contact_email": booking.ContactEmail,
		"contact_name":  booking.ContactName,
	}
	if err := s.notifier.Publish(ctx, eventType, payload); err != nil {
		logger.GetDefault().Warn("failed to publish booking event", "event_type", eventType, "booking_ref", booking.BookingRef, "error", err)
	}
}

// generateBookingRef creates a reference like CTR-20260826-A1B2C3
func generateBookingRef() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = charset[rand.Intn(len(charset))]
	}
	return fmt.Sprintf("CTR-%s-%s", time.Now().Format("20060102"), string(suffix))
}
