package bookings

import (
	"testing"

	"caterly/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRule() pricing.Rule {
	return pricing.Rule{
		PricePerPerson: decimal.NewFromInt(45),
		ServiceFeePct:  decimal.NewFromInt(10),
		DeliveryFee:    decimal.NewFromInt(50),
		DepositPct:     decimal.NewFromInt(30),
		MinimumGuests:  25,
	}
}

func testEngine() *pricing.Engine {
	return pricing.NewEngine(decimal.NewFromFloat(0.085))
}

func completeSession() *WizardSession {
	s := NewWizardSession(uuid.New(), uuid.New(), testRule())
	s.Request = BookingRequest{
		EventTitle:   "Garcia Wedding",
		EventType:    "wedding",
		EventDate:    "2026-10-17",
		StartTime:    "17:00",
		EndTime:      "23:00",
		GuestCount:   100,
		Address:      "100 Main Street",
		City:         "Austin",
		State:        "TX",
		ContactName:  "Elena Garcia",
		ContactEmail: "elena@example.com",
		ContactPhone: "512-555-0142",
	}
	return s
}

func TestNewWizardSessionStartsAtStepOne(t *testing.T) {
	s := NewWizardSession(uuid.New(), uuid.New(), testRule())

	assert.Equal(t, StepEventDetails, s.CurrentStep)
	assert.False(t, s.Submitting)
	assert.NotEmpty(t, s.SessionID)
}

func TestAdvanceBlockedByIncompleteStep(t *testing.T) {
	engine := testEngine()
	s := NewWizardSession(uuid.New(), uuid.New(), testRule())

	errs := s.Advance(engine)

	require.NotEmpty(t, errs)
	assert.Equal(t, StepEventDetails, s.CurrentStep, "failed advance must not move the step")

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["event_title"])
	assert.True(t, fields["event_date"])
}

func TestAdvanceMovesThroughAllSteps(t *testing.T) {
	engine := testEngine()
	s := completeSession()

	for want := StepServiceDetails; want <= StepReview; want++ {
		errs := s.Advance(engine)
		require.Empty(t, errs)
		assert.Equal(t, want, s.CurrentStep)
	}
}

func TestAdvanceClampedAtLastStep(t *testing.T) {
	engine := testEngine()
	s := completeSession()
	s.CurrentStep = StepReview

	errs := s.Advance(engine)

	require.Empty(t, errs)
	assert.Equal(t, StepReview, s.CurrentStep)
}

func TestRetreatIsUnguarded(t *testing.T) {
	s := NewWizardSession(uuid.New(), uuid.New(), testRule())
	s.CurrentStep = StepContactInfo

	// Nothing filled in, retreat still works
	s.Retreat()
	assert.Equal(t, StepServiceDetails, s.CurrentStep)

	s.Retreat()
	assert.Equal(t, StepEventDetails, s.CurrentStep)
}

func TestRetreatClampedAtFirstStep(t *testing.T) {
	s := NewWizardSession(uuid.New(), uuid.New(), testRule())

	s.Retreat()

	assert.Equal(t, StepEventDetails, s.CurrentStep)
}

func TestValidateStepEventDetailsRejectsBadDate(t *testing.T) {
	engine := testEngine()
	s := completeSession()
	s.Request.EventDate = "17/10/2026"

	errs := s.ValidateStep(StepEventDetails, engine)

	require.Len(t, errs, 1)
	assert.Equal(t, "event_date", errs[0].Field)
}

func TestValidateStepServiceDetailsBelowMinimum(t *testing.T) {
	engine := testEngine()
	s := completeSession()
	s.Request.GuestCount = 10

	errs := s.ValidateStep(StepServiceDetails, engine)

	require.Len(t, errs, 1)
	assert.Equal(t, "guest_count", errs[0].Field)
}

func TestValidateStepContactInfoRejectsBadEmail(t *testing.T) {
	engine := testEngine()
	s := completeSession()
	s.Request.ContactEmail = "not-an-email"

	errs := s.ValidateStep(StepContactInfo, engine)

	require.Len(t, errs, 1)
	assert.Equal(t, "contact_email", errs[0].Field)
}

func TestValidateStepReviewRequiresQuote(t *testing.T) {
	engine := testEngine()
	s := completeSession()
	s.Request.GuestCount = 0

	errs := s.ValidateStep(StepReview, engine)

	require.NotEmpty(t, errs)
}

func TestQuoteNilBelowMinimum(t *testing.T) {
	engine := testEngine()
	s := completeSession()
	s.Request.GuestCount = 24

	assert.Nil(t, s.Quote(engine))

	s.Request.GuestCount = 25
	assert.NotNil(t, s.Quote(engine))
}

func TestReadyToSubmit(t *testing.T) {
	engine := testEngine()

	s := completeSession()
	assert.True(t, s.ReadyToSubmit(engine))

	s.Request.ContactEmail = ""
	assert.False(t, s.ReadyToSubmit(engine))
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, "event_details", StepEventDetails.String())
	assert.Equal(t, "service_details", StepServiceDetails.String())
	assert.Equal(t, "contact_info", StepContactInfo.String())
	assert.Equal(t, "review", StepReview.String())
}
