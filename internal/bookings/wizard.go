package bookings

import (
	"time"

	"caterly/internal/pricing"
	"caterly/internal/shared/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Step identifies a wizard section. Steps are ordered; progression is
// gated by per-step validation, moving backward is always allowed.
type Step int

const (
	StepEventDetails Step = iota + 1
	StepServiceDetails
	StepContactInfo
	StepReview
)

// TotalSteps is the number of wizard sections
const TotalSteps = 4

func (s Step) String() string {
	switch s {
	case StepEventDetails:
		return "event_details"
	case StepServiceDetails:
		return "service_details"
	case StepContactInfo:
		return "contact_info"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// BookingRequest is the form state a wizard session accumulates. Fields
// are updated through the typed per-step payloads in request-dto.go,
// never through free-form key/value mutation.
type BookingRequest struct {
	// Step 1: event details
	EventTitle string `json:"event_title"`
	EventType  string `json:"event_type"`
	EventDate  string `json:"event_date"` // 2006-01-02
	StartTime  string `json:"start_time"` // 15:04
	EndTime    string `json:"end_time"`   // 15:04

	// Step 2: service details
	GuestCount     int      `json:"guest_count"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	MenuSelections []string `json:"menu_selections,omitempty"`
	Notes          string   `json:"notes,omitempty"`

	// Step 3: contact info
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// WizardSession is the in-flight state of one booking wizard. It lives in
// Redis with a TTL and is owned by a single user; there is no shared
// mutable state across sessions.
type WizardSession struct {
	SessionID     string         `json:"session_id"`
	UserID        uuid.UUID      `json:"user_id"`
	CatalogItemID uuid.UUID      `json:"catalog_item_id"`
	CurrentStep   Step           `json:"current_step"`
	Request       BookingRequest `json:"request"`

	// Pricing rule snapshot taken when the session was opened, so quote
	// previews stay stable even if the catalog item is edited mid-wizard.
	Rule pricing.Rule `json:"rule"`

	// Submitting guards against duplicate concurrent submissions from the
	// same session. It is a debounce flag, not a lock.
	Submitting bool `json:"submitting"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var validate = validator.New()

// NewWizardSession opens a session at step 1 with an empty request
func NewWizardSession(userID, catalogItemID uuid.UUID, rule pricing.Rule) *WizardSession {
	now := time.Now()
	return &WizardSession{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		CatalogItemID: catalogItemID,
		CurrentStep:   StepEventDetails,
		Rule:          rule,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ValidateStep runs the step's predicate over the current request and
// returns field-keyed errors. An empty slice means the step passes.
func (s *WizardSession) ValidateStep(step Step, engine *pricing.Engine) []response.FieldError {
	var errs []response.FieldError

	switch step {
	case StepEventDetails:
		errs = appendRequired(errs, "event_title", s.Request.EventTitle, "event title is required")
		errs = appendRequired(errs, "event_type", s.Request.EventType, "event type is required")
		if s.Request.EventDate == "" {
			errs = append(errs, response.FieldError{Field: "event_date", Message: "event date is required"})
		} else if _, err := time.Parse("2006-01-02", s.Request.EventDate); err != nil {
			errs = append(errs, response.FieldError{Field: "event_date", Message: "event date must be in YYYY-MM-DD format"})
		}
		errs = appendRequired(errs, "start_time", s.Request.StartTime, "start time is required")
		errs = appendRequired(errs, "end_time", s.Request.EndTime, "end time is required")

	case StepServiceDetails:
		if s.Request.GuestCount <= 0 {
			errs = append(errs, response.FieldError{Field: "guest_count", Message: "guest count is required"})
		} else if s.Request.GuestCount < s.Rule.MinimumGuests {
			errs = append(errs, response.FieldError{
				Field:   "guest_count",
				Message: "guest count is below the caterer's minimum",
			})
		}
		errs = appendRequired(errs, "address", s.Request.Address, "address is required")
		errs = appendRequired(errs, "city", s.Request.City, "city is required")
		errs = appendRequired(errs, "state", s.Request.State, "state is required")

	case StepContactInfo:
		errs = appendRequired(errs, "contact_name", s.Request.ContactName, "contact name is required")
		if s.Request.ContactEmail == "" {
			errs = append(errs, response.FieldError{Field: "contact_email", Message: "contact email is required"})
		} else if err := validate.Var(s.Request.ContactEmail, "email"); err != nil {
			errs = append(errs, response.FieldError{Field: "contact_email", Message: "contact email is not a valid email address"})
		}
		errs = appendRequired(errs, "contact_phone", s.Request.ContactPhone, "contact phone is required")

	case StepReview:
		// Review requires a computable quote
		if s.Quote(engine) == nil {
			errs = append(errs, response.FieldError{
				Field:   "guest_count",
				Message: "a quote cannot be computed; please complete previous steps",
			})
		}
	}

	return errs
}

func appendRequired(errs []response.FieldError, field, value, message string) []response.FieldError {
	if value == "" {
		errs = append(errs, response.FieldError{Field: field, Message: message})
	}
	return errs
}

// Advance moves to the next step if the current step validates. It never
// moves past the last step, and a failed validation leaves the step and
// the entered data untouched.
func (s *WizardSession) Advance(engine *pricing.Engine) []response.FieldError {
	if errs := s.ValidateStep(s.CurrentStep, engine); len(errs) > 0 {
		return errs
	}

	if s.CurrentStep < TotalSteps {
		s.CurrentStep++
		s.UpdatedAt = time.Now()
	}
	return nil
}

// Retreat moves back one step unconditionally, clamped at step 1
func (s *WizardSession) Retreat() {
	if s.CurrentStep > StepEventDetails {
		s.CurrentStep--
		s.UpdatedAt = time.Now()
	}
}

// Quote computes the current pricing breakdown, or nil while the guest
// count is missing or below the caterer's minimum.
func (s *WizardSession) Quote(engine *pricing.Engine) *pricing.Quote {
	return engine.Quote(s.Request.GuestCount, s.Rule)
}

// ReadyToSubmit reports whether every step validates
func (s *WizardSession) ReadyToSubmit(engine *pricing.Engine) bool {
	for step := StepEventDetails; step <= StepReview; step++ {
		if len(s.ValidateStep(step, engine)) > 0 {
			return false
		}
	}
	return true
}
