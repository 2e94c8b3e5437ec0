package bookings

import (
	"strings"
	"time"

	"caterly/internal/pricing"
)

// QuoteResponse is the wire shape of a pricing breakdown. Amounts are
// rendered at two decimal places; the identities hold over the unrounded
// values stored alongside the booking.
type QuoteResponse struct {
	Base       string `json:"base"`
	ServiceFee string `json:"service_fee"`
	FlatFees   string `json:"flat_fees"`
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	Total      string `json:"total"`
	Deposit    string `json:"deposit"`
	Remaining  string `json:"remaining"`
	Currency   string `json:"currency"`
}

func NewQuoteResponse(q *pricing.Quote, currency string) *QuoteResponse {
	if q == nil {
		return nil
	}
	r := q.Rounded()
	return &QuoteResponse{
		Base:       r.Base.StringFixed(2),
		ServiceFee: r.ServiceFee.StringFixed(2),
		FlatFees:   r.FlatFees.StringFixed(2),
		Subtotal:   r.Subtotal.StringFixed(2),
		Tax:        r.Tax.StringFixed(2),
		Total:      r.Total.StringFixed(2),
		Deposit:    r.Deposit.StringFixed(2),
		Remaining:  r.Remaining.StringFixed(2),
		Currency:   currency,
	}
}

// WizardSessionResponse is the session state returned after every wizard
// operation, including a fresh quote preview when one is computable.
type WizardSessionResponse struct {
	SessionID     string         `json:"session_id"`
	CatalogItemID string         `json:"catalog_item_id"`
	CurrentStep   int            `json:"current_step"`
	StepName      string         `json:"step_name"`
	TotalSteps    int            `json:"total_steps"`
	Request       BookingRequest `json:"request"`
	Quote         *QuoteResponse `json:"quote,omitempty"`
	ExpiresInSecs int            `json:"expires_in_seconds,omitempty"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	BookingRef    string `json:"booking_ref"`
	CatalogItemID string `json:"catalog_item_id"`

	EventTitle string `json:"event_title"`
	EventType  string `json:"event_type"`
	EventDate  string `json:"event_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`

	GuestCount     int      `json:"guest_count"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	MenuSelections []string `json:"menu_selections,omitempty"`
	Notes          string   `json:"notes,omitempty"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	Quote          QuoteResponse `json:"quote"`
	PromoCode      string        `json:"promo_code,omitempty"`
	DiscountAmount string        `json:"discount_amount,omitempty"`
	AmountDue      string        `json:"amount_due"`

	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func (b *Booking) ToResponse() BookingResponse {
	var menu []string
	if b.MenuSelections != "" {
		menu = strings.Split(b.MenuSelections, ",")
	}

	resp := BookingResponse{
		ID:            b.ID.String(),
		BookingRef:    b.BookingRef,
		CatalogItemID: b.CatalogItemID.String(),

		EventTitle: b.EventTitle,
		EventType:  b.EventType,
		EventDate:  b.EventDate.Format("2006-01-02"),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,

		GuestCount:     b.GuestCount,
		Address:        b.Address,
		City:           b.City,
		State:          b.State,
		MenuSelections: menu,
		Notes:          b.Notes,

		ContactName:  b.ContactName,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,

		Quote: QuoteResponse{
			Base:       b.BaseAmount.StringFixed(2),
			ServiceFee: b.ServiceFee.StringFixed(2),
			FlatFees:   b.FlatFees.StringFixed(2),
			Subtotal:   b.BaseAmount.Add(b.ServiceFee).Add(b.FlatFees).StringFixed(2),
			Tax:        b.TaxAmount.StringFixed(2),
			Total:      b.TotalAmount.StringFixed(2),
			Deposit:    b.DepositAmount.StringFixed(2),
			Remaining:  b.RemainingBalance.StringFixed(2),
			Currency:   b.Currency,
		},
		AmountDue: b.AmountDue().StringFixed(2),

		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}

	if b.PromoCode != "" {
		resp.PromoCode = b.PromoCode
		resp.DiscountAmount = b.DiscountAmount.StringFixed(2)
	}

	return resp
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
