package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is the confirmed record created when a wizard session is
// submitted. The quote breakdown is flattened into decimal columns so the
// displayed numbers are reproducible from the stored row.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CatalogItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"catalog_item_id"`
	BookingRef    string    `gorm:"unique;not null" json:"booking_ref"`

	// Event details
	EventTitle string    `gorm:"not null;size:255" json:"event_title"`
	EventType  string    `gorm:"not null;size:100" json:"event_type"`
	EventDate  time.Time `gorm:"not null" json:"event_date"`
	StartTime  string    `gorm:"size:10;not null" json:"start_time"`
	EndTime    string    `gorm:"size:10;not null" json:"end_time"`

	// Service details
	GuestCount     int    `gorm:"not null" json:"guest_count"`
	Address        string `gorm:"not null;size:500" json:"address"`
	City           string `gorm:"not null;size:100" json:"city"`
	State          string `gorm:"not null;size:100" json:"state"`
	MenuSelections string `gorm:"type:text" json:"menu_selections"`
	Notes          string `gorm:"type:text" json:"notes"`

	// Contact info
	ContactName  string `gorm:"not null;size:255" json:"contact_name"`
	ContactEmail string `gorm:"not null;size:255" json:"contact_email"`
	ContactPhone string `gorm:"not null;size:50" json:"contact_phone"`

	// Quote breakdown (full precision preserved in numeric columns)
	BaseAmount       decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"base_amount"`
	ServiceFee       decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"service_fee"`
	FlatFees         decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"flat_fees"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"tax_amount"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"total_amount"`
	DepositAmount    decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"deposit_amount"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"remaining_balance"`

	// Promotion, if one was applied at submission
	PromoCode      string          `gorm:"size:50" json:"promo_code,omitempty"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,4);default:0" json:"discount_amount"`

	Currency string `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	Status      Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Helper methods for booking management

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) Cancel() {
	b.Status = StatusCancelled
	now := time.Now()
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// AmountDue is the total after any promotion discount
func (b *Booking) AmountDue() decimal.Decimal {
	return b.TotalAmount.Sub(b.DiscountAmount)
}
