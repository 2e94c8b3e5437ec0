package support

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a customer support request. Tickets are created by anyone
// (authenticated or not) and worked by admins.
type Ticket struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TicketRef string    `gorm:"unique;not null;size:30" json:"ticket_ref"`

	// UserID is set when the requester was authenticated
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`

	Name    string `gorm:"not null;size:255" json:"name"`
	Email   string `gorm:"not null;size:255" json:"email"`
	Subject string `gorm:"not null;size:255" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	// BookingRef links the ticket to a booking when the user supplied one
	BookingRef string `gorm:"size:30" json:"booking_ref,omitempty"`

	Status     TicketStatus `gorm:"type:varchar(20);default:'OPEN'" json:"status"`
	Resolution string       `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedBy *uuid.UUID   `gorm:"type:uuid" json:"resolved_by,omitempty"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for Ticket
func (Ticket) TableName() string {
	return "support_tickets"
}

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "OPEN"
	TicketStatusResolved TicketStatus = "RESOLVED"
	TicketStatusClosed   TicketStatus = "CLOSED"
)

func (t *Ticket) IsOpen() bool {
	return t.Status == TicketStatusOpen
}

// Resolve marks the ticket resolved with the admin's note
func (t *Ticket) Resolve(adminID uuid.UUID, resolution string) {
	now := time.Now()
	t.Status = TicketStatusResolved
	t.Resolution = resolution
	t.ResolvedBy = &adminID
	t.ResolvedAt = &now
	t.UpdatedAt = now
}

type CreateTicketRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email"`
	Subject    string `json:"subject" binding:"required,max=255"`
	Message    string `json:"message" binding:"required,max=5000"`
	BookingRef string `json:"booking_ref" binding:"omitempty,max=30"`
}

type ResolveTicketRequest struct {
	Resolution string `json:"resolution" binding:"required,max=5000"`
}

type TicketListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=OPEN RESOLVED CLOSED"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}

type PaginatedTickets struct {
	Tickets    []Ticket `json:"tickets"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}
