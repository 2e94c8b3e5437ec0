package support

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"caterly/internal/bookings"
	"caterly/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrTicketNotOpen     = errors.New("ticket is not open")
	ErrUnknownBookingRef = errors.New("booking reference does not match any booking")
)

// NotificationPublisher emits ticket events for async delivery
type NotificationPublisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]interface{}) error
}

// BookingDirectory resolves booking references attached to tickets.
// A nil implementation skips the check.
type BookingDirectory interface {
	GetByRef(ctx context.Context, bookingRef string) (*bookings.Booking, error)
}

type Service interface {
	CreateTicket(ctx context.Context, userID *uuid.UUID, req CreateTicketRequest) (*Ticket, error)
	GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error)
	ListTickets(ctx context.Context, query TicketListQuery) (*PaginatedTickets, error)
	ResolveTicket(ctx context.Context, id, adminID uuid.UUID, req ResolveTicketRequest) (*Ticket, error)
}

type service struct {
	repo     Repository
	notifier NotificationPublisher
	bookings BookingDirectory
}

func NewService(repo Repository, notifier NotificationPublisher, bookingDir BookingDirectory) Service {
	return &service{repo: repo, notifier: notifier, bookings: bookingDir}
}

func (s *service) CreateTicket(ctx context.Context, userID *uuid.UUID, req CreateTicketRequest) (*Ticket, error) {
	if req.BookingRef != "" && s.bookings != nil {
		if _, err := s.bookings.GetByRef(ctx, req.BookingRef); err != nil {
			if errors.Is(err, bookings.ErrBookingNotFound) {
				return nil, ErrUnknownBookingRef
			}
			return nil, err
		}
	}

	ticket := &Ticket{
		TicketRef:  generateTicketRef(),
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Subject:    req.Subject,
		Message:    req.Message,
		BookingRef: req.BookingRef,
		Status:     TicketStatusOpen,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		payload := map[string]interface{}{
			"ticket_ref": ticket.TicketRef,
			"email":      ticket.Email,
			"name":       ticket.Name,
			"subject":    ticket.Subject,
		}
		if err := s.notifier.Publish(ctx, "support.ticket_created", payload); err != nil {
			logger.GetDefault().Warn("failed to publish ticket event", "ticket_ref", ticket.TicketRef, "error", err)
		}
	}

	return ticket, nil
}

func (s *service) GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTickets(ctx context.Context, query TicketListQuery) (*PaginatedTickets, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	tickets, totalCount, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	totalPages := int(totalCount) / query.Limit
	if int(totalCount)%query.Limit > 0 {
		totalPages++
	}

	return &PaginatedTickets{
		Tickets:    tickets,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ResolveTicket(ctx context.Context, id, adminID uuid.UUID, req ResolveTicketRequest) (*Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ticket.IsOpen() {
		return nil, ErrTicketNotOpen
	}

	ticket.Resolve(adminID, req.Resolution)

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		payload := map[string]interface{}{
			"ticket_ref": ticket.TicketRef,
			"email":      ticket.Email,
			"name":       ticket.Name,
			"subject":    ticket.Subject,
			"resolution": ticket.Resolution,
		}
		if err := s.notifier.Publish(ctx, "support.ticket_resolved", payload); err != nil {
			logger.GetDefault().Warn("failed to publish ticket event", "ticket_ref", ticket.TicketRef, "error", err)
		}
	}

	return ticket, nil
}

// generateTicketRef creates a reference like SUP-20260826-X4K9Q2
func generateTicketRef() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = charset[rand.Intn(len(charset))]
	}
	return fmt.Sprintf("SUP-%s-%s", time.Now().Format("20060102"), string(suffix))
}
