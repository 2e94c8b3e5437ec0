package venues

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	CreateVenue(ctx context.Context, adminID uuid.UUID, req CreateVenueRequest) (*VenueResponse, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error)
	UpdateVenue(ctx context.Context, id, adminID uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error)
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	ListVenues(ctx context.Context, query VenueListQuery) (*PaginatedVenues, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateVenue(ctx context.Context, adminID uuid.UUID, req CreateVenueRequest) (*VenueResponse, error) {
	if req.MinCapacity > req.MaxCapacity {
		return nil, errors.New("minimum capacity cannot exceed maximum capacity")
	}

	venue := &Venue{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		MinCapacity: req.MinCapacity,
		MaxCapacity: req.MaxCapacity,
		HourlyRate:  req.HourlyRate,
		Amenities:   req.Amenities,
		Status:      VenueStatusDraft,
		ImageURL:    req.ImageURL,
		CreatedBy:   adminID,
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	resp := venue.ToResponse()
	return &resp, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*VenueResponse, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := venue.ToResponse()
	return &resp, nil
}

func (s *service) UpdateVenue(ctx context.Context, id, adminID uuid.UUID, req UpdateVenueRequest) (*VenueResponse, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.City != nil {
		venue.City = *req.City
	}
	if req.State != nil {
		venue.State = *req.State
	}
	if req.MinCapacity != nil {
		venue.MinCapacity = *req.MinCapacity
	}
	if req.MaxCapacity != nil {
		venue.MaxCapacity = *req.MaxCapacity
	}
	if req.HourlyRate != nil {
		venue.HourlyRate = *req.HourlyRate
	}
	if req.Amenities != nil {
		venue.Amenities = *req.Amenities
	}
	if req.Status != nil {
		venue.Status = VenueStatus(*req.Status)
	}
	if req.ImageURL != nil {
		venue.ImageURL = *req.ImageURL
	}

	if venue.MinCapacity > venue.MaxCapacity {
		return nil, errors.New("minimum capacity cannot exceed maximum capacity")
	}

	venue.UpdatedBy = &adminID

	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	resp := venue.ToResponse()
	return &resp, nil
}

func (s *service) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListVenues(ctx context.Context, query VenueListQuery) (*PaginatedVenues, error) {
	venues, totalCount, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	responses := make([]VenueResponse, 0, len(venues))
	for i := range venues {
		responses = append(responses, venues[i].ToResponse())
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	return &PaginatedVenues{
		Venues:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}
