package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caterly/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for catalog business logic
type Service interface {
	CreateItem(ctx context.Context, adminID uuid.UUID, req CreateCatalogItemRequest) (*CatalogItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*CatalogItemResponse, error)
	GetBookableItem(ctx context.Context, id uuid.UUID) (*CatalogItem, error)
	UpdateItem(ctx context.Context, id, adminID uuid.UUID, req UpdateCatalogItemRequest) (*CatalogItemResponse, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context, query CatalogListQuery) (*PaginatedCatalogItems, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates a new catalog service instance
func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
	}
}

func itemCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("caterly:catalog:item:%s", id)
}

func (s *service) CreateItem(ctx context.Context, adminID uuid.UUID, req CreateCatalogItemRequest) (*CatalogItemResponse, error) {
	if req.MaximumGuests > 0 && req.MaximumGuests < req.MinimumGuests {
		return nil, errors.New("maximum guests cannot be below minimum guests")
	}

	item := &CatalogItem{
		Name:           req.Name,
		Description:    req.Description,
		CatererName:    req.CatererName,
		Cuisine:        req.Cuisine,
		PricePerPerson: req.PricePerPerson,
		ServiceFeePct:  req.ServiceFeePct,
		DeliveryFee:    req.DeliveryFee,
		SetupFee:       req.SetupFee,
		AdditionalFees: req.AdditionalFees,
		DepositPct:     req.DepositPct,
		MinimumGuests:  req.MinimumGuests,
		MaximumGuests:  req.MaximumGuests,
		Status:         ItemStatusDraft,
		ImageURL:       req.ImageURL,
		CreatedBy:      adminID,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create catalog item: %w", err)
	}

	resp := item.ToResponse()
	return &resp, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*CatalogItemResponse, error) {
	item, err := s.getCached(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := item.ToResponse()
	return &resp, nil
}

// GetBookableItem returns the full item record if it accepts bookings.
// Used by the booking wizard to source the pricing rule.
func (s *service) GetBookableItem(ctx context.Context, id uuid.UUID) (*CatalogItem, error) {
	item, err := s.getCached(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsBookable() {
		return nil, errors.New("catalog item is not available for booking")
	}
	return item, nil
}

func (s *service) getCached(ctx context.Context, id uuid.UUID) (*CatalogItem, error) {
	var item CatalogItem
	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, itemCacheKey(id), s.cacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &item)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				return nil, ErrItemNotFound
			}
			return nil, fmt.Errorf("failed to get catalog item: %w", err)
		}
		return &item, nil
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateItem(ctx context.Context, id, adminID uuid.UUID, req UpdateCatalogItemRequest) (*CatalogItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.CatererName != nil {
		item.CatererName = *req.CatererName
	}
	if req.Cuisine != nil {
		item.Cuisine = *req.Cuisine
	}
	if req.PricePerPerson != nil {
		item.PricePerPerson = *req.PricePerPerson
	}
	if req.ServiceFeePct != nil {
		item.ServiceFeePct = *req.ServiceFeePct
	}
	if req.DeliveryFee != nil {
		item.DeliveryFee = *req.DeliveryFee
	}
	if req.SetupFee != nil {
		item.SetupFee = *req.SetupFee
	}
	if req.AdditionalFees != nil {
		item.AdditionalFees = *req.AdditionalFees
	}
	if req.DepositPct != nil {
		item.DepositPct = *req.DepositPct
	}
	if req.MinimumGuests != nil {
		item.MinimumGuests = *req.MinimumGuests
	}
	if req.MaximumGuests != nil {
		item.MaximumGuests = *req.MaximumGuests
	}
	if req.Status != nil {
		item.Status = ItemStatus(*req.Status)
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if item.MaximumGuests > 0 && item.MaximumGuests < item.MinimumGuests {
		return nil, errors.New("maximum guests cannot be below minimum guests")
	}

	item.UpdatedBy = &adminID

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update catalog item: %w", err)
	}

	// Invalidate stale cached copy
	if s.cache != nil {
		if err := s.cache.Delete(ctx, itemCacheKey(id)); err != nil {
			// Cache invalidation failure is non-fatal; the entry expires with its TTL
			fmt.Printf("Warning: failed to invalidate catalog cache for %s: %v\n", id, err)
		}
	}

	resp := item.ToResponse()
	return &resp, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, itemCacheKey(id)); err != nil {
			fmt.Printf("Warning: failed to invalidate catalog cache for %s: %v\n", id, err)
		}
	}

	return nil
}

func (s *service) ListItems(ctx context.Context, query CatalogListQuery) (*PaginatedCatalogItems, error) {
	items, totalCount, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}

	responses := make([]CatalogItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, items[i].ToResponse())
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	return &PaginatedCatalogItems{
		Items:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}
