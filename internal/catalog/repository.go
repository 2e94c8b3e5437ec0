package catalog

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("catalog item not found")

type Repository interface {
	Create(ctx context.Context, item *CatalogItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error)
	Update(ctx context.Context, item *CatalogItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query CatalogListQuery) ([]CatalogItem, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error) {
	var item CatalogItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) Update(ctx context.Context, item *CatalogItem) error {
	item.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CatalogItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, query CatalogListQuery) ([]CatalogItem, int64, error) {
	var items []CatalogItem
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&CatalogItem{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&items).Error

	return items, totalCount, err
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters CatalogListQuery) *gorm.DB {
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR caterer_name ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	if filters.Cuisine != "" {
		query = query.Where("cuisine = ?", filters.Cuisine)
	}

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.MinPrice != "" {
		if minPrice, err := decimal.NewFromString(filters.MinPrice); err == nil {
			query = query.Where("price_per_person >= ?", minPrice)
		}
	}

	if filters.MaxPrice != "" {
		if maxPrice, err := decimal.NewFromString(filters.MaxPrice); err == nil {
			query = query.Where("price_per_person <= ?", maxPrice)
		}
	}

	return query
}

// CalculateTotalPages computes the page count for a paginated result
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
