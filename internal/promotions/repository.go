package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCampaignNotFound = errors.New("promotion campaign not found")

type Repository interface {
	Create(ctx context.Context, campaign *Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	GetByCode(ctx context.Context, code string) (*Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Campaign, error)
	IncrementRedemptions(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, campaign *Campaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	var campaign Campaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &campaign, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Campaign, error) {
	var campaign Campaign
	err := r.db.WithContext(ctx).Where("UPPER(code) = ?", strings.ToUpper(code)).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign by code: %w", err)
	}
	return &campaign, nil
}

func (r *repository) Update(ctx context.Context, campaign *Campaign) error {
	if err := r.db.WithContext(ctx).Save(campaign).Error; err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Campaign{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Campaign, error) {
	var campaigns []Campaign
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// IncrementRedemptions bumps the counter atomically in the database, so
// concurrent submissions cannot double-spend a capped campaign's last slot
// without being visible in the count.
func (r *repository) IncrementRedemptions(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&Campaign{}).
		Where("id = ?", id).
		UpdateColumn("redeemed_count", gorm.Expr("redeemed_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment redemptions: %w", err)
	}
	return nil
}
