package venues

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venue is a bookable location listed on the marketplace
type Venue struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Address     string    `json:"address" gorm:"not null;size:500"`
	City        string    `json:"city" gorm:"not null;size:100"`
	State       string    `json:"state" gorm:"not null;size:100"`

	MinCapacity int             `json:"min_capacity" gorm:"default:0"`
	MaxCapacity int             `json:"max_capacity" gorm:"not null;check:max_capacity > 0"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" gorm:"type:decimal(10,2);default:0"`
	Amenities   string          `json:"amenities" gorm:"type:text"`

	Status   VenueStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`
	ImageURL string      `json:"image_url" gorm:"size:500"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Venue) TableName() string {
	return "venues"
}

type VenueStatus string

const (
	VenueStatusDraft     VenueStatus = "draft"
	VenueStatusPublished VenueStatus = "published"
	VenueStatusArchived  VenueStatus = "archived"
)

type VenueResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	MinCapacity int             `json:"min_capacity"`
	MaxCapacity int             `json:"max_capacity"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Amenities   string          `json:"amenities"`
	Status      VenueStatus     `json:"status"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateVenueRequest struct {
	Name        string          `json:"name" binding:"required,min=3,max=255"`
	Description string          `json:"description" binding:"max=2000"`
	Address     string          `json:"address" binding:"required,min=5,max=500"`
	City        string          `json:"city" binding:"required,max=100"`
	State       string          `json:"state" binding:"required,max=100"`
	MinCapacity int             `json:"min_capacity" binding:"omitempty,min=0"`
	MaxCapacity int             `json:"max_capacity" binding:"required,min=1,max=100000"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Amenities   string          `json:"amenities" binding:"max=2000"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url"`
}

type UpdateVenueRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Address     *string          `json:"address" binding:"omitempty,min=5,max=500"`
	City        *string          `json:"city" binding:"omitempty,max=100"`
	State       *string          `json:"state" binding:"omitempty,max=100"`
	MinCapacity *int             `json:"min_capacity" binding:"omitempty,min=0"`
	MaxCapacity *int             `json:"max_capacity" binding:"omitempty,min=1,max=100000"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	Amenities   *string          `json:"amenities" binding:"omitempty,max=2000"`
	Status      *string          `json:"status" binding:"omitempty,oneof=draft published archived"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url"`
}

type VenueListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	City      string `form:"city"`
	State     string `form:"state"`
	MinGuests int    `form:"min_guests" binding:"omitempty,min=1"`
	Status    string `form:"status" binding:"omitempty,oneof=draft published archived"`
}

type PaginatedVenues struct {
	Venues     []VenueResponse `json:"venues"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ToResponse converts a Venue to its API shape
func (v *Venue) ToResponse() VenueResponse {
	return VenueResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Description: v.Description,
		Address:     v.Address,
		City:        v.City,
		State:       v.State,
		MinCapacity: v.MinCapacity,
		MaxCapacity: v.MaxCapacity,
		HourlyRate:  v.HourlyRate,
		Amenities:   v.Amenities,
		Status:      v.Status,
		ImageURL:    v.ImageURL,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
