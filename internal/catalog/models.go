package catalog

import (
	"time"

	"caterly/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItem is a caterer package offered on the marketplace. It owns the
// pricing rule the quote engine consumes.
type CatalogItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	CatererName string    `json:"caterer_name" gorm:"not null;size:255"`
	Cuisine     string    `json:"cuisine" gorm:"size:100"`

	// Pricing rule fields, decimal columns so quote identities hold exactly
	PricePerPerson decimal.Decimal `json:"price_per_person" gorm:"type:decimal(10,2);not null"`
	ServiceFeePct  decimal.Decimal `json:"service_fee_pct" gorm:"type:decimal(5,2);default:0"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);default:0"`
	SetupFee       decimal.Decimal `json:"setup_fee" gorm:"type:decimal(10,2);default:0"`
	AdditionalFees decimal.Decimal `json:"additional_fees" gorm:"type:decimal(10,2);default:0"`
	DepositPct     decimal.Decimal `json:"deposit_pct" gorm:"type:decimal(5,2);default:0"`
	MinimumGuests  int             `json:"minimum_guests" gorm:"not null;check:minimum_guests > 0"`
	MaximumGuests  int             `json:"maximum_guests" gorm:"default:0"`

	Status   ItemStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`
	ImageURL string     `json:"image_url" gorm:"size:500"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// PricingRule converts the item's stored pricing columns into the rule
// shape the quote engine consumes.
func (i *CatalogItem) PricingRule() pricing.Rule {
	rule := pricing.Rule{
		PricePerPerson: i.PricePerPerson,
		ServiceFeePct:  i.ServiceFeePct,
		DeliveryFee:    i.DeliveryFee,
		SetupFee:       i.SetupFee,
		DepositPct:     i.DepositPct,
		MinimumGuests:  i.MinimumGuests,
	}
	if !i.AdditionalFees.IsZero() {
		rule.AdditionalFees = []decimal.Decimal{i.AdditionalFees}
	}
	return rule
}

type ItemStatus string

const (
	ItemStatusDraft     ItemStatus = "draft"
	ItemStatusPublished ItemStatus = "published"
	ItemStatusArchived  ItemStatus = "archived"
)

// IsBookable reports whether the item can accept new booking requests
func (i *CatalogItem) IsBookable() bool {
	return i.Status == ItemStatusPublished
}

type CatalogItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CatererName    string          `json:"caterer_name"`
	Cuisine        string          `json:"cuisine"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	ServiceFeePct  decimal.Decimal `json:"service_fee_pct"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	SetupFee       decimal.Decimal `json:"setup_fee"`
	AdditionalFees decimal.Decimal `json:"additional_fees"`
	DepositPct     decimal.Decimal `json:"deposit_pct"`
	MinimumGuests  int             `json:"minimum_guests"`
	MaximumGuests  int             `json:"maximum_guests"`
	Status         ItemStatus      `json:"status"`
	ImageURL       string          `json:"image_url"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type CreateCatalogItemRequest struct {
	Name           string          `json:"name" binding:"required,min=3,max=255"`
	Description    string          `json:"description" binding:"max=2000"`
	CatererName    string          `json:"caterer_name" binding:"required,min=2,max=255"`
	Cuisine        string          `json:"cuisine" binding:"max=100"`
	PricePerPerson decimal.Decimal `json:"price_per_person" binding:"required"`
	ServiceFeePct  decimal.Decimal `json:"service_fee_pct"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	SetupFee       decimal.Decimal `json:"setup_fee"`
	AdditionalFees decimal.Decimal `json:"additional_fees"`
	DepositPct     decimal.Decimal `json:"deposit_pct"`
	MinimumGuests  int             `json:"minimum_guests" binding:"required,min=1,max=100000"`
	MaximumGuests  int             `json:"maximum_guests" binding:"omitempty,min=1,max=100000"`
	ImageURL       string          `json:"image_url" binding:"omitempty,url"`
}

type UpdateCatalogItemRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=3,max=255"`
	Description    *string          `json:"description" binding:"omitempty,max=2000"`
	CatererName    *string          `json:"caterer_name" binding:"omitempty,min=2,max=255"`
	Cuisine        *string          `json:"cuisine" binding:"omitempty,max=100"`
	PricePerPerson *decimal.Decimal `json:"price_per_person"`
	ServiceFeePct  *decimal.Decimal `json:"service_fee_pct"`
	DeliveryFee    *decimal.Decimal `json:"delivery_fee"`
	SetupFee       *decimal.Decimal `json:"setup_fee"`
	AdditionalFees *decimal.Decimal `json:"additional_fees"`
	DepositPct     *decimal.Decimal `json:"deposit_pct"`
	MinimumGuests  *int             `json:"minimum_guests" binding:"omitempty,min=1,max=100000"`
	MaximumGuests  *int             `json:"maximum_guests" binding:"omitempty,min=1,max=100000"`
	Status         *string          `json:"status" binding:"omitempty,oneof=draft published archived"`
	ImageURL       *string          `json:"image_url" binding:"omitempty,url"`
}

type CatalogListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Cuisine  string `form:"cuisine"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published archived"`
}

type PaginatedCatalogItems struct {
	Items      []CatalogItemResponse `json:"items"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// ToResponse converts a CatalogItem to its API shape
func (i *CatalogItem) ToResponse() CatalogItemResponse {
	return CatalogItemResponse{
		ID:             i.ID.String(),
		Name:           i.Name,
		Description:    i.Description,
		CatererName:    i.CatererName,
		Cuisine:        i.Cuisine,
		PricePerPerson: i.PricePerPerson,
		ServiceFeePct:  i.ServiceFeePct,
		DeliveryFee:    i.DeliveryFee,
		SetupFee:       i.SetupFee,
		AdditionalFees: i.AdditionalFees,
		DepositPct:     i.DepositPct,
		MinimumGuests:  i.MinimumGuests,
		MaximumGuests:  i.MaximumGuests,
		Status:         i.Status,
		ImageURL:       i.ImageURL,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
