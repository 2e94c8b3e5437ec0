package promotions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign is a promotional discount code. Discounts are percent-off the
// booking total, gated by an active window, a minimum order total, and an
// optional redemption cap.
type Campaign struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code        string    `gorm:"unique;not null;size:50" json:"code"`
	Description string    `gorm:"size:500" json:"description"`

	PercentOff    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percent_off"`
	MinOrderTotal decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"min_order_total"`

	StartsAt time.Time `gorm:"not null" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	// MaxRedemptions of zero means unlimited
	MaxRedemptions int `gorm:"default:0" json:"max_redemptions"`
	RedeemedCount  int `gorm:"default:0" json:"redeemed_count"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for Campaign
func (Campaign) TableName() string {
	return "promotion_campaigns"
}

// IsLive reports whether the campaign can be redeemed at the given moment
func (p *Campaign) IsLive(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.StartsAt) || now.After(p.EndsAt) {
		return false
	}
	if p.MaxRedemptions > 0 && p.RedeemedCount >= p.MaxRedemptions {
		return false
	}
	return true
}

// DiscountFor computes the discount amount for an order total, or zero if
// the total is under the campaign minimum.
func (p *Campaign) DiscountFor(orderTotal decimal.Decimal) decimal.Decimal {
	if orderTotal.LessThan(p.MinOrderTotal) {
		return decimal.Zero
	}
	return orderTotal.Mul(p.PercentOff).Div(decimal.NewFromInt(100))
}

type CreateCampaignRequest struct {
	Code           string          `json:"code" binding:"required,max=50"`
	Description    string          `json:"description" binding:"max=500"`
	PercentOff     decimal.Decimal `json:"percent_off" binding:"required"`
	MinOrderTotal  decimal.Decimal `json:"min_order_total"`
	StartsAt       time.Time       `json:"starts_at" binding:"required"`
	EndsAt         time.Time       `json:"ends_at" binding:"required"`
	MaxRedemptions int             `json:"max_redemptions" binding:"min=0"`
}

type UpdateCampaignRequest struct {
	Description    *string          `json:"description" binding:"omitempty,max=500"`
	PercentOff     *decimal.Decimal `json:"percent_off"`
	MinOrderTotal  *decimal.Decimal `json:"min_order_total"`
	StartsAt       *time.Time       `json:"starts_at"`
	EndsAt         *time.Time       `json:"ends_at"`
	MaxRedemptions *int             `json:"max_redemptions" binding:"omitempty,min=0"`
	Active         *bool            `json:"active"`
}

type ValidateCodeRequest struct {
	Code       string          `json:"code" binding:"required,max=50"`
	OrderTotal decimal.Decimal `json:"order_total" binding:"required"`
}

type ValidateCodeResponse struct {
	Code       string `json:"code"`
	Valid      bool   `json:"valid"`
	Reason     string `json:"reason,omitempty"`
	PercentOff string `json:"percent_off,omitempty"`
	Discount   string `json:"discount,omitempty"`
}

type CampaignResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Description    string    `json:"description"`
	PercentOff     string    `json:"percent_off"`
	MinOrderTotal  string    `json:"min_order_total"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	MaxRedemptions int       `json:"max_redemptions"`
	RedeemedCount  int       `json:"redeemed_count"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p *Campaign) ToResponse() CampaignResponse {
	return CampaignResponse{
		ID:             p.ID.String(),
		Code:           p.Code,
		Description:    p.Description,
		PercentOff:     p.PercentOff.StringFixed(2),
		MinOrderTotal:  p.MinOrderTotal.StringFixed(2),
		StartsAt:       p.StartsAt,
		EndsAt:         p.EndsAt,
		MaxRedemptions: p.MaxRedemptions,
		RedeemedCount:  p.RedeemedCount,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
	}
}
