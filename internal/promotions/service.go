package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCodeNotRedeemable = errors.New("promotion code is not redeemable")
	ErrBelowMinimum      = errors.New("order total is below the campaign minimum")
)

type Service interface {
	CreateCampaign(ctx context.Context, adminID uuid.UUID, req CreateCampaignRequest) (*CampaignResponse, error)
	GetCampaign(ctx context.Context, id uuid.UUID) (*CampaignResponse, error)
	UpdateCampaign(ctx context.Context, id, adminID uuid.UUID, req UpdateCampaignRequest) (*CampaignResponse, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error
	ListCampaigns(ctx context.Context) ([]CampaignResponse, error)

	// ValidateCode checks a code against an order total without consuming a
	// redemption. Used for pre-submit previews.
	ValidateCode(ctx context.Context, req ValidateCodeRequest) (*ValidateCodeResponse, error)

	// Preview resolves a code into its discount without consuming a
	// redemption. Same checks as Redeem, no counter increment.
	Preview(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error)

	// Redeem consumes one redemption and returns the discount amount.
	// Called by the booking flow once the booking row exists.
	Redeem(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCampaign(ctx context.Context, adminID uuid.UUID, req CreateCampaignRequest) (*CampaignResponse, error) {
	if req.PercentOff.LessThanOrEqual(decimal.Zero) || req.PercentOff.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("percent off must be between 0 and 100")
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, errors.New("campaign end must be after its start")
	}

	campaign := &Campaign{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:    req.Description,
		PercentOff:     req.PercentOff,
		MinOrderTotal:  req.MinOrderTotal,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		MaxRedemptions: req.MaxRedemptions,
		Active:         true,
		CreatedBy:      adminID,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	resp := campaign.ToResponse()
	return &resp, nil
}

func (s *service) GetCampaign(ctx context.Context, id uuid.UUID) (*CampaignResponse, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := campaign.ToResponse()
	return &resp, nil
}

func (s *service) UpdateCampaign(ctx context.Context, id, adminID uuid.UUID, req UpdateCampaignRequest) (*CampaignResponse, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.PercentOff != nil {
		if req.PercentOff.LessThanOrEqual(decimal.Zero) || req.PercentOff.GreaterThan(decimal.NewFromInt(100)) {
			return nil, errors.New("percent off must be between 0 and 100")
		}
		campaign.PercentOff = *req.PercentOff
	}
	if req.MinOrderTotal != nil {
		campaign.MinOrderTotal = *req.MinOrderTotal
	}
	if req.StartsAt != nil {
		campaign.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		campaign.EndsAt = *req.EndsAt
	}
	if req.MaxRedemptions != nil {
		campaign.MaxRedemptions = *req.MaxRedemptions
	}
	if req.Active != nil {
		campaign.Active = *req.Active
	}

	if !campaign.EndsAt.After(campaign.StartsAt) {
		return nil, errors.New("campaign end must be after its start")
	}

	campaign.UpdatedBy = &adminID

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	resp := campaign.ToResponse()
	return &resp, nil
}

func (s *service) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListCampaigns(ctx context.Context) ([]CampaignResponse, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		responses = append(responses, campaigns[i].ToResponse())
	}
	return responses, nil
}

func (s *service) ValidateCode(ctx context.Context, req ValidateCodeRequest) (*ValidateCodeResponse, error) {
	campaign, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, ErrCampaignNotFound) {
			return &ValidateCodeResponse{Code: req.Code, Valid: false, Reason: "unknown promotion code"}, nil
		}
		return nil, err
	}

	if !campaign.IsLive(time.Now()) {
		return &ValidateCodeResponse{Code: campaign.Code, Valid: false, Reason: "promotion code is not currently redeemable"}, nil
	}

	discount := campaign.DiscountFor(req.OrderTotal)
	if discount.IsZero() {
		return &ValidateCodeResponse{
			Code:  campaign.Code,
			Valid: false,
			Reason: fmt.Sprintf("order total must be at least %s to use this code",
				campaign.MinOrderTotal.StringFixed(2)),
		}, nil
	}

	return &ValidateCodeResponse{
		Code:       campaign.Code,
		Valid:      true,
		PercentOff: campaign.PercentOff.StringFixed(2),
		Discount:   discount.StringFixed(2),
	}, nil
}

func (s *service) Preview(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error) {
	_, discount, err := s.resolveDiscount(ctx, code, orderTotal)
	return discount, err
}

func (s *service) Redeem(ctx context.Context, code string, orderTotal decimal.Decimal) (decimal.Decimal, error) {
	campaign, discount, err := s.resolveDiscount(ctx, code, orderTotal)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.repo.IncrementRedemptions(ctx, campaign.ID); err != nil {
		return decimal.Zero, err
	}

	return discount, nil
}

func (s *service) resolveDiscount(ctx context.Context, code string, orderTotal decimal.Decimal) (*Campaign, decimal.Decimal, error) {
	campaign, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if !campaign.IsLive(time.Now()) {
		return nil, decimal.Zero, ErrCodeNotRedeemable
	}

	discount := campaign.DiscountFor(orderTotal)
	if discount.IsZero() {
		return nil, decimal.Zero, ErrBelowMinimum
	}

	return campaign, discount, nil
}
