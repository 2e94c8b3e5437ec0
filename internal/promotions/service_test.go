package promotions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	campaigns map[string]*Campaign
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{campaigns: make(map[string]*Campaign)}
}

func (r *fakeRepo) Create(ctx context.Context, c *Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.campaigns[c.Code] = c
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	for _, c := range r.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrCampaignNotFound
}

func (r *fakeRepo) GetByCode(ctx context.Context, code string) (*Campaign, error) {
	c, ok := r.campaigns[strings.ToUpper(code)]
	if !ok {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *Campaign) error {
	r.campaigns[c.Code] = c
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for code, c := range r.campaigns {
		if c.ID == id {
			delete(r.campaigns, code)
			return nil
		}
	}
	return ErrCampaignNotFound
}

func (r *fakeRepo) List(ctx context.Context) ([]Campaign, error) {
	var out []Campaign
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) IncrementRedemptions(ctx context.Context, id uuid.UUID) error {
	for _, c := range r.campaigns {
		if c.ID == id {
			c.RedeemedCount++
			return nil
		}
	}
	return ErrCampaignNotFound
}

func liveCampaign() *Campaign {
	now := time.Now()
	return &Campaign{
		ID:            uuid.New(),
		Code:          "WELCOME10",
		PercentOff:    decimal.NewFromInt(10),
		MinOrderTotal: decimal.NewFromInt(500),
		StartsAt:      now.Add(-24 * time.Hour),
		EndsAt:        now.Add(24 * time.Hour),
		Active:        true,
	}
}

func TestCampaignIsLive(t *testing.T) {
	now := time.Now()

	c := liveCampaign()
	assert.True(t, c.IsLive(now))

	inactive := liveCampaign()
	inactive.Active = false
	assert.False(t, inactive.IsLive(now))

	notStarted := liveCampaign()
	notStarted.StartsAt = now.Add(time.Hour)
	assert.False(t, notStarted.IsLive(now))

	ended := liveCampaign()
	ended.EndsAt = now.Add(-time.Hour)
	assert.False(t, ended.IsLive(now))

	capped := liveCampaign()
	capped.MaxRedemptions = 5
	capped.RedeemedCount = 5
	assert.False(t, capped.IsLive(now))

	uncapped := liveCampaign()
	uncapped.MaxRedemptions = 0
	uncapped.RedeemedCount = 10000
	assert.True(t, uncapped.IsLive(now), "zero cap means unlimited")
}

func TestDiscountFor(t *testing.T) {
	c := liveCampaign()

	assert.True(t, c.DiscountFor(decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(100)))
	assert.True(t, c.DiscountFor(decimal.NewFromInt(499)).IsZero(), "below minimum earns nothing")
	assert.True(t, c.DiscountFor(decimal.NewFromInt(500)).Equal(decimal.NewFromInt(50)), "minimum is inclusive")
}

func TestValidateCode(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Create(context.Background(), liveCampaign()))
	svc := NewService(repo)

	resp, err := svc.ValidateCode(context.Background(), ValidateCodeRequest{
		Code:       "welcome10",
		OrderTotal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "100.00", resp.Discount)

	resp, err = svc.ValidateCode(context.Background(), ValidateCodeRequest{
		Code:       "NOPE",
		OrderTotal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "unknown promotion code", resp.Reason)

	resp, err = svc.ValidateCode(context.Background(), ValidateCodeRequest{
		Code:       "WELCOME10",
		OrderTotal: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Reason, "at least 500.00")
}

func TestValidateCodeDoesNotConsumeRedemption(t *testing.T) {
	repo := newFakeRepo()
	campaign := liveCampaign()
	require.NoError(t, repo.Create(context.Background(), campaign))
	svc := NewService(repo)

	_, err := svc.ValidateCode(context.Background(), ValidateCodeRequest{
		Code:       "WELCOME10",
		OrderTotal: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, campaign.RedeemedCount)
}

func TestPreviewDoesNotConsumeRedemption(t *testing.T) {
	repo := newFakeRepo()
	campaign := liveCampaign()
	require.NoError(t, repo.Create(context.Background(), campaign))
	svc := NewService(repo)

	discount, err := svc.Preview(context.Background(), "welcome10", decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 0, campaign.RedeemedCount)

	_, err = svc.Preview(context.Background(), "WELCOME10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrBelowMinimum)
	assert.Equal(t, 0, campaign.RedeemedCount)
}

func TestRedeem(t *testing.T) {
	repo := newFakeRepo()
	campaign := liveCampaign()
	require.NoError(t, repo.Create(context.Background(), campaign))
	svc := NewService(repo)

	discount, err := svc.Redeem(context.Background(), "welcome10", decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, campaign.RedeemedCount)
}

func TestRedeemExpiredCode(t *testing.T) {
	repo := newFakeRepo()
	campaign := liveCampaign()
	campaign.EndsAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(context.Background(), campaign))
	svc := NewService(repo)

	_, err := svc.Redeem(context.Background(), "WELCOME10", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, ErrCodeNotRedeemable)
}

func TestRedeemBelowMinimum(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Create(context.Background(), liveCampaign()))
	svc := NewService(repo)

	_, err := svc.Redeem(context.Background(), "WELCOME10", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrBelowMinimum)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	adminID := uuid.New()
	now := time.Now()

	_, err := svc.CreateCampaign(context.Background(), adminID, CreateCampaignRequest{
		Code:       "BAD",
		PercentOff: decimal.NewFromInt(150),
		StartsAt:   now,
		EndsAt:     now.Add(time.Hour),
	})
	assert.Error(t, err)

	_, err = svc.CreateCampaign(context.Background(), adminID, CreateCampaignRequest{
		Code:       "BAD",
		PercentOff: decimal.NewFromInt(10),
		StartsAt:   now.Add(time.Hour),
		EndsAt:     now,
	})
	assert.Error(t, err)

	resp, err := svc.CreateCampaign(context.Background(), adminID, CreateCampaignRequest{
		Code:       "  spring20 ",
		PercentOff: decimal.NewFromInt(20),
		StartsAt:   now,
		EndsAt:     now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "SPRING20", resp.Code, "codes are normalized to upper case")
}
