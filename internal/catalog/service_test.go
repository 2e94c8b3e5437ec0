package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items map[uuid.UUID]*CatalogItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*CatalogItem)}
}

func (r *fakeRepo) Create(ctx context.Context, item *CatalogItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (r *fakeRepo) Update(ctx context.Context, item *CatalogItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, query CatalogListQuery) ([]CatalogItem, int64, error) {
	var out []CatalogItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, int64(len(out)), nil
}

func newTestService(repo Repository) Service {
	// nil cache exercises the direct repository path
	return NewService(repo, nil, time.Hour)
}

func TestCreateItemStartsAsDraft(t *testing.T) {
	svc := newTestService(newFakeRepo())

	resp, err := svc.CreateItem(context.Background(), uuid.New(), CreateCatalogItemRequest{
		Name:           "Classic Wedding Buffet",
		CatererName:    "Silver Spoon Catering",
		PricePerPerson: decimal.NewFromInt(45),
		MinimumGuests:  25,
	})

	require.NoError(t, err)
	assert.Equal(t, ItemStatusDraft, resp.Status)
}

func TestCreateItemRejectsInvertedGuestRange(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateItem(context.Background(), uuid.New(), CreateCatalogItemRequest{
		Name:           "Bad Range",
		CatererName:    "X",
		PricePerPerson: decimal.NewFromInt(10),
		MinimumGuests:  50,
		MaximumGuests:  25,
	})

	assert.Error(t, err)
}

func TestGetBookableItemRejectsDraft(t *testing.T) {
	repo := newFakeRepo()
	item := &CatalogItem{
		Name:           "Draft Package",
		PricePerPerson: decimal.NewFromInt(45),
		MinimumGuests:  25,
		Status:         ItemStatusDraft,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	svc := newTestService(repo)

	_, err := svc.GetBookableItem(context.Background(), item.ID)
	assert.Error(t, err)

	item.Status = ItemStatusPublished
	got, err := svc.GetBookableItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
}

func TestPricingRuleMapping(t *testing.T) {
	item := &CatalogItem{
		PricePerPerson: decimal.NewFromInt(45),
		ServiceFeePct:  decimal.NewFromInt(10),
		DeliveryFee:    decimal.NewFromInt(50),
		SetupFee:       decimal.NewFromInt(100),
		AdditionalFees: decimal.NewFromInt(25),
		DepositPct:     decimal.NewFromInt(30),
		MinimumGuests:  25,
	}

	rule := item.PricingRule()

	assert.True(t, rule.PricePerPerson.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, 25, rule.MinimumGuests)
	require.Len(t, rule.AdditionalFees, 1)
	assert.True(t, rule.AdditionalFees[0].Equal(decimal.NewFromInt(25)))

	// Zero aggregate fee maps to no additional fees at all
	item.AdditionalFees = decimal.Zero
	assert.Empty(t, item.PricingRule().AdditionalFees)
}

func TestUpdateItemMergesPointerFields(t *testing.T) {
	repo := newFakeRepo()
	item := &CatalogItem{
		Name:           "Original",
		CatererName:    "Silver Spoon Catering",
		PricePerPerson: decimal.NewFromInt(45),
		MinimumGuests:  25,
		Status:         ItemStatusDraft,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	svc := newTestService(repo)

	newName := "Renamed"
	published := string(ItemStatusPublished)
	resp, err := svc.UpdateItem(context.Background(), item.ID, uuid.New(), UpdateCatalogItemRequest{
		Name:   &newName,
		Status: &published,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, ItemStatusPublished, resp.Status)
	assert.Equal(t, "Silver Spoon Catering", resp.CatererName, "unset fields keep their values")
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
}
