package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	venues map[uuid.UUID]*Venue
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{venues: make(map[uuid.UUID]*Venue)}
}

func (r *fakeRepo) Create(ctx context.Context, venue *Venue) error {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	r.venues[venue.ID] = venue
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	venue, ok := r.venues[id]
	if !ok {
		return nil, ErrVenueNotFound
	}
	return venue, nil
}

func (r *fakeRepo) Update(ctx context.Context, venue *Venue) error {
	r.venues[venue.ID] = venue
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.venues[id]; !ok {
		return ErrVenueNotFound
	}
	delete(r.venues, id)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, query VenueListQuery) ([]Venue, int64, error) {
	var out []Venue
	for _, v := range r.venues {
		if query.City != "" && v.City != query.City {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func TestCreateVenueStartsAsDraft(t *testing.T) {
	svc := NewService(newFakeRepo())

	resp, err := svc.CreateVenue(context.Background(), uuid.New(), CreateVenueRequest{
		Name:        "The Orchard House",
		Address:     "400 Vineyard Lane",
		City:        "Fredericksburg",
		State:       "TX",
		MinCapacity: 40,
		MaxCapacity: 250,
		HourlyRate:  decimal.NewFromInt(350),
	})

	require.NoError(t, err)
	assert.Equal(t, VenueStatusDraft, resp.Status)
	assert.Equal(t, 250, resp.MaxCapacity)
}

func TestCreateVenueRejectsInvertedCapacityRange(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.CreateVenue(context.Background(), uuid.New(), CreateVenueRequest{
		Name:        "Bad Range",
		Address:     "1 Nowhere Road",
		City:        "Austin",
		State:       "TX",
		MinCapacity: 300,
		MaxCapacity: 100,
	})

	assert.Error(t, err)
}

func TestUpdateVenueMergesPointerFields(t *testing.T) {
	repo := newFakeRepo()
	venue := &Venue{
		Name:        "The Orchard House",
		Address:     "400 Vineyard Lane",
		City:        "Fredericksburg",
		State:       "TX",
		MinCapacity: 40,
		MaxCapacity: 250,
		Status:      VenueStatusDraft,
	}
	require.NoError(t, repo.Create(context.Background(), venue))
	svc := NewService(repo)

	newName := "The Orchard House & Gardens"
	published := string(VenueStatusPublished)
	resp, err := svc.UpdateVenue(context.Background(), venue.ID, uuid.New(), UpdateVenueRequest{
		Name:   &newName,
		Status: &published,
	})

	require.NoError(t, err)
	assert.Equal(t, "The Orchard House & Gardens", resp.Name)
	assert.Equal(t, VenueStatusPublished, resp.Status)
	assert.Equal(t, "Fredericksburg", resp.City, "unset fields keep their values")
}

func TestUpdateVenueRejectsInvertedCapacityRange(t *testing.T) {
	repo := newFakeRepo()
	venue := &Venue{
		Name:        "The Orchard House",
		MinCapacity: 40,
		MaxCapacity: 250,
	}
	require.NoError(t, repo.Create(context.Background(), venue))
	svc := NewService(repo)

	badMin := 500
	_, err := svc.UpdateVenue(context.Background(), venue.ID, uuid.New(), UpdateVenueRequest{
		MinCapacity: &badMin,
	})

	assert.Error(t, err)
}

func TestListVenuesFiltersAndPaginates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	require.NoError(t, repo.Create(context.Background(), &Venue{Name: "A", City: "Austin", MaxCapacity: 100}))
	require.NoError(t, repo.Create(context.Background(), &Venue{Name: "B", City: "Dallas", MaxCapacity: 100}))

	result, err := svc.ListVenues(context.Background(), VenueListQuery{City: "Austin"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TotalCount)
	assert.Equal(t, 1, result.Page, "page defaults to 1")
	assert.Equal(t, 10, result.Limit, "limit defaults to 10")
}

func TestDeleteVenue(t *testing.T) {
	repo := newFakeRepo()
	venue := &Venue{Name: "A", MaxCapacity: 100}
	require.NoError(t, repo.Create(context.Background(), venue))
	svc := NewService(repo)

	require.NoError(t, svc.DeleteVenue(context.Background(), venue.ID))

	_, err := svc.GetVenue(context.Background(), venue.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
