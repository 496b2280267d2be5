package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

// ----- in-memory fakes -----

type fakeCatalog struct {
	bikes map[uint64]model.Bike
}

func (f *fakeCatalog) GetByID(_ context.Context, id uint64) (model.Bike, error) {
	b, ok := f.bikes[id]
	if !ok {
		return model.Bike{}, repository.ErrBikeNotFound
	}
	return b, nil
}

type fakeLocations struct {
	ids map[uint64]bool
}

func (f *fakeLocations) GetByID(_ context.Context, id uint64) (model.Location, error) {
	if !f.ids[id] {
		return model.Location{}, repository.ErrLocationNotFound
	}
	return model.Location{ID: id, Name: "Store"}, nil
}

type fakeStore struct {
	nextID  uint64
	rentals map[uint64]model.Rental
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, rentals: map[uint64]model.Rental{}}
}

func (f *fakeStore) Insert(_ context.Context, rec *model.Rental) error {
	rec.ID = f.nextID
	rec.CreatedAt = time.Now().UTC()
	f.nextID++
	f.rentals[rec.ID] = *rec
	return nil
}

func (f *fakeStore) DeleteByIDForUser(_ context.Context, rentalID, userID uint64) error {
	r, ok := f.rentals[rentalID]
	if !ok || r.UserID != userID {
		return repository.ErrRentalNotFound
	}
	delete(f.rentals, rentalID)
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uint64) ([]repository.RentalDetail, error) {
	var out []repository.RentalDetail
	for id := uint64(1); id < f.nextID; id++ {
		if r, ok := f.rentals[id]; ok && r.UserID == userID {
			out = append(out, repository.RentalDetail{ID: r.ID, BikeID: r.BikeID,
				PickupAt: r.PickupAt, DropoffAt: r.DropoffAt, TotalPriceCents: r.TotalPriceCents})
		}
	}
	return out, nil
}

func (f *fakeStore) GetByIDForUser(_ context.Context, rentalID, userID uint64) (repository.RentalDetail, error) {
	r, ok := f.rentals[rentalID]
	if !ok || r.UserID != userID {
		return repository.RentalDetail{}, repository.ErrRentalNotFound
	}
	return repository.RentalDetail{ID: r.ID, BikeID: r.BikeID,
		PickupAt: r.PickupAt, DropoffAt: r.DropoffAt, TotalPriceCents: r.TotalPriceCents}, nil
}

func newTestLedger() (*Ledger, *fakeStore) {
	catalog := &fakeCatalog{bikes: map[uint64]model.Bike{
		1: {ID: 1, Brand: "Honda", Model: "CB350", PricePerHourCents: 10000, Available: true},
		2: {ID: 2, Brand: "Yamaha", Model: "FZ-S", PricePerHourCents: 7550, Available: false},
	}}
	locations := &fakeLocations{ids: map[uint64]bool{10: true, 11: true}}
	store := newFakeStore()
	return New(catalog, locations, store), store
}

func u64(v uint64) *uint64 { return &v }

func TestCreatePricesFractionalHours(t *testing.T) {
	l, store := newTestLedger()

	// 2.5 hours at 100.00/h must come to exactly 250.00.
	rec, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:    1,
		PickupAt:  "2026-06-01T10:00",
		DropoffAt: "2026-06-01T12:30",
	})
	require.NoError(t, err)
	require.Equal(t, int64(25000), rec.TotalPriceCents)
	require.Equal(t, uint64(7), rec.UserID)
	require.NotZero(t, rec.ID)
	require.Len(t, store.rentals, 1)
}

func TestCreateAcceptsRFC3339(t *testing.T) {
	l, _ := newTestLedger()
	rec, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:    1,
		PickupAt:  "2026-06-01T10:00:00Z",
		DropoffAt: "2026-06-01T11:00:00Z",
	})
	require.NoError(t, err)
	require.Equal(t, int64(10000), rec.TotalPriceCents)
}

func TestCreateBooksUnavailableBike(t *testing.T) {
	// The available flag is advisory; a direct booking still succeeds.
	l, _ := newTestLedger()
	rec, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:    2,
		PickupAt:  "2026-06-01T10:00",
		DropoffAt: "2026-06-01T11:00",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7550), rec.TotalPriceCents)
}

func TestCreateRejectsBadTimestamps(t *testing.T) {
	l, store := newTestLedger()
	for _, bad := range []string{"", "yesterday", "2026-06-01", "01/06/2026 10:00"} {
		_, err := l.Create(context.Background(), 7, CreateParams{
			BikeID:    1,
			PickupAt:  bad,
			DropoffAt: "2026-06-01T11:00",
		})
		ve := AsValidation(err)
		require.NotNil(t, ve, "input %q", bad)
		require.Equal(t, "invalid date format", ve.Reason)
	}
	require.Empty(t, store.rentals, "failed creates must not persist anything")
}

func TestCreateRejectsNonPositiveWindow(t *testing.T) {
	l, store := newTestLedger()
	cases := []struct{ pickup, dropoff string }{
		{"2026-06-01T11:00", "2026-06-01T10:00"}, // inverted
		{"2026-06-01T10:00", "2026-06-01T10:00"}, // zero length
	}
	for _, tc := range cases {
		_, err := l.Create(context.Background(), 7, CreateParams{
			BikeID:    1,
			PickupAt:  tc.pickup,
			DropoffAt: tc.dropoff,
		})
		ve := AsValidation(err)
		require.NotNil(t, ve)
		require.Equal(t, "dropoff must be after pickup", ve.Reason)
	}
	require.Empty(t, store.rentals)
}

func TestCreateUnknownReferences(t *testing.T) {
	l, store := newTestLedger()

	_, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:    99,
		PickupAt:  "2026-06-01T10:00",
		DropoffAt: "2026-06-01T11:00",
	})
	require.ErrorIs(t, err, repository.ErrBikeNotFound)

	_, err = l.Create(context.Background(), 7, CreateParams{
		BikeID:           1,
		PickupLocationID: u64(99),
		PickupAt:         "2026-06-01T10:00",
		DropoffAt:        "2026-06-01T11:00",
	})
	require.ErrorIs(t, err, repository.ErrLocationNotFound)

	_, err = l.Create(context.Background(), 7, CreateParams{
		BikeID:            1,
		DropoffLocationID: u64(99),
		PickupAt:          "2026-06-01T10:00",
		DropoffAt:         "2026-06-01T11:00",
	})
	require.ErrorIs(t, err, repository.ErrLocationNotFound)

	require.Empty(t, store.rentals)
}

func TestCreateWithLocations(t *testing.T) {
	l, _ := newTestLedger()
	rec, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:            1,
		PickupLocationID:  u64(10),
		DropoffLocationID: u64(11),
		PickupAt:          "2026-06-01T10:00",
		DropoffAt:         "2026-06-01T11:00",
	})
	require.NoError(t, err)
	require.Equal(t, uint64(10), *rec.PickupLocationID)
	require.Equal(t, uint64(11), *rec.DropoffLocationID)
}

func TestCancelScopesToOwner(t *testing.T) {
	l, store := newTestLedger()
	rec, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:    1,
		PickupAt:  "2026-06-01T10:00",
		DropoffAt: "2026-06-01T11:00",
	})
	require.NoError(t, err)

	// another user cannot cancel it, and cannot tell it exists
	require.ErrorIs(t, l.Cancel(context.Background(), 8, rec.ID), repository.ErrRentalNotFound)
	require.Len(t, store.rentals, 1)

	require.NoError(t, l.Cancel(context.Background(), 7, rec.ID))
	require.Empty(t, store.rentals)

	// cancelling twice fails the same way as never existing
	require.ErrorIs(t, l.Cancel(context.Background(), 7, rec.ID), repository.ErrRentalNotFound)
}

func TestListAndGetScopeToOwner(t *testing.T) {
	l, _ := newTestLedger()
	mine, err := l.Create(context.Background(), 7, CreateParams{
		BikeID:    1,
		PickupAt:  "2026-06-01T10:00",
		DropoffAt: "2026-06-01T11:00",
	})
	require.NoError(t, err)
	_, err = l.Create(context.Background(), 8, CreateParams{
		BikeID:    2,
		PickupAt:  "2026-06-01T10:00",
		DropoffAt: "2026-06-01T11:00",
	})
	require.NoError(t, err)

	list, err := l.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, mine.ID, list[0].ID)

	_, err = l.Get(context.Background(), mine.ID, 8)
	require.ErrorIs(t, err, repository.ErrRentalNotFound)

	got, err := l.Get(context.Background(), mine.ID, 7)
	require.NoError(t, err)
	require.Equal(t, mine.TotalPriceCents, got.TotalPriceCents)
}

func TestParseTimestampNormalizesToUTC(t *testing.T) {
	got, err := ParseTimestamp("2026-06-01T12:30:00+02:00")
	require.NoError(t, err)
	require.Equal(t, time.UTC, got.Location())
	require.Equal(t, 10, got.Hour())
}
