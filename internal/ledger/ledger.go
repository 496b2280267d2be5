// Package ledger owns the rental lifecycle: it validates booking
// input, resolves the referenced bike and locations, computes the
// total price and persists or removes rental rows. It is the only
// component that writes to the rentals table.
//
// The ledger trusts the user identity it is given; authentication
// happens in the JWT middleware before any ledger call. Concurrent
// overlapping bookings of the same bike are not prevented: the
// catalog's available flag is advisory metadata only.
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/wheelstreet/bike-rental/internal/model"
	"github.com/wheelstreet/bike-rental/internal/repository"
)

// timestampLayouts are the accepted external representations of a
// booking timestamp: the HTML datetime-local form value and RFC 3339.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseTimestamp parses a booking timestamp in one of the accepted
// layouts, returning a ValidationError for anything else.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate()
}

// Catalog resolves bike references for the ledger.
type Catalog interface {
	GetByID(ctx context.Context, id uint64) (model.Bike, error)
}

// Locations resolves pickup/dropoff location references.
type Locations interface {
	GetByID(ctx context.Context, id uint64) (model.Location, error)
}

// RentalStore persists rental rows. Implementations must make Insert
// and DeleteByIDForUser atomic, and DeleteByIDForUser must report
// repository.ErrRentalNotFound for both missing and foreign rentals.
type RentalStore interface {
	Insert(ctx context.Context, rec *model.Rental) error
	DeleteByIDForUser(ctx context.Context, rentalID, userID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]repository.RentalDetail, error)
	GetByIDForUser(ctx context.Context, rentalID, userID uint64) (repository.RentalDetail, error)
}

// Ledger is the rental lifecycle service.
type Ledger struct {
	bikes     Catalog
	locations Locations
	rentals   RentalStore
}

// New constructs a Ledger. All dependencies must be non-nil.
func New(bikes Catalog, locations Locations, rentals RentalStore) *Ledger {
	if bikes == nil || locations == nil || rentals == nil {
		panic("nil dependency passed to ledger.New")
	}
	return &Ledger{bikes: bikes, locations: locations, rentals: rentals}
}

// CreateParams carries the booking request after binding. The
// timestamps are kept as strings because parsing them is part of the
// validation the ledger performs before touching any state.
type CreateParams struct {
	BikeID            uint64
	PickupLocationID  *uint64
	DropoffLocationID *uint64
	PickupAt          string
	DropoffAt         string
}

// Create validates params, prices the window and persists exactly one
// rental row. On any error no state has been mutated.
//
// Failure modes: ValidationError for malformed timestamps or a window
// whose dropoff is not strictly after its pickup;
// repository.ErrBikeNotFound / repository.ErrLocationNotFound for
// dangling references.
func (l *Ledger) Create(ctx context.Context, userID uint64, p CreateParams) (*model.Rental, error) {
	pickupAt, err := ParseTimestamp(p.PickupAt)
	if err != nil {
		return nil, err
	}
	dropoffAt, err := ParseTimestamp(p.DropoffAt)
	if err != nil {
		return nil, err
	}
	if !dropoffAt.After(pickupAt) {
		return nil, errDropoffNotAfterPickup()
	}

	bike, err := l.bikes.GetByID(ctx, p.BikeID)
	if err != nil {
		return nil, err
	}
	if p.PickupLocationID != nil {
		if _, err := l.locations.GetByID(ctx, *p.PickupLocationID); err != nil {
			return nil, err
		}
	}
	if p.DropoffLocationID != nil {
		if _, err := l.locations.GetByID(ctx, *p.DropoffLocationID); err != nil {
			return nil, err
		}
	}

	rec := &model.Rental{
		UserID:            userID,
		BikeID:            bike.ID,
		PickupLocationID:  p.PickupLocationID,
		DropoffLocationID: p.DropoffLocationID,
		PickupAt:          pickupAt,
		DropoffAt:         dropoffAt,
		TotalPriceCents:   TotalPriceCents(bike.PricePerHourCents, pickupAt, dropoffAt),
	}
	if err := l.rentals.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every rental owned by userID in insertion order.
func (l *Ledger) List(ctx context.Context, userID uint64) ([]repository.RentalDetail, error) {
	return l.rentals.ListByUser(ctx, userID)
}

// Get returns one rental scoped to its owner. A rental belonging to
// someone else surfaces as repository.ErrRentalNotFound.
func (l *Ledger) Get(ctx context.Context, rentalID, userID uint64) (repository.RentalDetail, error) {
	return l.rentals.GetByIDForUser(ctx, rentalID, userID)
}

// Cancel permanently deletes the rental matching rentalID and userID.
// Cancelling a missing, already-cancelled or foreign rental always
// fails the same way, with repository.ErrRentalNotFound.
func (l *Ledger) Cancel(ctx context.Context, userID, rentalID uint64) error {
	return l.rentals.DeleteByIDForUser(ctx, rentalID, userID)
}
