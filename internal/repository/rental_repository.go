package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wheelstreet/bike-rental/internal/model"
)

// RentalRepo provides persistence for rentals. Creation and deletion
// run inside caller-supplied transactions so that a booking is either
// fully written or not visible at all. All timestamps are stored in
// UTC.
type RentalRepo struct{ db *sql.DB }

func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

// DB exposes the underlying handle so the ledger can open the
// transaction that wraps a create or cancel.
func (r *RentalRepo) DB() *sql.DB { return r.db }

// InsertTx inserts a rental within an existing transaction and
// populates the generated ID and CreatedAt on the record.
func (r *RentalRepo) InsertTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) error {
	const q = `INSERT INTO rentals
		(user_id, bike_id, pickup_location_id, dropoff_location_id, pickup_at, dropoff_at, total_price_cents)
		VALUES (?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, q,
		rec.UserID, rec.BikeID, rec.PickupLocationID, rec.DropoffLocationID,
		rec.PickupAt.UTC(), rec.DropoffAt.UTC(), rec.TotalPriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return tx.QueryRowContext(ctx, "SELECT created_at FROM rentals WHERE id=?", rec.ID).Scan(&rec.CreatedAt)
}

// DeleteByIDForUserTx removes the rental matching both id and owner.
// It reports sql.ErrNoRows when no such row exists; a rental owned by
// another user is indistinguishable from a missing one.
func (r *RentalRepo) DeleteByIDForUserTx(ctx context.Context, tx *sql.Tx, rentalID, userID uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM rentals WHERE id=? AND user_id=?", rentalID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Insert wraps InsertTx in its own transaction so that a booking is
// never partially visible, even if the request is aborted mid-flight.
func (r *RentalRepo) Insert(ctx context.Context, rec *model.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.InsertTx(ctx, tx, rec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// DeleteByIDForUser wraps DeleteByIDForUserTx in a transaction and
// maps the no-rows case to ErrRentalNotFound.
func (r *RentalRepo) DeleteByIDForUser(ctx context.Context, rentalID, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := r.DeleteByIDForUserTx(ctx, tx, rentalID, userID); err != nil {
		if err == sql.ErrNoRows {
			return ErrRentalNotFound
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// RentalDetail is a rental row joined with its bike and location
// display fields, returned by the listing and detail queries.
type RentalDetail struct {
	ID                uint64    `json:"id"`
	BikeID            uint64    `json:"bike_id"`
	BikeBrand         string    `json:"bike_brand"`
	BikeModel         string    `json:"bike_model"`
	PickupLocation    *string   `json:"pickup_location,omitempty"`
	DropoffLocation   *string   `json:"dropoff_location,omitempty"`
	PickupAt          time.Time `json:"pickup_at"`
	DropoffAt         time.Time `json:"dropoff_at"`
	TotalPriceCents   int64     `json:"total_price_cents"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

const rentalDetailQuery = `
	SELECT r.id, r.bike_id, b.brand, b.model, b.price_per_hour_cents,
	       pl.name, dl.name,
	       r.pickup_at, r.dropoff_at, r.total_price_cents, r.created_at
	FROM rentals r
	JOIN bikes b ON b.id = r.bike_id
	LEFT JOIN locations pl ON pl.id = r.pickup_location_id
	LEFT JOIN locations dl ON dl.id = r.dropoff_location_id`

func scanRentalDetail(row interface{ Scan(...any) error }) (RentalDetail, error) {
	var (
		d       RentalDetail
		pickup  sql.NullString
		dropoff sql.NullString
	)
	err := row.Scan(&d.ID, &d.BikeID, &d.BikeBrand, &d.BikeModel, &d.PricePerHourCents,
		&pickup, &dropoff, &d.PickupAt, &d.DropoffAt, &d.TotalPriceCents, &d.CreatedAt)
	if err != nil {
		return RentalDetail{}, err
	}
	if pickup.Valid {
		v := pickup.String
		d.PickupLocation = &v
	}
	if dropoff.Valid {
		v := dropoff.String
		d.DropoffLocation = &v
	}
	return d, nil
}

// ListByUser returns every rental owned by userID in insertion order.
func (r *RentalRepo) ListByUser(ctx context.Context, userID uint64) ([]RentalDetail, error) {
	rows, err := r.db.QueryContext(ctx, rentalDetailQuery+" WHERE r.user_id=? ORDER BY r.id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RentalDetail, 0)
	for rows.Next() {
		d, err := scanRentalDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByIDForUser returns one rental detail scoped to its owner.
// Missing and foreign rentals both surface as ErrRentalNotFound.
func (r *RentalRepo) GetByIDForUser(ctx context.Context, rentalID, userID uint64) (RentalDetail, error) {
	row := r.db.QueryRowContext(ctx, rentalDetailQuery+" WHERE r.id=? AND r.user_id=?", rentalID, userID)
	d, err := scanRentalDetail(row)
	if err == sql.ErrNoRows {
		return RentalDetail{}, ErrRentalNotFound
	}
	return d, err
}

// CountByUser reports the number of rentals owned by userID. Used by
// tests to assert that failed creates leave storage untouched.
func (r *RentalRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rentals WHERE user_id=?", userID).Scan(&n)
	return n, err
}
