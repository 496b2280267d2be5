package repository

import (
	"context"
	"database/sql"

	"github.com/wheelstreet/bike-rental/internal/model"
)

// BikeRepo provides CRUD access to the `bikes` table. Bikes are
// immutable after creation except for the availability flag and the
// description, which admins may update.
type BikeRepo struct{ db *sql.DB }

func NewBikeRepo(db *sql.DB) *BikeRepo { return &BikeRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *BikeRepo) DB() *sql.DB { return r.db }

const bikeColumns = "id, category, brand, model, price_per_hour_cents, available, description, mileage_kmpl, image_url, created_at, updated_at"

func scanBike(row interface{ Scan(...any) error }) (model.Bike, error) {
	var (
		b           model.Bike
		description sql.NullString
		imageURL    sql.NullString
	)
	err := row.Scan(&b.ID, &b.Category, &b.Brand, &b.Model, &b.PricePerHourCents,
		&b.Available, &description, &b.MileageKmpl, &imageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.Bike{}, err
	}
	if description.Valid {
		d := description.String
		b.Description = &d
	}
	if imageURL.Valid {
		u := imageURL.String
		b.ImageURL = &u
	}
	return b, nil
}

// Create inserts a bike and returns its ID.
func (r *BikeRepo) Create(ctx context.Context, b model.Bike) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bikes (category, brand, model, price_per_hour_cents, available, description, mileage_kmpl, image_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		b.Category, b.Brand, b.Model, b.PricePerHourCents, b.Available, b.Description, b.MileageKmpl, b.ImageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single bike. Returns ErrBikeNotFound when the id
// does not resolve.
func (r *BikeRepo) GetByID(ctx context.Context, id uint64) (model.Bike, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+bikeColumns+" FROM bikes WHERE id=? LIMIT 1", id)
	b, err := scanBike(row)
	if err == sql.ErrNoRows {
		return model.Bike{}, ErrBikeNotFound
	}
	return b, err
}

// List returns bikes in insertion order. When availableOnly is true,
// only bikes with the available flag set are returned; this is the
// public catalog view.
func (r *BikeRepo) List(ctx context.Context, availableOnly bool) ([]model.Bike, error) {
	q := "SELECT " + bikeColumns + " FROM bikes"
	if availableOnly {
		q += " WHERE available=1"
	}
	q += " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bike
	for rows.Next() {
		b, err := scanBike(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateAdvisory updates the two mutable columns of a bike. Nil
// pointers leave the corresponding column untouched. Returns
// ErrBikeNotFound when the id does not resolve.
func (r *BikeRepo) UpdateAdvisory(ctx context.Context, id uint64, available *bool, description *string) error {
	if available == nil && description == nil {
		return nil
	}
	q := "UPDATE bikes SET "
	args := make([]any, 0, 3)
	if available != nil {
		q += "available=?"
		args = append(args, *available)
	}
	if description != nil {
		if available != nil {
			q += ", "
		}
		q += "description=?"
		args = append(args, *description)
	}
	q += " WHERE id=?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	// RowsAffected is zero both for a missing row and a no-op update,
	// so confirm existence separately only when nothing matched.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a bike from the catalog. Rentals referencing the
// bike are removed by the ON DELETE CASCADE foreign key.
func (r *BikeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bikes WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBikeNotFound
	}
	return nil
}
