package repository

import (
	"context"
	"database/sql"

	"github.com/wheelstreet/bike-rental/internal/model"
)

// LocationRepo provides access to the `locations` table. Locations
// are created once and never updated, so the repository only exposes
// create and read operations.
type LocationRepo struct{ db *sql.DB }

func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// Create inserts a location and returns its ID.
func (r *LocationRepo) Create(ctx context.Context, l model.Location) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO locations (name, address, city, state, zip_code) VALUES (?,?,?,?,?)",
		l.Name, l.Address, l.City, l.State, l.ZipCode)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a location. Returns ErrLocationNotFound when the
// id does not resolve.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (model.Location, error) {
	var l model.Location
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, address, city, state, zip_code, created_at FROM locations WHERE id=? LIMIT 1",
		id).Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.State, &l.ZipCode, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Location{}, ErrLocationNotFound
	}
	return l, err
}

// ListAll returns every location in insertion order.
func (r *LocationRepo) ListAll(ctx context.Context) ([]model.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, address, city, state, zip_code, created_at FROM locations ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.City, &l.State, &l.ZipCode, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
