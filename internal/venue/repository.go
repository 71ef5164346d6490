package venue

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"prestigo/internal/db"
)

const venueColumns = `id, name, category, city, address, open_at, close_at, slot_minutes, slot_capacity, timezone, created_at`

type SQLRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db, now: time.Now}
}

func (r *SQLRepository) CreateVenue(ctx context.Context, v *Venue) error {
	query := r.db.Rebind(`
		INSERT INTO venues (` + venueColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	v.CreatedAt = r.now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Category, v.City, v.Address,
		v.OpenAt, v.CloseAt, v.SlotMinutes, v.SlotCapacity, v.Timezone,
		v.CreatedAt,
	)
	return err
}

func (r *SQLRepository) GetAllVenues(ctx context.Context) ([]Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY name ASC`

	venues := []Venue{}
	if err := r.db.SelectContext(ctx, &venues, query); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *SQLRepository) GetVenueByID(ctx context.Context, id string) (*Venue, error) {
	query := r.db.Rebind(`SELECT ` + venueColumns + ` FROM venues WHERE id = ?`)

	var v Venue
	err := r.db.GetContext(ctx, &v, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *SQLRepository) VenueExists(ctx context.Context, id string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM venues WHERE id = ?)`, id)
}
