// README: Reservation store backed by PostgreSQL. The full record is kept as
// JSONB because historical records carry arbitrary legacy field spellings;
// a few columns are mirrored for indexing.
package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"relialimo/internal/types"
)

var ErrNotFound = errors.New("reservation not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, r *Reservation) error {
	record, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reservation: %w", err)
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO reservations (id, confirmation_no, status, farm_option, pickup_at, record, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(r.ID), r.ConfirmationNo, r.Status, r.FarmOption, r.PickupAt, record, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Reservation, error) {
	row := s.db.QueryRow(ctx, `SELECT record FROM reservations WHERE id = $1`, string(id))
	var record []byte
	err := row.Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var r Reservation
	if err := json.Unmarshal(record, &r); err != nil {
		return nil, fmt.Errorf("decode reservation %s: %w", id, err)
	}
	return &r, nil
}

func (s *Store) List(ctx context.Context) ([]Reservation, error) {
	rows, err := s.db.Query(ctx, `SELECT record FROM reservations ORDER BY pickup_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var r Reservation
		if err := json.Unmarshal(record, &r); err != nil {
			return nil, fmt.Errorf("decode reservation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Save replaces the stored record wholesale and refreshes the mirror columns.
func (s *Store) Save(ctx context.Context, r *Reservation) error {
	record, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reservation: %w", err)
	}
	tag, err := s.db.Exec(ctx, `
        UPDATE reservations
        SET confirmation_no = $1, status = $2, farm_option = $3, pickup_at = $4,
            record = $5, updated_at = NOW()
        WHERE id = $6`,
		r.ConfirmationNo, r.Status, r.FarmOption, r.PickupAt, record, string(r.ID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete marks the generic status completed in both the mirror column and
// the stored record.
func (s *Store) Complete(ctx context.Context, id types.ID) error {
	return s.setStatus(ctx, id, StatusCompleted)
}

// Accept marks the generic status accepted.
func (s *Store) Accept(ctx context.Context, id types.ID) error {
	return s.setStatus(ctx, id, StatusAccepted)
}

func (s *Store) setStatus(ctx context.Context, id types.ID, status string) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE reservations
        SET status = $1,
            record = jsonb_set(record, '{status}', to_jsonb($1::text)),
            updated_at = NOW()
        WHERE id = $2`,
		status, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFarmoutStatus writes the canonical farm-out status into the record's
// current-scheme field. Legacy spellings on the record are left untouched;
// the classifier's field order makes the current field win.
func (s *Store) SetFarmoutStatus(ctx context.Context, id types.ID, status string) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE reservations
        SET record = jsonb_set(record, '{farmout_status}', to_jsonb($1::text)),
            updated_at = NOW()
        WHERE id = $2`,
		status, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDriver records the assigned driver id on the record.
func (s *Store) SetDriver(ctx context.Context, id types.ID, driverID types.ID) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE reservations
        SET record = jsonb_set(record, '{driver_id}', to_jsonb($1::text)),
            updated_at = NOW()
        WHERE id = $2`,
		string(driverID), string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
