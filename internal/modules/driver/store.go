// README: Driver store backed by PostgreSQL, with a Redis on-duty presence set.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"relialimo/internal/types"
)

var ErrNotFound = errors.New("driver not found")

const onDutyKey = "drivers:on_duty"

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redisClient *redis.Client) *Store {
	return &Store{db: db, redis: redisClient}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, name, affiliate, phone, vehicle_type, status, assigned_reservation, updated_at
        FROM drivers
        WHERE id = $1`, string(id),
	)
	d, err := scanDriver(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) List(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, affiliate, phone, vehicle_type, status, assigned_reservation, updated_at
        FROM drivers
        ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, status Status) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE drivers
        SET status = $1, updated_at = NOW()
        WHERE id = $2`,
		string(status), string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Assign links a driver to a reservation; pass nil to clear the link.
func (s *Store) Assign(ctx context.Context, id types.ID, reservationID *types.ID) error {
	var resRef *string
	if reservationID != nil {
		v := string(*reservationID)
		resRef = &v
	}
	tag, err := s.db.Exec(ctx, `
        UPDATE drivers
        SET assigned_reservation = $1, updated_at = NOW()
        WHERE id = $2`,
		resRef, string(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkOnDuty(ctx context.Context, id types.ID) error {
	return s.redis.SAdd(ctx, onDutyKey, string(id)).Err()
}

func (s *Store) MarkOffDuty(ctx context.Context, id types.ID) error {
	return s.redis.SRem(ctx, onDutyKey, string(id)).Err()
}

func (s *Store) OnDutyIDs(ctx context.Context) ([]types.ID, error) {
	members, err := s.redis.SMembers(ctx, onDutyKey).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(members))
	for i, m := range members {
		ids[i] = types.ID(m)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*Driver, error) {
	var d Driver
	var assigned *string
	var updatedAt time.Time
	err := row.Scan(&d.ID, &d.Name, &d.Affiliate, &d.Phone, &d.VehicleType, &d.Status, &assigned, &updatedAt)
	if err != nil {
		return nil, err
	}
	if assigned != nil {
		v := types.ID(*assigned)
		d.AssignedReservation = &v
	}
	d.UpdatedAt = updatedAt
	return &d, nil
}
