// README: Reservation service: booking-form create/update and lookups.
package reservation

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"relialimo/internal/types"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	PassengerName string
	PickupAddress string
	PickupAt      time.Time
	FarmOption    string
	DispatchMode  string
	VehicleType   string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Reservation, error) {
	if cmd.PassengerName == "" {
		return nil, ErrBadRequest
	}
	now := time.Now()
	farmOption := cmd.FarmOption
	if farmOption == "" {
		farmOption = "in-house"
	}
	r := &Reservation{
		ID:             types.ID(uuid.NewString()),
		ConfirmationNo: newConfirmationNo(),
		Status:         StatusPending,
		FarmOption:     farmOption,
		DispatchMode:   cmd.DispatchMode,
		PassengerName:  cmd.PassengerName,
		PickupAddress:  cmd.PickupAddress,
		VehicleType:    cmd.VehicleType,
		PickupAt:       cmd.PickupAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Reservation, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Reservation, error) {
	return s.store.List(ctx)
}

func (s *Service) Save(ctx context.Context, r *Reservation) error {
	if r.ID == "" {
		return ErrBadRequest
	}
	return s.store.Save(ctx, r)
}

func newConfirmationNo() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%08d", binary.BigEndian.Uint32(b[:])%100000000)
}
