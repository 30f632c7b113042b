// README: Driver directory service (availability and duty state).
package driver

import (
	"context"
	"errors"

	"relialimo/internal/types"
)

var ErrBadStatus = errors.New("unknown driver status")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Driver, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

// SetAvailability updates a driver's status and keeps the on-duty presence
// set in step: offline drivers drop out of the set, everything else joins it.
func (s *Service) SetAvailability(ctx context.Context, id types.ID, status Status) error {
	if !ValidStatus(status) {
		return ErrBadStatus
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if status == StatusOffline {
		return s.store.MarkOffDuty(ctx, id)
	}
	return s.store.MarkOnDuty(ctx, id)
}
