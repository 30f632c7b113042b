// README: Farm-out status propagation service. Applies externally reported
// status updates to reservation and driver records, then rebuilds the
// assignment snapshot.
package farmout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"relialimo/internal/config"
	"relialimo/internal/infra"
	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/reservation"
	"relialimo/internal/types"
)

var (
	ErrNotFound     = errors.New("reservation not found")
	ErrStoreFailure = errors.New("store failure")
	ErrBadRequest   = errors.New("bad request")
)

type Service struct {
	reservations ReservationStore
	drivers      DriverStore
	snapshots    SnapshotStore
	notifier     Notifier
	log          *zap.SugaredLogger
	metrics      *infra.Metrics
	poll         time.Duration

	// Read-mutate-write on a reservation is not atomic; updates for the same
	// reservation id are serialized here. Entries are never reclaimed, which
	// is fine at this domain's volumes (tens to low hundreds of records).
	mu    sync.Mutex
	locks map[types.ID]*sync.Mutex
}

func NewService(
	reservations ReservationStore,
	drivers DriverStore,
	snapshots SnapshotStore,
	notifier Notifier,
	log *zap.SugaredLogger,
	metrics *infra.Metrics,
	cfg config.FarmoutConfig,
) *Service {
	poll := time.Duration(cfg.PollSeconds) * time.Second
	if poll <= 0 {
		poll = 30 * time.Second
	}
	return &Service{
		reservations: reservations,
		drivers:      drivers,
		snapshots:    snapshots,
		notifier:     notifier,
		log:          log,
		metrics:      metrics,
		poll:         poll,
		locks:        map[types.ID]*sync.Mutex{},
	}
}

type StatusUpdateCommand struct {
	ReservationID types.ID
	NewStatus     string
	DriverID      types.ID // optional
}

// ApplyStatusUpdate propagates an externally reported status transition:
// canonicalize, mark the generic status completed or accepted, always write
// the canonical farm-out status, best-effort push the derived driver state,
// notify renderers, and rebuild the snapshot. Errors wrap ErrNotFound or
// ErrStoreFailure so callers can decide what to surface; earlier writes are
// never rolled back.
func (s *Service) ApplyStatusUpdate(ctx context.Context, cmd StatusUpdateCommand) error {
	if cmd.ReservationID == "" || strings.TrimSpace(cmd.NewStatus) == "" {
		return ErrBadRequest
	}

	lock := s.lockFor(cmd.ReservationID)
	lock.Lock()
	defer lock.Unlock()

	rec, err := s.reservations.Get(ctx, cmd.ReservationID)
	if err != nil {
		return s.propagationErr("lookup reservation", cmd.ReservationID, err)
	}

	canonical := CanonicalStatus(cmd.NewStatus)

	if canonical == StatusCompleted {
		err = s.reservations.Complete(ctx, cmd.ReservationID)
	} else {
		err = s.reservations.Accept(ctx, cmd.ReservationID)
	}
	if err != nil {
		return s.propagationErr("update reservation status", cmd.ReservationID, err)
	}
	if err := s.reservations.SetFarmoutStatus(ctx, cmd.ReservationID, string(canonical)); err != nil {
		return s.propagationErr("set farmout status", cmd.ReservationID, err)
	}

	// Mirror the mutation locally for the panel refresh.
	rec.FarmoutStatus = string(canonical)
	if canonical == StatusCompleted {
		rec.Status = reservation.StatusCompleted
	} else {
		rec.Status = reservation.StatusAccepted
	}

	if cmd.DriverID != "" {
		if err := s.reservations.SetDriver(ctx, cmd.ReservationID, cmd.DriverID); err != nil {
			return s.propagationErr("set reservation driver", cmd.ReservationID, err)
		}
		rec.DriverID = string(cmd.DriverID)
		if derived, ok := driverStatusFor[canonical]; ok {
			if err := s.drivers.UpdateStatus(ctx, cmd.DriverID, derived); err != nil {
				// The reservation writes above already landed; the two
				// records disagree until the next update. No compensation.
				if errors.Is(err, driver.ErrNotFound) {
					s.log.Warnw("driver not found, skipping driver push",
						"reservation_id", cmd.ReservationID, "driver_id", cmd.DriverID)
				} else {
					return s.propagationErr("update driver status", cmd.ReservationID, err)
				}
			}
		}
	}

	s.metrics.StatusUpdatesApplied.Inc()
	s.notifier.LogActivity(ctx, cmd.ReservationID,
		fmt.Sprintf("Driver updated status to %s", strings.ToUpper(string(canonical))))
	s.notifyAll(ctx, rec)

	return s.RebuildSnapshot(ctx)
}

// notifyAll refreshes every renderer after a mutation. Unconditional: a
// failed list fetch downgrades that refresh to empty rather than skipping it.
func (s *Service) notifyAll(ctx context.Context, rec *reservation.Reservation) {
	s.notifier.RefreshFarmoutPanel(ctx, rec)

	drivers, err := s.drivers.List(ctx)
	if err != nil {
		s.log.Warnw("list drivers for refresh", "error", err)
	}
	s.notifier.RefreshDriverDirectory(ctx, drivers)

	reservations, err := s.reservations.List(ctx)
	if err != nil {
		s.log.Warnw("list reservations for refresh", "error", err)
	}
	s.notifier.RefreshMapMarkers(ctx, reservations)
}

// Board returns the classified reservations that belong in the farm-out
// operational view. Only the farm option gates membership; a farm-out shaped
// status never pulls an in-house trip onto the board.
func (s *Service) Board(ctx context.Context) ([]Classified, error) {
	all, err := s.reservations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list reservations: %v", ErrStoreFailure, err)
	}
	var out []Classified
	for i := range all {
		c := Classify(&all[i])
		if c.IsFarmOut {
			out = append(out, c)
		}
	}
	return out, nil
}

// RebuildSnapshot recomputes the active-assignment projection from scratch
// and persists it wholesale. Reservation volumes here are small; there is no
// incremental path on purpose.
func (s *Service) RebuildSnapshot(ctx context.Context) error {
	start := time.Now()
	all, err := s.reservations.List(ctx)
	if err != nil {
		return s.propagationErr("list reservations for snapshot", "", err)
	}

	now := time.Now()
	snapshots := []AssignmentSnapshot{}
	for i := range all {
		c := Classify(&all[i])
		if !c.Driver.Present() {
			continue
		}
		// StatusInHouse encodes "no farm-out status at all" and never
		// belongs in the assignment projection.
		if c.Status == "" || c.Status == StatusUnassigned || c.Status == StatusInHouse {
			continue
		}
		snapshots = append(snapshots, AssignmentSnapshot{
			ReservationID:  c.ReservationID,
			ConfirmationNo: c.ConfirmationNo,
			PassengerName:  c.PassengerName,
			PickupDate:     c.PickupDate,
			PickupTime:     c.PickupTime,
			Status:         c.Status,
			Mode:           c.Mode,
			Driver:         c.Driver,
			UpdatedAt:      now,
		})
	}

	if err := s.snapshots.Persist(ctx, snapshots); err != nil {
		return s.propagationErr("persist snapshot", "", err)
	}
	s.metrics.SnapshotRebuilds.Inc()
	s.metrics.SnapshotRebuildTime.Observe(time.Since(start).Seconds())
	return nil
}

// RunReconciler periodically rebuilds the snapshot so records changed
// outside the propagation path (direct form saves, other offices) converge.
func (s *Service) RunReconciler(ctx context.Context) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RebuildSnapshot(ctx); err != nil {
				s.log.Errorw("snapshot reconcile", "error", err)
			}
		}
	}
}

func (s *Service) lockFor(id types.ID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Service) propagationErr(op string, id types.ID, err error) error {
	kind := ErrStoreFailure
	kindLabel := "store_failure"
	if errors.Is(err, reservation.ErrNotFound) || errors.Is(err, driver.ErrNotFound) {
		kind = ErrNotFound
		kindLabel = "not_found"
	}
	s.metrics.PropagationErrors.WithLabelValues(kindLabel).Inc()
	s.log.Errorw(op, "reservation_id", id, "error", err)
	return fmt.Errorf("%w: %s: %v", kind, op, err)
}
