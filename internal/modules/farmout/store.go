// README: Collaborator interfaces the farm-out service depends on. Concrete
// implementations are the reservation and driver stores plus the Redis
// snapshot store; tests substitute mocks.
package farmout

import (
	"context"

	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/reservation"
	"relialimo/internal/types"
)

type ReservationStore interface {
	Get(ctx context.Context, id types.ID) (*reservation.Reservation, error)
	List(ctx context.Context) ([]reservation.Reservation, error)
	Complete(ctx context.Context, id types.ID) error
	Accept(ctx context.Context, id types.ID) error
	SetFarmoutStatus(ctx context.Context, id types.ID, status string) error
	SetDriver(ctx context.Context, id types.ID, driverID types.ID) error
}

type DriverStore interface {
	Get(ctx context.Context, id types.ID) (*driver.Driver, error)
	List(ctx context.Context) ([]driver.Driver, error)
	UpdateStatus(ctx context.Context, id types.ID, status driver.Status) error
}

type SnapshotStore interface {
	Persist(ctx context.Context, snapshots []AssignmentSnapshot) error
}

// Notifier fans mutations out to whatever renders them. Fire and forget;
// implementations must not block the propagation path.
type Notifier interface {
	LogActivity(ctx context.Context, reservationID types.ID, message string)
	RefreshFarmoutPanel(ctx context.Context, r *reservation.Reservation)
	RefreshDriverDirectory(ctx context.Context, drivers []driver.Driver)
	RefreshMapMarkers(ctx context.Context, reservations []reservation.Reservation)
}
