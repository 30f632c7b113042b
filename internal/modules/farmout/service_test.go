// README: Status propagation tests against mocked collaborators.
package farmout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"relialimo/internal/config"
	"relialimo/internal/infra"
	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/reservation"
	"relialimo/internal/types"
)

// Prometheus collectors register globally, so the test binary shares one set.
var testMetrics = infra.NewMetrics("relialimo_test")

type MockReservationStore struct {
	mock.Mock
}

func (m *MockReservationStore) Get(ctx context.Context, id types.ID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationStore) List(ctx context.Context) ([]reservation.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockReservationStore) Complete(ctx context.Context, id types.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationStore) Accept(ctx context.Context, id types.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReservationStore) SetFarmoutStatus(ctx context.Context, id types.ID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockReservationStore) SetDriver(ctx context.Context, id types.ID, driverID types.ID) error {
	return m.Called(ctx, id, driverID).Error(0)
}

type MockDriverStore struct {
	mock.Mock
}

func (m *MockDriverStore) Get(ctx context.Context, id types.ID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverStore) List(ctx context.Context) ([]driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]driver.Driver), args.Error(1)
}

func (m *MockDriverStore) UpdateStatus(ctx context.Context, id types.ID, status driver.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Persist(ctx context.Context, snapshots []AssignmentSnapshot) error {
	return m.Called(ctx, snapshots).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) LogActivity(ctx context.Context, reservationID types.ID, message string) {
	m.Called(ctx, reservationID, message)
}

func (m *MockNotifier) RefreshFarmoutPanel(ctx context.Context, r *reservation.Reservation) {
	m.Called(ctx, r)
}

func (m *MockNotifier) RefreshDriverDirectory(ctx context.Context, drivers []driver.Driver) {
	m.Called(ctx, drivers)
}

func (m *MockNotifier) RefreshMapMarkers(ctx context.Context, reservations []reservation.Reservation) {
	m.Called(ctx, reservations)
}

func newTestService(res *MockReservationStore, drv *MockDriverStore, snap *MockSnapshotStore, n *MockNotifier) *Service {
	return NewService(res, drv, snap, n, zap.NewNop().Sugar(), testMetrics, config.FarmoutConfig{PollSeconds: 30})
}

func TestApplyStatusUpdatePassengerOnboard(t *testing.T) {
	res := new(MockReservationStore)
	drv := new(MockDriverStore)
	snap := new(MockSnapshotStore)
	notifier := new(MockNotifier)

	rec := &reservation.Reservation{
		ID:            "R1",
		FarmOption:    "farm_out",
		FarmoutStatus: "enroute",
		DriverName:    "D. Jones",
	}
	res.On("Get", mock.Anything, types.ID("R1")).Return(rec, nil)
	res.On("Accept", mock.Anything, types.ID("R1")).Return(nil)
	res.On("SetFarmoutStatus", mock.Anything, types.ID("R1"), "passenger_onboard").Return(nil)
	res.On("SetDriver", mock.Anything, types.ID("R1"), types.ID("D7")).Return(nil)
	res.On("List", mock.Anything).Return([]reservation.Reservation{*rec}, nil)
	drv.On("UpdateStatus", mock.Anything, types.ID("D7"), driver.StatusPassengerOnboard).Return(nil)
	drv.On("List", mock.Anything).Return([]driver.Driver{}, nil)
	snap.On("Persist", mock.Anything, mock.Anything).Return(nil)
	notifier.On("LogActivity", mock.Anything, types.ID("R1"), "Driver updated status to PASSENGER_ONBOARD").Return()
	notifier.On("RefreshFarmoutPanel", mock.Anything, mock.Anything).Return()
	notifier.On("RefreshDriverDirectory", mock.Anything, mock.Anything).Return()
	notifier.On("RefreshMapMarkers", mock.Anything, mock.Anything).Return()

	svc := newTestService(res, drv, snap, notifier)
	err := svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{
		ReservationID: "R1",
		NewStatus:     "passenger_on_board",
		DriverID:      "D7",
	})

	assert.NoError(t, err)
	res.AssertCalled(t, "Accept", mock.Anything, types.ID("R1"))
	res.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	drv.AssertCalled(t, "UpdateStatus", mock.Anything, types.ID("D7"), driver.StatusPassengerOnboard)
	snap.AssertNumberOfCalls(t, "Persist", 1)
	// The refreshed record carries the mutation.
	assert.Equal(t, "passenger_onboard", rec.FarmoutStatus)
	assert.Equal(t, reservation.StatusAccepted, rec.Status)
}

func TestApplyStatusUpdateCompleted(t *testing.T) {
	res := new(MockReservationStore)
	drv := new(MockDriverStore)
	snap := new(MockSnapshotStore)
	notifier := new(MockNotifier)

	rec := &reservation.Reservation{ID: "R2", FarmOption: "farm_out"}
	res.On("Get", mock.Anything, types.ID("R2")).Return(rec, nil)
	res.On("Complete", mock.Anything, types.ID("R2")).Return(nil)
	res.On("SetFarmoutStatus", mock.Anything, types.ID("R2"), "completed").Return(nil)
	res.On("SetDriver", mock.Anything, types.ID("R2"), types.ID("D9")).Return(nil)
	res.On("List", mock.Anything).Return([]reservation.Reservation{*rec}, nil)
	// Completion frees the driver.
	drv.On("UpdateStatus", mock.Anything, types.ID("D9"), driver.StatusAvailable).Return(nil)
	drv.On("List", mock.Anything).Return([]driver.Driver{}, nil)
	snap.On("Persist", mock.Anything, mock.Anything).Return(nil)
	notifier.On("LogActivity", mock.Anything, mock.Anything, mock.Anything).Return()
	notifier.On("RefreshFarmoutPanel", mock.Anything, mock.Anything).Return()
	notifier.On("RefreshDriverDirectory", mock.Anything, mock.Anything).Return()
	notifier.On("RefreshMapMarkers", mock.Anything, mock.Anything).Return()

	svc := newTestService(res, drv, snap, notifier)
	err := svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{
		ReservationID: "R2",
		NewStatus:     "DONE",
		DriverID:      "D9",
	})

	assert.NoError(t, err)
	res.AssertCalled(t, "Complete", mock.Anything, types.ID("R2"))
	res.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestApplyStatusUpdateUnknownReservation(t *testing.T) {
	res := new(MockReservationStore)
	drv := new(MockDriverStore)
	snap := new(MockSnapshotStore)
	notifier := new(MockNotifier)

	res.On("Get", mock.Anything, types.ID("missing")).Return(nil, reservation.ErrNotFound)

	svc := newTestService(res, drv, snap, notifier)
	err := svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{
		ReservationID: "missing",
		NewStatus:     "enroute",
	})

	assert.ErrorIs(t, err, ErrNotFound)
	res.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
	res.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	res.AssertNotCalled(t, "SetFarmoutStatus", mock.Anything, mock.Anything, mock.Anything)
	drv.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	snap.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "LogActivity", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyStatusUpdateStoreFailure(t *testing.T) {
	res := new(MockReservationStore)
	drv := new(MockDriverStore)
	snap := new(MockSnapshotStore)
	notifier := new(MockNotifier)

	rec := &reservation.Reservation{ID: "R3", FarmOption: "farm_out"}
	res.On("Get", mock.Anything, types.ID("R3")).Return(rec, nil)
	res.On("Accept", mock.Anything, types.ID("R3")).Return(errors.New("connection reset"))

	svc := newTestService(res, drv, snap, notifier)
	err := svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{
		ReservationID: "R3",
		NewStatus:     "enroute",
	})

	assert.ErrorIs(t, err, ErrStoreFailure)
	// Remaining side effects are skipped; nothing is rolled back.
	res.AssertNotCalled(t, "SetFarmoutStatus", mock.Anything, mock.Anything, mock.Anything)
	snap.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
}

func TestApplyStatusUpdateMissingDriverIsSkipped(t *testing.T) {
	res := new(MockReservationStore)
	drv := new(MockDriverStore)
	snap := new(MockSnapshotStore)
	notifier := new(MockNotifier)

	rec := &reservation.Reservation{ID: "R4", FarmOption: "farm_out"}
	res.On("Get", mock.Anything, types.ID("R4")).Return(rec, nil)
	res.On("Accept", mock.Anything, types.ID("R4")).Return(nil)
	res.On("SetFarmoutStatus", mock.Anything, types.ID("R4"), "arrived").Return(nil)
	res.On("SetDriver", mock.Anything, types.ID("R4"), types.ID("gone")).Return(nil)
	res.On("List", mock.Anything).Return([]reservation.Reservation{*rec}, nil)
	drv.On("UpdateStatus", mock.Anything, types.ID("gone"), driver.StatusArrived).Return(driver.ErrNotFound)
	drv.On("List", mock.Anything).Return([]driver.Driver{}, nil)
	snap.On("Persist", mock.Anything, mock.Anything).Return(nil)
	notifier.On("LogActivity", mock.Anything, mock.Anything, mock.Anything).Return()
	notifier.On("RefreshFarmoutPanel", mock.Anything, mock.Anything).Return()
	notifier.On("RefreshDriverDirectory", mock.Anything, mock.Anything).Return()
	notifier.On("RefreshMapMarkers", mock.Anything, mock.Anything).Return()

	svc := newTestService(res, drv, snap, notifier)
	err := svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{
		ReservationID: "R4",
		NewStatus:     "arrived",
		DriverID:      "gone",
	})

	// A stale driver reference does not block the reservation-side update.
	assert.NoError(t, err)
	snap.AssertNumberOfCalls(t, "Persist", 1)
}

func TestApplyStatusUpdateBadRequest(t *testing.T) {
	svc := newTestService(new(MockReservationStore), new(MockDriverStore), new(MockSnapshotStore), new(MockNotifier))

	err := svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{ReservationID: "", NewStatus: "enroute"})
	assert.ErrorIs(t, err, ErrBadRequest)

	err = svc.ApplyStatusUpdate(context.Background(), StatusUpdateCommand{ReservationID: "R1", NewStatus: "   "})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestRebuildSnapshotFilters(t *testing.T) {
	res := new(MockReservationStore)
	snap := new(MockSnapshotStore)

	all := []reservation.Reservation{
		// driver present but still unassigned: excluded
		{ID: "A", FarmOption: "farm_out", FarmoutStatus: "farm_out_unassigned", DriverName: "X"},
		// driver present and assigned: included
		{ID: "B", ConfirmationNo: "10000002", FarmOption: "farm_out", FarmoutStatus: "farm_out_assigned", DriverID: "D1", DriverName: "Y"},
		// completed but no driver info: excluded
		{ID: "C", FarmOption: "farm_out", FarmoutStatus: "completed"},
	}
	res.On("List", mock.Anything).Return(all, nil)

	var persisted []AssignmentSnapshot
	snap.On("Persist", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		persisted = args.Get(1).([]AssignmentSnapshot)
	}).Return(nil)

	svc := newTestService(res, new(MockDriverStore), snap, new(MockNotifier))
	err := svc.RebuildSnapshot(context.Background())

	assert.NoError(t, err)
	assert.Len(t, persisted, 1)
	assert.Equal(t, types.ID("B"), persisted[0].ReservationID)
	assert.Equal(t, StatusAssigned, persisted[0].Status)
	assert.Equal(t, "10000002", persisted[0].ConfirmationNo)
	assert.Equal(t, "Y", persisted[0].Driver.Name)
}

func TestBoardMembership(t *testing.T) {
	res := new(MockReservationStore)

	all := []reservation.Reservation{
		{ID: "A", FarmOption: "farm_out", FarmoutStatus: "assigned"},
		// farm-out shaped status but brought back in-house: off the board
		{ID: "B", FarmOption: "in-house", FarmoutStatus: "completed"},
		{ID: "C", Status: "pending"},
	}
	res.On("List", mock.Anything).Return(all, nil)

	svc := newTestService(res, new(MockDriverStore), new(MockSnapshotStore), new(MockNotifier))
	board, err := svc.Board(context.Background())

	assert.NoError(t, err)
	assert.Len(t, board, 1)
	assert.Equal(t, types.ID("A"), board[0].ReservationID)
}
