// README: Driver record and availability status definitions.
package driver

import (
	"time"

	"relialimo/internal/types"
)

type Status string

const (
	StatusAvailable        Status = "available"
	StatusEnroute          Status = "enroute"
	StatusArrived          Status = "arrived"
	StatusPassengerOnboard Status = "passenger_onboard"
	StatusBusy             Status = "busy"
	StatusOffline          Status = "offline"
)

// ValidStatus reports whether s is one of the known availability states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusEnroute, StatusArrived, StatusPassengerOnboard, StatusBusy, StatusOffline:
		return true
	}
	return false
}

type Driver struct {
	ID          types.ID `json:"id"`
	Name        string   `json:"name"`
	Affiliate   string   `json:"affiliate,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	VehicleType string   `json:"vehicle_type,omitempty"`
	Status      Status   `json:"status"`
	// AssignedReservation is the reservation the driver is currently working,
	// if any. At most one active assignment per driver; callers enforce this.
	AssignedReservation *types.ID `json:"assigned_reservation,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}
