// README: Classification output and the derived assignment snapshot.
package farmout

import (
	"time"

	"relialimo/internal/types"
)

// Category is the coarse bucket used by the general reservation list view.
// Independent of the farm-out lifecycle status.
type Category string

const (
	CategoryPending   Category = "pending"
	CategoryAccepted  Category = "accepted"
	CategoryCompleted Category = "completed"
)

type DriverSummary struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Affiliate   string `json:"affiliate,omitempty"`
	Phone       string `json:"phone,omitempty"`
	VehicleType string `json:"vehicle_type,omitempty"`
}

// Present reports whether the summary carries any identifying information.
func (d DriverSummary) Present() bool {
	return d.ID != "" || d.Name != ""
}

// Classified is the result of resolving one raw reservation record: the
// coarse dashboard bucket plus the farm-out canonical state and the display
// fields resolved across legacy spellings.
type Classified struct {
	ReservationID  types.ID `json:"reservation_id"`
	ConfirmationNo string   `json:"confirmation_no,omitempty"`

	Category Category `json:"category"`
	Label    string   `json:"label,omitempty"`

	Status    Status `json:"status"`
	Mode      string `json:"mode"`
	IsFarmOut bool   `json:"is_farm_out"`

	PassengerName string        `json:"passenger_name,omitempty"`
	PickupAddress string        `json:"pickup_address,omitempty"`
	PickupDate    string        `json:"pickup_date,omitempty"`
	PickupTime    string        `json:"pickup_time,omitempty"`
	Driver        DriverSummary `json:"driver"`
}

// AssignmentSnapshot is one row of the disposable farm-out assignment
// projection. Recomputed wholesale on every mutation, never patched.
type AssignmentSnapshot struct {
	ReservationID  types.ID      `json:"reservation_id"`
	ConfirmationNo string        `json:"confirmation_no"`
	PassengerName  string        `json:"passenger_name"`
	PickupDate     string        `json:"pickup_date"`
	PickupTime     string        `json:"pickup_time"`
	Status         Status        `json:"status"`
	Mode           string        `json:"mode"`
	Driver         DriverSummary `json:"driver"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
