// README: Reservation record with the legacy field spellings that accumulated
// across booking-tool generations. Several spellings of the same logical value
// may be present on one record at the same time; the farmout package resolves
// them with ordered field chains.
package reservation

import (
	"time"

	"relialimo/internal/types"
)

// Generic dashboard statuses (distinct from farm-out lifecycle statuses).
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// FarmDetails is the nested farm-out block written by older builds of the
// booking tool. Newer builds write the flat farmout_* fields instead.
type FarmDetails struct {
	Status      string `json:"status,omitempty"`
	Mode        string `json:"mode,omitempty"`
	AffiliateID string `json:"affiliate_id,omitempty"`
	DriverID    string `json:"driver_id,omitempty"`
	DriverName  string `json:"driver_name,omitempty"`
}

type Reservation struct {
	ID             types.ID `json:"id"`
	ConfirmationNo string   `json:"confirmation_no,omitempty"`

	// Generic status fields used by the reservation list view.
	Status      string `json:"status,omitempty"`
	DetailCode  string `json:"detail_code,omitempty"`
	StatusLabel string `json:"status_label,omitempty"`

	// Farm-out status, from newest to oldest naming scheme.
	FarmoutStatus    string       `json:"farmout_status,omitempty"`
	FarmoutStatusAlt string       `json:"farmoutStatus,omitempty"`
	EfarmStatus      string       `json:"efarm_status,omitempty"`
	EfarmStatusAlt   string       `json:"efarmStatus,omitempty"`
	Farm             *FarmDetails `json:"farm,omitempty"`

	// Farm option decides in-house vs farmed-out; legacy camelCase twin.
	FarmOption    string `json:"farm_option,omitempty"`
	FarmOptionAlt string `json:"farmOption,omitempty"`

	// Dispatch mode (manual vs automatic), with legacy spellings.
	DispatchMode    string `json:"dispatch_mode,omitempty"`
	DispatchModeAlt string `json:"dispatchMode,omitempty"`

	// Passenger and trip display fields.
	PassengerName string `json:"passenger_name,omitempty"`
	PaxName       string `json:"pax_name,omitempty"`
	ContactName   string `json:"contact_name,omitempty"`
	PickupAddress string `json:"pickup_address,omitempty"`
	PuAddress     string `json:"pu_address,omitempty"`
	PickupDate    string `json:"pickup_date,omitempty"`
	PickupTime    string `json:"pickup_time,omitempty"`

	// Assigned driver; any subset may be present.
	DriverID       string `json:"driver_id,omitempty"`
	AssignedDriver string `json:"assigned_driver,omitempty"`
	DriverName     string `json:"driver_name,omitempty"`
	ChauffeurName  string `json:"chauffeur_name,omitempty"`
	DriverPhone    string `json:"driver_phone,omitempty"`
	ChauffeurPhone string `json:"chauffeur_phone,omitempty"`
	Affiliate      string `json:"affiliate,omitempty"`
	FarmCompany    string `json:"farm_company,omitempty"`
	VehicleType    string `json:"vehicle_type,omitempty"`
	CarType        string `json:"car_type,omitempty"`

	PickupAt  time.Time `json:"pickup_at,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
