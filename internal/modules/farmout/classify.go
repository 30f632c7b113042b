// README: Reservation classifier. Resolves legacy field spellings through
// ordered accessor chains and derives canonical farm-out state.
package farmout

import (
	"strings"

	"relialimo/internal/modules/reservation"
)

// fieldChain is an ordered list of accessors tried in sequence; the first
// non-empty value wins. The order is the contract: upstream data has no
// single authoritative field, so classification depends on trying the
// newest scheme first.
type fieldChain []func(*reservation.Reservation) string

func (c fieldChain) resolve(r *reservation.Reservation) string {
	for _, get := range c {
		if v := strings.TrimSpace(get(r)); v != "" {
			return v
		}
	}
	return ""
}

var farmoutStatusFields = fieldChain{
	func(r *reservation.Reservation) string { return r.FarmoutStatus },
	func(r *reservation.Reservation) string { return r.FarmoutStatusAlt },
	func(r *reservation.Reservation) string { return r.EfarmStatus },
	func(r *reservation.Reservation) string { return r.EfarmStatusAlt },
	func(r *reservation.Reservation) string {
		if r.Farm != nil {
			return r.Farm.Status
		}
		return ""
	},
}

var genericStatusFields = fieldChain{
	func(r *reservation.Reservation) string { return r.Status },
	func(r *reservation.Reservation) string { return r.DetailCode },
	func(r *reservation.Reservation) string { return r.StatusLabel },
}

var farmOptionFields = fieldChain{
	func(r *reservation.Reservation) string { return r.FarmOption },
	func(r *reservation.Reservation) string { return r.FarmOptionAlt },
}

var modeFields = fieldChain{
	func(r *reservation.Reservation) string { return r.DispatchMode },
	func(r *reservation.Reservation) string { return r.DispatchModeAlt },
	func(r *reservation.Reservation) string {
		if r.Farm != nil {
			return r.Farm.Mode
		}
		return ""
	},
}

var passengerNameFields = fieldChain{
	func(r *reservation.Reservation) string { return r.PassengerName },
	func(r *reservation.Reservation) string { return r.PaxName },
	func(r *reservation.Reservation) string { return r.ContactName },
}

var pickupAddressFields = fieldChain{
	func(r *reservation.Reservation) string { return r.PickupAddress },
	func(r *reservation.Reservation) string { return r.PuAddress },
}

var driverIDFields = fieldChain{
	func(r *reservation.Reservation) string { return r.DriverID },
	func(r *reservation.Reservation) string { return r.AssignedDriver },
	func(r *reservation.Reservation) string {
		if r.Farm != nil {
			return r.Farm.DriverID
		}
		return ""
	},
}

var driverNameFields = fieldChain{
	func(r *reservation.Reservation) string { return r.DriverName },
	func(r *reservation.Reservation) string { return r.ChauffeurName },
	func(r *reservation.Reservation) string {
		if r.Farm != nil {
			return r.Farm.DriverName
		}
		return ""
	},
}

var driverPhoneFields = fieldChain{
	func(r *reservation.Reservation) string { return r.DriverPhone },
	func(r *reservation.Reservation) string { return r.ChauffeurPhone },
}

var affiliateFields = fieldChain{
	func(r *reservation.Reservation) string { return r.Affiliate },
	func(r *reservation.Reservation) string { return r.FarmCompany },
	func(r *reservation.Reservation) string {
		if r.Farm != nil {
			return r.Farm.AffiliateID
		}
		return ""
	},
}

var vehicleTypeFields = fieldChain{
	func(r *reservation.Reservation) string { return r.VehicleType },
	func(r *reservation.Reservation) string { return r.CarType },
}

// Detail codes the dashboard treats as "accepted" work in progress.
var acceptedDetailCodes = map[string]struct{}{
	"assigned":        {},
	"driver_assigned": {},
	"dispatched":      {},
	"accepted":        {},
	"enroute":         {},
	"en_route":        {},
	"on_location":     {},
	"waiting":         {},
}

var completedDetailCodes = map[string]struct{}{
	"completed":  {},
	"completing": {},
	"done":       {},
}

// Classify derives canonical farm-out state and the coarse dashboard bucket
// from a raw record. The input is never mutated.
func Classify(r *reservation.Reservation) Classified {
	isFarmOut := classifyFarmOption(r)
	status := classifyStatus(r, isFarmOut)
	category, label := classifyCategory(r)

	return Classified{
		ReservationID:  r.ID,
		ConfirmationNo: r.ConfirmationNo,
		Category:       category,
		Label:          label,
		Status:         status,
		Mode:           CanonicalMode(modeFields.resolve(r)),
		IsFarmOut:      isFarmOut,
		PassengerName:  passengerNameFields.resolve(r),
		PickupAddress:  pickupAddressFields.resolve(r),
		PickupDate:     pickupDate(r),
		PickupTime:     pickupTime(r),
		Driver:         driverSummary(r),
	}
}

// classifyFarmOption gates farm-out view membership. Only an explicit
// farm-out option puts a reservation on the farm-out board; a farm-out
// shaped status on its own never does.
func classifyFarmOption(r *reservation.Reservation) bool {
	opt := NormalizeKey(farmOptionFields.resolve(r))
	if opt == "" {
		opt = "in_house"
	}
	return opt == "farm_out" || opt == "farmout"
}

func classifyStatus(r *reservation.Reservation, isFarmOut bool) Status {
	// Dedicated farm-out fields always win, newest scheme first. This is how
	// a brought-back-in-house trip can still carry a completed farm-out
	// status from an earlier farmed-out leg.
	if raw := farmoutStatusFields.resolve(r); raw != "" {
		if s := CanonicalStatus(raw); s != "" {
			return s
		}
	}
	if !isFarmOut {
		return StatusInHouse
	}
	// A generic status that happens to spell a farm-out lifecycle status is
	// trusted next.
	if raw := genericStatusFields.resolve(r); raw != "" {
		if s := CanonicalStatus(raw); IsRecognizedStatus(string(s)) {
			return s
		}
	}
	// Last resort: keyword guess against the free-text status. Fragile, but
	// matches how the booking tool has always behaved on pre-scheme records.
	text := strings.ToLower(genericStatusFields.resolve(r))
	switch {
	case strings.Contains(text, "complete") || strings.Contains(text, "done"):
		return StatusCompleted
	case strings.Contains(text, "assign"):
		return StatusAssigned
	case strings.Contains(text, "decline"):
		return StatusDeclined
	case strings.Contains(text, "arrive"):
		return StatusArrived
	}
	return StatusUnassigned
}

func classifyCategory(r *reservation.Reservation) (Category, string) {
	label := strings.TrimSpace(r.StatusLabel)
	lowerLabel := strings.ToLower(label)
	code := NormalizeKey(r.DetailCode)
	if code == "" {
		code = NormalizeKey(r.Status)
	}

	if _, ok := acceptedDetailCodes[code]; ok {
		return CategoryAccepted, label
	}
	if strings.Contains(lowerLabel, "assigned") {
		return CategoryAccepted, label
	}
	if _, ok := completedDetailCodes[code]; ok {
		return CategoryCompleted, label
	}
	if strings.Contains(lowerLabel, "completed") || strings.Contains(lowerLabel, "done") {
		return CategoryCompleted, label
	}
	return CategoryPending, label
}

func driverSummary(r *reservation.Reservation) DriverSummary {
	return DriverSummary{
		ID:          driverIDFields.resolve(r),
		Name:        driverNameFields.resolve(r),
		Affiliate:   affiliateFields.resolve(r),
		Phone:       driverPhoneFields.resolve(r),
		VehicleType: vehicleTypeFields.resolve(r),
	}
}

func pickupDate(r *reservation.Reservation) string {
	if v := strings.TrimSpace(r.PickupDate); v != "" {
		return v
	}
	if !r.PickupAt.IsZero() {
		return r.PickupAt.Format("2006-01-02")
	}
	return ""
}

func pickupTime(r *reservation.Reservation) string {
	if v := strings.TrimSpace(r.PickupTime); v != "" {
		return v
	}
	if !r.PickupAt.IsZero() {
		return r.PickupAt.Format("15:04")
	}
	return ""
}
