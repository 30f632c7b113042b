// README: Canonical farm-out status and dispatch mode vocabulary, with the
// alias tables that fold three generations of naming schemes into it.
package farmout

import "relialimo/internal/modules/driver"

type Status string

const (
	StatusUnassigned        Status = "unassigned"
	StatusOffered           Status = "offered"
	StatusPendingAcceptance Status = "pending_acceptance"
	StatusAssigned          Status = "assigned"
	StatusReassigned        Status = "reassigned"
	StatusConfirmed         Status = "confirmed"
	StatusDeclined          Status = "declined"
	StatusRejected          Status = "rejected"
	StatusEnroute           Status = "enroute"
	StatusArrived           Status = "arrived"
	StatusPassengerOnboard  Status = "passenger_onboard"
	StatusDropped           Status = "dropped"
	StatusCompleted         Status = "completed"
	StatusBilled            Status = "billed"
	StatusClosed            Status = "closed"
	StatusCancelled         Status = "cancelled"
	StatusNoShow            Status = "no_show"
	StatusLateCancel        Status = "late_cancel"
	StatusOnHold            Status = "on_hold"
	StatusRecovered         Status = "recovered"

	// StatusInHouse marks a trip that is not in the farm-out workflow at all.
	// Deliberately absent from the recognized lifecycle set.
	StatusInHouse Status = "in_house"
)

const (
	ModeManual    = "manual"
	ModeAutomatic = "automatic"
)

// statusAliases maps normalized legacy keys to canonical statuses. Keys the
// table does not know pass through unchanged, so already-canonical and
// genuinely unknown values survive round trips.
var statusAliases = map[string]Status{
	"farm_out_unassigned": StatusUnassigned,
	"farm_out_offered":    StatusOffered,
	"farm_out_assigned":   StatusAssigned,
	"farm_out_declined":   StatusDeclined,
	"farm_out_enroute":    StatusEnroute,
	"farm_out_arrived":    StatusArrived,
	"farm_out_completed":  StatusCompleted,
	"farm_out_cancelled":  StatusCancelled,
	"offer_sent":          StatusOffered,
	"pending_accept":      StatusPendingAcceptance,
	"en_route":            StatusEnroute,
	"on_route":            StatusEnroute,
	"on_the_way":          StatusEnroute,
	"on_location":         StatusArrived,
	"on_site":             StatusArrived,
	"pob":                 StatusPassengerOnboard,
	"passenger_on_board":  StatusPassengerOnboard,
	"pax_onboard":         StatusPassengerOnboard,
	"done":                StatusCompleted,
	"complete":            StatusCompleted,
	"finished":            StatusCompleted,
	"canceled":            StatusCancelled,
	"cxl":                 StatusCancelled,
	"noshow":              StatusNoShow,
	"inhouse":             StatusInHouse,
}

// recognizedStatuses is the farm-out lifecycle vocabulary. A raw value found
// on a record is trusted as a farm-out status only if it lands in this set.
var recognizedStatuses = map[Status]struct{}{
	StatusUnassigned:        {},
	StatusOffered:           {},
	StatusPendingAcceptance: {},
	StatusAssigned:          {},
	StatusReassigned:        {},
	StatusConfirmed:         {},
	StatusDeclined:          {},
	StatusRejected:          {},
	StatusEnroute:           {},
	StatusArrived:           {},
	StatusPassengerOnboard:  {},
	StatusDropped:           {},
	StatusCompleted:         {},
	StatusBilled:            {},
	StatusClosed:            {},
	StatusCancelled:         {},
	StatusNoShow:            {},
	StatusLateCancel:        {},
	StatusOnHold:            {},
	StatusRecovered:         {},
}

// driverStatusFor derives the driver availability state pushed alongside a
// reservation status transition. Statuses outside this table leave the
// driver record alone.
var driverStatusFor = map[Status]driver.Status{
	StatusEnroute:          driver.StatusEnroute,
	StatusArrived:          driver.StatusArrived,
	StatusPassengerOnboard: driver.StatusPassengerOnboard,
	StatusCompleted:        driver.StatusAvailable,
}

// CanonicalStatus folds a raw status string into the canonical vocabulary.
// Empty input yields "". Unknown keys pass through normalized but unmapped.
func CanonicalStatus(raw string) Status {
	key := NormalizeKey(raw)
	if key == "" {
		return ""
	}
	if s, ok := statusAliases[key]; ok {
		return s
	}
	return Status(key)
}

// CanonicalMode folds a raw dispatch-mode string into "manual"/"automatic".
// Empty input defaults to manual; unknown modes pass through rather than
// erroring, which is a leniency policy the booking tool has always had.
func CanonicalMode(raw string) string {
	key := NormalizeKey(raw)
	switch key {
	case "":
		return ModeManual
	case "auto", "auto_dispatch", "automatic_dispatch", "autodispatch":
		return ModeAutomatic
	}
	return key
}

// IsRecognizedStatus reports whether raw canonicalizes into the farm-out
// lifecycle vocabulary.
func IsRecognizedStatus(raw string) bool {
	_, ok := recognizedStatuses[CanonicalStatus(raw)]
	return ok
}
