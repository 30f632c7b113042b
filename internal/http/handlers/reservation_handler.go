// README: Reservation handlers backing the booking form.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"relialimo/internal/modules/reservation"
	"relialimo/internal/types"
)

type ReservationHandler struct {
	reservations *reservation.Service
}

func NewReservationHandler(svc *reservation.Service) *ReservationHandler {
	return &ReservationHandler{reservations: svc}
}

type createReservationReq struct {
	PassengerName string `json:"passenger_name"`
	PickupAddress string `json:"pickup_address"`
	PickupAt      string `json:"pickup_at"`
	FarmOption    string `json:"farm_option"`
	DispatchMode  string `json:"dispatch_mode"`
	VehicleType   string `json:"vehicle_type"`
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req createReservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PassengerName == "" {
		writeError(c, http.StatusBadRequest, "missing passenger_name")
		return
	}
	var pickupAt time.Time
	if req.PickupAt != "" {
		t, err := time.Parse(time.RFC3339, req.PickupAt)
		if err != nil {
			writeError(c, http.StatusBadRequest, "pickup_at must be RFC 3339")
			return
		}
		pickupAt = t
	}
	r, err := h.reservations.Create(c.Request.Context(), reservation.CreateCommand{
		PassengerName: req.PassengerName,
		PickupAddress: req.PickupAddress,
		PickupAt:      pickupAt,
		FarmOption:    req.FarmOption,
		DispatchMode:  req.DispatchMode,
		VehicleType:   req.VehicleType,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing reservation id")
		return
	}
	r, err := h.reservations.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}

func (h *ReservationHandler) List(c *gin.Context) {
	all, err := h.reservations.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, all)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing reservation id")
		return
	}
	var r reservation.Reservation
	if err := c.ShouldBindJSON(&r); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r.ID = types.ID(id)
	if err := h.reservations.Save(c.Request.Context(), &r); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, r)
}
