// README: Farm-out handlers: the driver status webhook and the board view.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"relialimo/internal/modules/farmout"
	"relialimo/internal/types"
)

type FarmoutHandler struct {
	farmout *farmout.Service
}

func NewFarmoutHandler(svc *farmout.Service) *FarmoutHandler {
	return &FarmoutHandler{farmout: svc}
}

type statusUpdateReq struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	DriverID      string `json:"driver_id"`
}

// StatusUpdate receives externally reported driver/status events (webhook
// or poll relay) and propagates them. The service never panics; errors map
// to 404/502 and the caller may retry.
func (h *FarmoutHandler) StatusUpdate(c *gin.Context) {
	var req statusUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ReservationID == "" || req.Status == "" {
		writeError(c, http.StatusBadRequest, "missing reservation_id or status")
		return
	}
	err := h.farmout.ApplyStatusUpdate(c.Request.Context(), farmout.StatusUpdateCommand{
		ReservationID: types.ID(req.ReservationID),
		NewStatus:     req.Status,
		DriverID:      types.ID(req.DriverID),
	})
	if err != nil {
		writeFarmoutError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"applied": true})
}

func (h *FarmoutHandler) Board(c *gin.Context) {
	board, err := h.farmout.Board(c.Request.Context())
	if err != nil {
		writeFarmoutError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, board)
}

func (h *FarmoutHandler) Rebuild(c *gin.Context) {
	if err := h.farmout.RebuildSnapshot(c.Request.Context()); err != nil {
		writeFarmoutError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"rebuilt": true})
}
