// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/farmout"
	"relialimo/internal/modules/reservation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeFarmoutError maps propagation error kinds; a store failure is the
// backing store's fault, not the caller's.
func writeFarmoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, farmout.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, farmout.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, farmout.ErrStoreFailure):
		writeError(c, http.StatusBadGateway, "store failure")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrBadRequest),
		errors.Is(err, farmout.ErrBadRequest),
		errors.Is(err, driver.ErrBadStatus):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, farmout.ErrNotFound),
		errors.Is(err, driver.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
