// README: HTTP router registration.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"relialimo/internal/http/handlers"
	"relialimo/internal/http/middleware"
	"relialimo/internal/modules/driver"
	"relialimo/internal/modules/farmout"
	"relialimo/internal/modules/reservation"
)

type ServerDeps struct {
	Reservations *reservation.Service
	Drivers      *driver.Service
	Farmout      *farmout.Service
	Logger       *zap.SugaredLogger
}

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Logger), middleware.Recovery(deps.Logger))

	reservationHandler := handlers.NewReservationHandler(deps.Reservations)
	r.POST("/api/reservations", reservationHandler.Create)
	r.GET("/api/reservations", reservationHandler.List)
	r.GET("/api/reservations/:id", reservationHandler.Get)
	r.PUT("/api/reservations/:id", reservationHandler.Update)

	farmoutHandler := handlers.NewFarmoutHandler(deps.Farmout)
	r.POST("/api/farmout/status", farmoutHandler.StatusUpdate)
	r.GET("/api/farmout/board", farmoutHandler.Board)
	r.POST("/api/farmout/snapshot/rebuild", farmoutHandler.Rebuild)

	driverHandler := handlers.NewDriverHandler(deps.Drivers)
	r.GET("/api/drivers", driverHandler.List)
	r.GET("/api/drivers/:id", driverHandler.Get)
	r.POST("/api/drivers/:id/status", driverHandler.SetStatus)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(nethttp.StatusOK, "OK")
	})

	return r
}
