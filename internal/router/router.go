// Package router registers the HTTP routes of the service.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/karting-reservation/internal/handler"
)

// Handlers groups the handlers mounted under /api.
type Handlers struct {
	Customers    *handler.CustomerHandler
	Karts        *handler.KartHandler
	Reservations *handler.ReservationHandler
}

// RegisterRoutes registers routes outside /api.  Currently it exposes only
// a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the customer, kart and reservation endpoints under
// /api.  mw is applied to the whole group, typically rate limiting and
// the response cache.
func RegisterAPI(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	api := e.Group("/api", mw...)

	// ---- Customers ----
	api.POST("/clientes", h.Customers.Create)
	api.PUT("/clientes/:id", h.Customers.Update)
	api.GET("/clientes", h.Customers.List)

	// ---- Karts ----
	api.POST("/karts", h.Karts.Create)
	api.GET("/karts", h.Karts.List)
	api.GET("/karts/test", h.Karts.Test)

	// ---- Reservations ----
	api.GET("/reservas", h.Reservations.List)
	api.POST("/reservas", h.Reservations.Create)
	// Static segments take precedence over :id in echo's router.
	api.GET("/reservas/rack-semanal", h.Reservations.WeeklyRack)
	api.GET("/reservas/reporte-ingresos-vueltas", h.Reservations.RevenueByLaps)
	api.GET("/reservas/reporte-ingresos-personas", h.Reservations.RevenueByPersons)
	api.GET("/reservas/:id", h.Reservations.Get)
	api.POST("/reservas/:id/enviar-comprobante", h.Reservations.SendReceipt)
}
