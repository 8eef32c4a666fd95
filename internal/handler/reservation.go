package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/service"
)

// ReservationHandler serves /api/reservas: creation, listing, the weekly
// rack, receipts and revenue reports.
type ReservationHandler struct {
	Reservations *service.ReservationService
	Receipts     *service.ReceiptService
}

// NewReservationHandler panics if a service is nil.
func NewReservationHandler(reservations *service.ReservationService, receipts *service.ReceiptService) *ReservationHandler {
	if reservations == nil || receipts == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Receipts: receipts}
}

// List handles GET /api/reservas.
func (h *ReservationHandler) List(c echo.Context) error {
	out, err := h.Reservations.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "failed to load reservations")
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/reservas/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid reservation id")
	}
	out, err := h.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to load reservation")
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/reservas.  The start time is only required
// here; the engine itself accepts reservations without one.
func (h *ReservationHandler) Create(c echo.Context) error {
	var in model.Reservation
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	if in.StartTime == nil {
		return errorJSON(c, http.StatusBadRequest, "reservation start time is required")
	}
	out, err := h.Reservations.Create(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err, "failed to create reservation")
	}
	return c.JSON(http.StatusOK, out)
}

// WeeklyRack handles GET /api/reservas/rack-semanal.  With both
// fechaInicio and fechaFin it only considers reservations in that range;
// otherwise every reservation is placed.
func (h *ReservationHandler) WeeklyRack(c echo.Context) error {
	from, hasFrom, err := queryDate(c, "fechaInicio")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid fechaInicio date")
	}
	to, hasTo, err := queryDate(c, "fechaFin")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid fechaFin date")
	}

	ctx := c.Request().Context()
	var rack service.Rack
	if hasFrom && hasTo {
		rack, err = h.Reservations.WeeklyRackBetween(ctx, from, to)
	} else {
		rack, err = h.Reservations.WeeklyRack(ctx)
	}
	if err != nil {
		return serviceError(c, err, "failed to build rack")
	}
	return c.JSON(http.StatusOK, rack)
}

// SendReceipt handles POST /api/reservas/:id/enviar-comprobante and
// returns the addresses the receipt was mailed to.
func (h *ReservationHandler) SendReceipt(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid reservation id")
	}
	sent, err := h.Receipts.Send(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return errorJSON(c, http.StatusNotFound, "Reserva no encontrada")
		}
		c.Logger().Error(err)
		return errorJSON(c, http.StatusInternalServerError, "Error al enviar el comprobante: "+err.Error())
	}
	return c.JSON(http.StatusOK, sent)
}

// RevenueByLaps handles GET /api/reservas/reporte-ingresos-vueltas.
func (h *ReservationHandler) RevenueByLaps(c echo.Context) error {
	from, to, msg := requiredRange(c, "inicio", "fin")
	if msg != "" {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	out, err := h.Reservations.RevenueByLaps(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, err, "failed to build report")
	}
	return c.JSON(http.StatusOK, out)
}

// RevenueByPersons handles GET /api/reservas/reporte-ingresos-personas.
func (h *ReservationHandler) RevenueByPersons(c echo.Context) error {
	from, to, msg := requiredRange(c, "inicio", "fin")
	if msg != "" {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	out, err := h.Reservations.RevenueByPersons(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, err, "failed to build report")
	}
	return c.JSON(http.StatusOK, out)
}
