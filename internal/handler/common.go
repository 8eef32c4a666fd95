// Package handler holds the HTTP handlers of the /api surface.  Handlers
// bind JSON, call a service and map its errors to status codes; every
// error body is {"error": "..."}.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/service"
)

// parseID reads the :id path parameter.  Zero and non-numeric ids are
// rejected.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter.  present is
// false when the parameter is missing or blank.
func queryDate(c echo.Context, name string) (d model.Date, present bool, err error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return model.Date{}, false, nil
	}
	d, err = model.ParseDate(raw)
	if err != nil {
		return model.Date{}, true, err
	}
	return d, true, nil
}

// requiredRange reads two mandatory date parameters.
func requiredRange(c echo.Context, fromName, toName string) (from, to model.Date, msg string) {
	from, ok, err := queryDate(c, fromName)
	if err != nil {
		return from, to, "invalid " + fromName + " date"
	}
	if !ok {
		return from, to, fromName + " is required"
	}
	to, ok, err = queryDate(c, toName)
	if err != nil {
		return from, to, "invalid " + toName + " date"
	}
	if !ok {
		return from, to, toName + " is required"
	}
	return from, to, ""
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// serviceError maps service errors to responses: unknown records are 404
// when the path names them, validation failures 400, the rest 500.
func serviceError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case service.IsValidation(err):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	c.Logger().Error(err)
	return errorJSON(c, http.StatusInternalServerError, fallback)
}
