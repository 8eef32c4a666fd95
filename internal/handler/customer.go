package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/service"
)

// CustomerHandler serves /api/clientes.
type CustomerHandler struct {
	Customers *service.CustomerService
}

// NewCustomerHandler panics if svc is nil.
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	if svc == nil {
		panic("nil service passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: svc}
}

// Create handles POST /api/clientes.
func (h *CustomerHandler) Create(c echo.Context) error {
	var in model.Customer
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	out, err := h.Customers.Create(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err, "failed to create customer")
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /api/clientes/:id.  An unknown id is a 404.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "invalid customer id")
	}
	var in model.Customer
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	out, err := h.Customers.Update(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return errorJSON(c, http.StatusNotFound, err.Error())
		}
		return serviceError(c, err, "failed to update customer")
	}
	return c.JSON(http.StatusOK, out)
}

// List handles GET /api/clientes.
func (h *CustomerHandler) List(c echo.Context) error {
	out, err := h.Customers.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "failed to load customers")
	}
	return c.JSON(http.StatusOK, out)
}
