package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/service"
)

// KartTestMessage is the fixed body of GET /api/karts/test.
const KartTestMessage = "El endpoint de karts está funcionando correctamente."

// KartHandler serves /api/karts.
type KartHandler struct {
	Karts *service.KartService
}

func NewKartHandler(svc *service.KartService) *KartHandler {
	if svc == nil {
		panic("nil service passed to NewKartHandler")
	}
	return &KartHandler{Karts: svc}
}

func (h *KartHandler) Create(c echo.Context) error {
	var in model.Kart
	if err := c.Bind(&in); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}
	out, err := h.Karts.Create(c.Request().Context(), in)
	if err != nil {
		return serviceError(c, err, "failed to create kart")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KartHandler) List(c echo.Context) error {
	out, err := h.Karts.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "failed to load karts")
	}
	return c.JSON(http.StatusOK, out)
}

// Test is a liveness probe scoped to the kart endpoints.
func (h *KartHandler) Test(c echo.Context) error {
	return c.String(http.StatusOK, KartTestMessage)
}
