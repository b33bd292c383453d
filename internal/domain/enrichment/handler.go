package enrichment

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/normalize", h.Normalize)
	api.POST("/enrich", h.Enrich)
}

func (h *Handler) Normalize(c echo.Context) error {
	n, err := h.svc.NormalizeNames(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int64{"names_normalized": n})
}

// Enrich runs the whole stage so the table is always left fully derived,
// whether or not normalization was called on its own first.
func (h *Handler) Enrich(c echo.Context) error {
	res, err := h.svc.Run(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}
