package export

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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/export/csv", h.exportCSV)
}

func (h *Handler) exportCSV(c echo.Context) error {
	rows, err := h.svc.Rows(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="admissions_export.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return WriteCSV(c.Response(), rows)
}
