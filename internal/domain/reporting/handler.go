package reporting

import (
	"errors"
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
	g.GET("/reports", h.list)
	g.GET("/reports/run", h.runAll)
	g.GET("/reports/:id", h.run)
	g.GET("/views/monthly-kpis", h.monthlyKPIs)
	g.GET("/views/condition-summary", h.conditionSummary)
}

func (h *Handler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Catalog())
}

func (h *Handler) runAll(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.RunAll(c.Request().Context()))
}

func (h *Handler) run(c echo.Context) error {
	res, err := h.svc.Run(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUnknownQuery) {
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if res.Error != "" {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) monthlyKPIs(c echo.Context) error {
	rows, err := h.svc.MonthlyKPIs(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) conditionSummary(c echo.Context) error {
	rows, err := h.svc.ConditionSummaries(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}
