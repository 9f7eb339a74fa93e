package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

type activityResponse struct {
	Activity []*domain.AuditRecord `json:"activity"`
}

// StatsHandler serves the platform statistics and activity endpoints. Role
// gating happens in the router.
type StatsHandler struct {
	stats ports.StatsService
	audit ports.AuditService
}

func NewStatsHandler(stats ports.StatsService, audit ports.AuditService) *StatsHandler {
	return &StatsHandler{stats: stats, audit: audit}
}

// Totals handles GET /stats — moderator or admin.
//
// @Summary      Platform totals
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.StatsTotals
// @Failure      403  {object}  errorResponse
// @Router       /stats [get]
func (h *StatsHandler) Totals(c echo.Context) error {
	totals, err := h.stats.Totals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totals)
}

// Detailed handles GET /stats/detailed — admin only.
//
// @Summary      Detailed platform stats
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DetailedStats
// @Failure      403  {object}  errorResponse
// @Router       /stats/detailed [get]
func (h *StatsHandler) Detailed(c echo.Context) error {
	detailed, err := h.stats.Detailed(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detailed)
}

// Activity handles GET /stats/activity — moderator or admin. Returns the most
// recent audit records, newest first.
//
// @Summary      Recent activity feed
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max records (default 50)"
// @Success      200    {object}  activityResponse
// @Failure      403    {object}  errorResponse
// @Router       /stats/activity [get]
func (h *StatsHandler) Activity(c echo.Context) error {
	records, err := h.audit.Recent(c.Request().Context(), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityResponse{Activity: records})
}
