package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/protecta/crm-pro/internal/application/analytics"
)

// DashboardHandler expone los agregados del dashboard comercial (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Métricas del dashboard (embudo, revenue, top performers)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Invalidar el cache del dashboard del actor
// @Tags         dashboard
// @Security     Bearer
// @Success      204
// @Router       /api/dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	h.uc.Invalidate(c.Context(), GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
