package audit

import (
	"item-simulator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Get("/", h.HandleAudit)
}

// HandleAudit runs all consistency checks.
// @Summary Run Consistency Audit
// @Description Recomputes placements, stats and balances from scratch and reports any divergence from the stored values.
// @Tags audit
// @Produce json
// @Success 200 {object} Report "Audit report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit [get]
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context())
	if err != nil {
		l.Error("Audit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}
