package assets

import (
	"item-simulator/core/apperr"
	"item-simulator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for client assets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the asset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/assets/*", h.HandleGetAsset)
}

// HandleGetAsset streams one client asset file.
// @Summary Get Client Asset
// @Description Streams a static client file (scripts, pages) from the asset bucket.
// @Tags assets
// @Produce octet-stream
// @Param path path string true "Asset path"
// @Success 200 {file} binary "Asset content"
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{path} [get]
func (h *Handler) HandleGetAsset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	asset, err := h.service.Get(c.Context(), c.Params("*"))
	if err != nil {
		if apperr.KindOf(err) != apperr.KindNotFound {
			l.Error("Asset fetch failed", zap.Error(err))
		}
		return c.Status(apperr.Status(err)).JSON(fiber.Map{
			"error": apperr.Message(err),
		})
	}

	if asset.ContentType != "" {
		c.Set(fiber.HeaderContentType, asset.ContentType)
	}
	return c.SendStream(asset.Body, int(asset.Size))
}
