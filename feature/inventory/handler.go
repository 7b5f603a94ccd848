package inventory

import (
	"context"

	"item-simulator/core/apperr"
	"item-simulator/core/logger"
	"item-simulator/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for ownership transitions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/characters/:characterId")
	group.Post("/items/:itemId/acquire", h.HandleTransition(h.service.Acquire))
	group.Post("/items/:itemId/purchase", h.HandleTransition(h.service.Purchase))
	group.Post("/items/:itemId/sell", h.HandleTransition(h.service.Sell))
	group.Post("/items/:itemId/equip", h.HandleTransition(h.service.Equip))
	group.Post("/items/:itemId/unequip", h.HandleTransition(h.service.Unequip))
	group.Get("/inventory", h.HandleListInventory)
	group.Get("/equipment", h.HandleListEquipped)
}

type transitionFunc func(ctx context.Context, accountID, characterID, itemID uint) (*Result, error)

// HandleTransition adapts one engine transition to an HTTP endpoint.
// @Summary Execute Ownership Transition
// @Description Moves an item between unplaced, inventory and equipped, atomically with its money/stat effects. The concrete transition is selected by the route (acquire, purchase, sell, equip, unequip).
// @Tags inventory
// @Accept json
// @Produce json
// @Param characterId path int true "Character ID"
// @Param itemId path int true "Item ID"
// @Success 200 {object} Result "Post-transition snapshot"
// @Failure 400 {object} map[string]string "Invalid request or insufficient funds"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Character or item not found"
// @Failure 409 {object} map[string]string "Placement conflict"
// @Failure 503 {object} map[string]string "Contention, retry later"
// @Router /characters/{characterId}/items/{itemId}/{transition} [post]
func (h *Handler) HandleTransition(fn transitionFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c)

		accountID, ok := auth.AccountID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		characterID, err := c.ParamsInt("characterId")
		if err != nil || characterID <= 0 {
			return badParam(c, "characterId")
		}
		itemID, err := c.ParamsInt("itemId")
		if err != nil || itemID <= 0 {
			return badParam(c, "itemId")
		}

		result, err := fn(c.Context(), accountID, uint(characterID), uint(itemID))
		if err != nil {
			l.Warn("Transition rejected",
				zap.String("path", c.Path()),
				zap.String("code", apperr.KindOf(err).String()),
			)
			return respondError(c, err)
		}

		return c.JSON(result)
	}
}

// HandleListInventory lists the items held by a character.
// @Summary List Inventory
// @Description Returns the items in a character's inventory, newest first.
// @Tags inventory
// @Produce json
// @Param characterId path int true "Character ID"
// @Success 200 {object} map[string][]OwnedItem "Inventory items"
// @Failure 404 {object} map[string]string "Character not found"
// @Router /characters/{characterId}/inventory [get]
func (h *Handler) HandleListInventory(c *fiber.Ctx) error {
	characterID, err := c.ParamsInt("characterId")
	if err != nil || characterID <= 0 {
		return badParam(c, "characterId")
	}

	items, err := h.service.ListInventory(c.Context(), uint(characterID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleListEquipped lists the items equipped by a character.
// @Summary List Equipped Items
// @Description Returns the items a character currently has equipped, newest first.
// @Tags inventory
// @Produce json
// @Param characterId path int true "Character ID"
// @Success 200 {object} map[string][]OwnedItem "Equipped items"
// @Failure 404 {object} map[string]string "Character not found"
// @Router /characters/{characterId}/equipment [get]
func (h *Handler) HandleListEquipped(c *fiber.Ctx) error {
	characterID, err := c.ParamsInt("characterId")
	if err != nil || characterID <= 0 {
		return badParam(c, "characterId")
	}

	items, err := h.service.ListEquipped(c.Context(), uint(characterID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func badParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid " + name,
	})
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(apperr.Status(err)).JSON(fiber.Map{
		"error": apperr.Message(err),
		"code":  apperr.KindOf(err).String(),
	})
}
