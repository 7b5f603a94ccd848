package item

import (
	"item-simulator/core/apperr"
	"item-simulator/core/logger"
	"item-simulator/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the item registry.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/:identifier", h.HandleGet)
	group.Patch("/:itemId", h.HandleUpdate)
	group.Delete("/:itemId", h.HandleDelete)
}

// HandleCreate registers a new item definition.
// @Summary Create Item
// @Description Creates an item definition with name, price, stat payload and an optional unique code.
// @Tags item
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Item definition"
// @Success 201 {object} models.Item "Created item"
// @Failure 400 {object} map[string]string "Invalid definition"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 409 {object} map[string]string "Duplicate name or code"
// @Router /items [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	accountID, ok := auth.AccountID(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	it, err := h.service.Create(c.Context(), accountID, req)
	if err != nil {
		l.Warn("Item creation rejected", zap.String("code", apperr.KindOf(err).String()))
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}

// HandleList lists item definitions.
// @Summary List Items
// @Description Returns all item definitions, newest first.
// @Tags item
// @Produce json
// @Success 200 {object} map[string][]Summary "Item list"
// @Router /items [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleGet returns a single item definition.
// @Summary Get Item
// @Description Looks up an item by numeric id, falling back to the unique item code.
// @Tags item
// @Produce json
// @Param identifier path string true "Item ID or code"
// @Success 200 {object} models.Item "Item detail"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /items/{identifier} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	it, err := h.service.Find(c.Context(), c.Params("identifier"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}

// HandleUpdate edits an owned item definition.
// @Summary Update Item
// @Description Edits name, stats or price. Stats and price are frozen while the item is placed with a character.
// @Tags item
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Param request body UpdateRequest true "Fields to update"
// @Success 200 {object} models.Item "Updated item"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 409 {object} map[string]string "Item in use"
// @Router /items/{itemId} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	accountID, ok := auth.AccountID(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil || itemID <= 0 {
		return badParam(c, "itemId")
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	it, err := h.service.Update(c.Context(), accountID, uint(itemID), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}

// HandleDelete removes an owned, unplaced item definition.
// @Summary Delete Item
// @Description Deletes an item definition. Items placed with a character cannot be deleted.
// @Tags item
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not the creator"
// @Failure 409 {object} map[string]string "Item owned or equipped"
// @Router /items/{itemId} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	accountID, ok := auth.AccountID(c)
	if !ok {
		return unauthorized(c)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil || itemID <= 0 {
		return badParam(c, "itemId")
	}

	if err := h.service.Delete(c.Context(), accountID, uint(itemID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "item deleted"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "authentication required",
	})
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
