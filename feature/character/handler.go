package character

import (
	"item-simulator/core/apperr"
	"item-simulator/core/logger"
	"item-simulator/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for characters.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the character routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/characters")
	group.Post("/", h.HandleCreate)
	group.Delete("/:characterId", h.HandleDelete)
	group.Get("/:characterId", h.HandleGet)
	group.Put("/:characterId/money", h.HandleGrantMoney)
}

type createRequest struct {
	Name string `json:"name"`
}

// HandleCreate creates a new character for the authenticated account.
// @Summary Create Character
// @Description Creates a character with starting stats and money, plus its inventory and equipment containers.
// @Tags character
// @Accept json
// @Produce json
// @Param request body createRequest true "Character name"
// @Success 201 {object} models.Character "Created character"
// @Failure 400 {object} map[string]string "Invalid name"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 409 {object} map[string]string "Name taken"
// @Router /characters [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	accountID, ok := auth.AccountID(c)
	if !ok {
		return unauthorized(c)
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ch, err := h.service.Create(c.Context(), accountID, req.Name)
	if err != nil {
		l.Warn("Character creation rejected", zap.String("code", apperr.KindOf(err).String()))
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// HandleDelete deletes an owned character.
// @Summary Delete Character
// @Description Deletes a character owned by the authenticated account, releasing its items back to the shop pool.
// @Tags character
// @Produce json
// @Param characterId path int true "Character ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Character not found"
// @Router /characters/{characterId} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	accountID, ok := auth.AccountID(c)
	if !ok {
		return unauthorized(c)
	}
	characterID, err := c.ParamsInt("characterId")
	if err != nil || characterID <= 0 {
		return badParam(c, "characterId")
	}

	if err := h.service.Delete(c.Context(), accountID, uint(characterID)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "character deleted"})
}

// HandleGet returns a character's detail.
// @Summary Get Character
// @Description Returns name and stats. Money is included only when the caller owns the character.
// @Tags character
// @Produce json
// @Param characterId path int true "Character ID"
// @Success 200 {object} models.Detail "Character detail"
// @Failure 404 {object} map[string]string "Character not found"
// @Router /characters/{characterId} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	characterID, err := c.ParamsInt("characterId")
	if err != nil || characterID <= 0 {
		return badParam(c, "characterId")
	}

	// Anonymous callers are allowed; they just never see money.
	requesterID, _ := auth.AccountID(c)

	detail, err := h.service.Get(c.Context(), requesterID, uint(characterID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// HandleGrantMoney credits the fixed grant amount to an owned character.
// @Summary Grant Money
// @Description Credits the fixed grant amount to the character's balance.
// @Tags character
// @Produce json
// @Param characterId path int true "Character ID"
// @Success 200 {object} map[string]int "New balance"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not the owner"
// @Failure 404 {object} map[string]string "Character not found"
// @Router /characters/{characterId}/money [put]
func (h *Handler) HandleGrantMoney(c *fiber.Ctx) error {
	accountID, ok := auth.AccountID(c)
	if !ok {
		return unauthorized(c)
	}
	characterID, err := c.ParamsInt("characterId")
	if err != nil || characterID <= 0 {
		return badParam(c, "characterId")
	}

	balance, err := h.service.GrantMoney(c.Context(), accountID, uint(characterID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"money": balance})
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
