package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"item-simulator/core/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwrapsChains(t *testing.T) {
	base := apperr.New(apperr.KindNotFound, "character 7 does not exist")
	wrapped := fmt.Errorf("handler: %w", base)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(wrapped))
	assert.Equal(t, "character 7 does not exist", apperr.Message(wrapped))

	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("plain")))
	assert.Equal(t, "internal server error", apperr.Message(errors.New("plain")))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Wrap(apperr.KindStorage, "failed to load item", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage_error")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind   apperr.Kind
		status int
	}{
		{apperr.KindNotFound, fiber.StatusNotFound},
		{apperr.KindNotOwner, fiber.StatusForbidden},
		{apperr.KindInvalid, fiber.StatusBadRequest},
		{apperr.KindInsufficientFunds, fiber.StatusBadRequest},
		{apperr.KindNotInInventory, fiber.StatusBadRequest},
		{apperr.KindNotEquipped, fiber.StatusBadRequest},
		{apperr.KindAlreadyOwned, fiber.StatusConflict},
		{apperr.KindAlreadyEquipped, fiber.StatusConflict},
		{apperr.KindItemEquipped, fiber.StatusConflict},
		{apperr.KindDuplicateCode, fiber.StatusConflict},
		{apperr.KindDuplicateName, fiber.StatusConflict},
		{apperr.KindItemInUse, fiber.StatusConflict},
		{apperr.KindItemOwned, fiber.StatusConflict},
		{apperr.KindContention, fiber.StatusServiceUnavailable},
		{apperr.KindStorage, fiber.StatusInternalServerError},
		{apperr.KindUnknown, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, apperr.Status(apperr.New(tc.kind, "x")), tc.kind.String())
	}
	assert.Equal(t, fiber.StatusInternalServerError, apperr.Status(errors.New("plain")))
}

func TestKindCodes(t *testing.T) {
	assert.Equal(t, "insufficient_funds", apperr.KindInsufficientFunds.String())
	assert.Equal(t, "not_equipped_by_character", apperr.KindNotEquipped.String())
	assert.Equal(t, "unknown", apperr.KindUnknown.String())
}
