package inventory_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"item-simulator/core/middleware/auth"
	"item-simulator/core/middleware/rayid"
	"item-simulator/feature/inventory"
	itemmodels "item-simulator/feature/item/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "handler-test-secret"

func newApp(f *fixture) *fiber.App {
	app := fiber.New()
	app.Use(rayid.New())
	app.Use(auth.New(auth.Config{Secret: testSecret, DB: f.db, Optional: true}))
	inventory.NewHandler(f.service).RegisterRoutes(app)
	return app
}

func bearer(t *testing.T, accountID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return "Bearer " + signed
}

func TestHandlePurchase(t *testing.T) {
	f := setup(t)
	app := newApp(f)
	it := f.addItem(t, "sword", 300, 0, 5)

	url := fmt.Sprintf("/characters/%d/items/%d/purchase", f.character.ID, it.ID)
	req := httptest.NewRequest("POST", url, nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, f.account.ID))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(rayid.HeaderName))

	var result inventory.Result
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, itemmodels.PlacementInInventory, result.Placement)
	assert.Equal(t, 9700, result.Money)
}

func TestHandleTransitionRequiresAuth(t *testing.T) {
	f := setup(t)
	app := newApp(f)
	it := f.addItem(t, "sword", 300, 0, 5)

	url := fmt.Sprintf("/characters/%d/items/%d/purchase", f.character.ID, it.ID)
	resp, err := app.Test(httptest.NewRequest("POST", url, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandleTransitionErrorBody(t *testing.T) {
	f := setup(t)
	app := newApp(f)
	it := f.addItem(t, "sword", 300, 0, 5)

	// Selling an unplaced item maps to 400 with a machine-readable code.
	url := fmt.Sprintf("/characters/%d/items/%d/sell", f.character.ID, it.ID)
	req := httptest.NewRequest("POST", url, nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, f.account.ID))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload map[string]string
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "not_in_inventory", payload["code"])

	// Unknown character maps to 404.
	url = fmt.Sprintf("/characters/9999/items/%d/purchase", it.ID)
	req = httptest.NewRequest("POST", url, nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, f.account.ID))
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleListings(t *testing.T) {
	f := setup(t)
	app := newApp(f)
	it := f.addItem(t, "sword", 300, 0, 5)

	url := fmt.Sprintf("/characters/%d/items/%d/acquire", f.character.ID, it.ID)
	req := httptest.NewRequest("POST", url, nil)
	req.Header.Set(fiber.HeaderAuthorization, bearer(t, f.account.ID))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Listings are public, no token needed.
	url = fmt.Sprintf("/characters/%d/inventory", f.character.ID)
	resp, err = app.Test(httptest.NewRequest("GET", url, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Items []inventory.OwnedItem `json:"items"`
	}
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Items, 1)
	assert.Equal(t, "sword", payload.Items[0].Name)

	url = fmt.Sprintf("/characters/%d/equipment", f.character.ID)
	resp, err = app.Test(httptest.NewRequest("GET", url, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
