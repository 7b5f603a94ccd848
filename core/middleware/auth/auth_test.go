package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"item-simulator/core/database"
	"item-simulator/core/middleware/auth"
	accountmodels "item-simulator/feature/account/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const secret = "test-secret"

func setup(t *testing.T) (*gorm.DB, accountmodels.Account) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&accountmodels.Account{}))

	account := accountmodels.Account{Username: "tester"}
	assert.NoError(t, db.Create(&account).Error)
	return db, account
}

func newApp(db *gorm.DB, optional bool) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{Secret: secret, DB: db, Optional: optional}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, ok := auth.AccountID(c)
		if !ok {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		return c.JSON(fiber.Map{"account_id": id})
	})
	return app
}

func signToken(t *testing.T, accountID uint, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestValidToken(t *testing.T) {
	db, account := setup(t)
	app := newApp(db, false)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, account.ID, time.Hour))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRejectedTokens(t *testing.T) {
	db, account := setup(t)
	app := newApp(db, false)

	expired := signToken(t, account.ID, -time.Hour)

	wrongSecret := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": account.ID,
	})
	forged, err := wrongSecret.SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	deleted := signToken(t, account.ID+100, time.Hour)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage":        "Bearer not.a.token",
		"expired":        "Bearer " + expired,
		"forged":         "Bearer " + forged,
		"ghost account":  "Bearer " + deleted,
	}
	for name, header := range cases {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		assert.NoError(t, err, name)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestOptionalModePassesThrough(t *testing.T) {
	db, account := setup(t)
	app := newApp(db, true)

	// No token: the request proceeds anonymously.
	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A valid token still resolves the account.
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, account.ID, time.Hour))
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
