// Package auth verifies bearer tokens and resolves the calling account.
package auth

import (
	"errors"
	"strings"

	accountmodels "item-simulator/feature/account/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Config holds the auth middleware configuration.
type Config struct {
	// Secret verifies HS256 token signatures.
	Secret string
	// DB is used to confirm the token's account still exists.
	DB *gorm.DB
	// Optional makes a missing or invalid token pass through without an
	// account id instead of rejecting the request. Read-only routes use
	// this to tailor responses for owners (e.g. showing money).
	Optional bool
}

// AccountID extracts the authenticated account id from the request context.
// The second return value is false when the request is unauthenticated.
func AccountID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("account_id").(uint)
	return id, ok
}

// New creates the token verification middleware.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := resolve(c, cfg)
		if err != nil {
			if cfg.Optional {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		c.Locals("account_id", id)
		return c.Next()
	}
}

func resolve(c *fiber.Ctx, cfg Config) (uint, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return 0, errors.New("missing authorization header")
	}

	tokenType, tokenString, found := strings.Cut(header, " ")
	if !found || tokenType != "Bearer" {
		return 0, errors.New("authorization header is not a Bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.New("token expired")
		}
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	rawID, ok := claims["account_id"].(float64)
	if !ok || rawID <= 0 {
		return 0, errors.New("token has no account id")
	}
	accountID := uint(rawID)

	// The account may have been deleted since the token was issued.
	var account accountmodels.Account
	if err := cfg.DB.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.New("token account does not exist")
		}
		return 0, errors.New("failed to verify account")
	}

	return account.ID, nil
}
