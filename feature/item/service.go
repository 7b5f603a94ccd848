package item

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"item-simulator/core/apperr"
	"item-simulator/core/database"
	"item-simulator/core/utils"
	"item-simulator/feature/item/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles item registry operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new item service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// CreateRequest carries the fields of a new item definition. Stat is the
// loose wire payload ({"health": n, "power": n}); unknown keys are ignored.
type CreateRequest struct {
	Code  *int           `json:"item_code"`
	Name  string         `json:"name"`
	Stat  map[string]any `json:"item_stat"`
	Price int            `json:"price"`
}

// Create registers a new item definition owned by the account.
func (s *Service) Create(ctx context.Context, accountID uint, req CreateRequest) (*models.Item, error) {
	it := models.Item{
		AccountID: accountID,
		Code:      req.Code,
		Name:      strings.TrimSpace(req.Name),
		Price:     req.Price,
		Health:    utils.ToInt(req.Stat["health"]),
		Power:     utils.ToInt(req.Stat["power"]),
	}
	if msg := it.Validate(); msg != "" {
		return nil, apperr.New(apperr.KindInvalid, msg)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Item{}).Where("name = ?", it.Name).Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to check item name", err)
		}
		if count > 0 {
			return apperr.Newf(apperr.KindDuplicateName, "item name %q is taken", it.Name)
		}

		if it.Code != nil {
			if err := tx.Model(&models.Item{}).Where("item_code = ?", *it.Code).Count(&count).Error; err != nil {
				return apperr.Wrap(apperr.KindStorage, "failed to check item code", err)
			}
			if count > 0 {
				return apperr.Newf(apperr.KindDuplicateCode, "item code %d is taken", *it.Code)
			}
		}

		if err := tx.Create(&it).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to create item", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.logger.Info("Item created",
		zap.Uint("item_id", it.ID),
		zap.Uint("account_id", accountID),
		zap.String("name", it.Name),
	)
	return &it, nil
}

// Find fetches a single item by numeric id or, failing that, by item code.
func (s *Service) Find(ctx context.Context, identifier string) (*models.Item, error) {
	var it models.Item

	var id int
	if _, err := fmt.Sscanf(identifier, "%d", &id); err != nil || id <= 0 {
		return nil, apperr.New(apperr.KindInvalid, "invalid item identifier")
	}

	err := s.db.WithContext(ctx).First(&it, id).Error
	if err == nil {
		return &it, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load item", err)
	}

	err = s.db.WithContext(ctx).Where("item_code = ?", id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "item %s does not exist", identifier)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load item", err)
	}
	return &it, nil
}

// Summary is the listing projection of an item definition.
type Summary struct {
	ItemID uint   `json:"item_id"`
	Code   *int   `json:"item_code,omitempty"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
}

// List returns all item definitions, newest first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list items", err)
	}

	out := make([]Summary, 0, len(items))
	for _, it := range items {
		out = append(out, Summary{ItemID: it.ID, Code: it.Code, Name: it.Name, Price: it.Price})
	}
	return out, nil
}

// UpdateRequest carries editable definition fields; nil fields are left
// untouched.
type UpdateRequest struct {
	Name  *string        `json:"name"`
	Stat  map[string]any `json:"item_stat"`
	Price *int           `json:"price"`
}

// Update edits an item definition. Only the creating account may edit.
// Price and stat payload edits are rejected while the item is placed,
// because equipped stat deltas and sell credit depend on them.
func (s *Service) Update(ctx context.Context, accountID, itemID uint, req UpdateRequest) (*models.Item, error) {
	var it models.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockItem(tx, itemID, &it); err != nil {
			return err
		}
		if it.AccountID != accountID {
			return apperr.Newf(apperr.KindNotOwner, "item %d belongs to another account", itemID)
		}

		if it.IsPlaced() && (req.Stat != nil || req.Price != nil) {
			return apperr.Newf(apperr.KindItemInUse, "item %d is placed; stats and price are frozen", itemID)
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperr.New(apperr.KindInvalid, "missing name")
			}
			it.Name = name
		}
		if req.Stat != nil {
			it.Health = utils.ToInt(req.Stat["health"])
			it.Power = utils.ToInt(req.Stat["power"])
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				return apperr.New(apperr.KindInvalid, "price must be positive")
			}
			it.Price = *req.Price
		}

		err := tx.Model(&models.Item{}).
			Where("item_id = ?", it.ID).
			Updates(map[string]any{
				"name":   it.Name,
				"health": it.Health,
				"power":  it.Power,
				"price":  it.Price,
			}).Error
		if err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to update item", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.logger.Info("Item updated", zap.Uint("item_id", itemID))
	return &it, nil
}

// Delete removes an item definition. Placed items cannot be deleted.
func (s *Service) Delete(ctx context.Context, accountID, itemID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := lockItem(tx, itemID, &it); err != nil {
			return err
		}
		if it.AccountID != accountID {
			return apperr.Newf(apperr.KindNotOwner, "item %d belongs to another account", itemID)
		}
		if it.EquipmentID != nil {
			return apperr.Newf(apperr.KindItemEquipped, "item %d is equipped", itemID)
		}
		if it.InventoryID != nil {
			return apperr.Newf(apperr.KindItemOwned, "item %d is in a character's inventory", itemID)
		}

		if err := tx.Delete(&it).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to delete item", err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}

	s.logger.Info("Item deleted", zap.Uint("item_id", itemID))
	return nil
}

func lockItem(tx *gorm.DB, itemID uint, out *models.Item) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(out, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.KindNotFound, "item %d does not exist", itemID)
	}
	if err != nil {
		return err
	}
	return nil
}

func asAppError(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if database.IsLockContention(err) {
		return apperr.Wrap(apperr.KindContention, "conflicting operation in progress, retry", err)
	}
	return apperr.Wrap(apperr.KindStorage, "operation aborted", err)
}
