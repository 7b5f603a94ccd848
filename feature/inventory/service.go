package inventory

import (
	"context"
	"errors"

	"item-simulator/core/apperr"
	charmodels "item-simulator/feature/character/models"
	itemmodels "item-simulator/feature/item/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service executes ownership transitions and read projections.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// OwnedItem is the projection returned by the listing queries.
type OwnedItem struct {
	ItemID uint           `json:"item_id"`
	Code   *int           `json:"item_code,omitempty"`
	Name   string         `json:"name"`
	Price  int            `json:"price"`
	Stat   map[string]int `json:"item_stat"`
}

// ListInventory returns the items held (not equipped) by the character,
// newest first.
func (s *Service) ListInventory(ctx context.Context, characterID uint) ([]OwnedItem, error) {
	inv, err := s.inventoryOf(ctx, characterID)
	if err != nil {
		return nil, err
	}

	var items []itemmodels.Item
	err = s.db.WithContext(ctx).
		Where("inventory_id = ?", inv.ID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list inventory", err)
	}
	return project(items), nil
}

// ListEquipped returns the items currently equipped by the character,
// newest first.
func (s *Service) ListEquipped(ctx context.Context, characterID uint) ([]OwnedItem, error) {
	eq, err := s.equipmentOf(ctx, characterID)
	if err != nil {
		return nil, err
	}

	var items []itemmodels.Item
	err = s.db.WithContext(ctx).
		Where("equipment_id = ?", eq.ID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to list equipped items", err)
	}
	return project(items), nil
}

func (s *Service) inventoryOf(ctx context.Context, characterID uint) (*charmodels.Inventory, error) {
	var inv charmodels.Inventory
	err := s.db.WithContext(ctx).Where("character_id = ?", characterID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "character %d does not exist", characterID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load inventory", err)
	}
	return &inv, nil
}

func (s *Service) equipmentOf(ctx context.Context, characterID uint) (*charmodels.Equipment, error) {
	var eq charmodels.Equipment
	err := s.db.WithContext(ctx).Where("character_id = ?", characterID).First(&eq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "character %d does not exist", characterID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load equipment", err)
	}
	return &eq, nil
}

func project(items []itemmodels.Item) []OwnedItem {
	out := make([]OwnedItem, 0, len(items))
	for _, it := range items {
		out = append(out, OwnedItem{
			ItemID: it.ID,
			Code:   it.Code,
			Name:   it.Name,
			Price:  it.Price,
			Stat:   it.Stat(),
		})
	}
	return out
}
