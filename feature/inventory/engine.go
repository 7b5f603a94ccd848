package inventory

import (
	"context"
	"errors"

	"item-simulator/core/apperr"
	"item-simulator/core/database"
	charmodels "item-simulator/feature/character/models"
	itemmodels "item-simulator/feature/item/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result is the post-transition snapshot returned to the caller.
type Result struct {
	CharacterID uint                 `json:"character_id"`
	ItemID      uint                 `json:"item_id"`
	Placement   itemmodels.Placement `json:"placement"`
	Money       int                  `json:"money"`
	Health      int                  `json:"health"`
	Power       int                  `json:"power"`
}

// txState is the locked row set a transition validates and mutates.
type txState struct {
	character *charmodels.Character
	inventory *charmodels.Inventory
	equipment *charmodels.Equipment
	item      *itemmodels.Item
}

// Acquire moves an unplaced item into the character's inventory without
// payment. Any existing placement, including the requester's own, is a
// conflict.
func (s *Service) Acquire(ctx context.Context, accountID, characterID, itemID uint) (*Result, error) {
	return s.transition(ctx, "acquire", accountID, characterID, itemID, func(st *txState) error {
		if st.item.IsPlaced() {
			return apperr.Newf(apperr.KindAlreadyOwned, "item %d is already owned", itemID)
		}
		st.item.InventoryID = &st.inventory.ID
		return nil
	})
}

// Purchase moves an unplaced item into the character's inventory and debits
// the item price from the character's balance.
func (s *Service) Purchase(ctx context.Context, accountID, characterID, itemID uint) (*Result, error) {
	return s.transition(ctx, "purchase", accountID, characterID, itemID, func(st *txState) error {
		if st.item.IsPlaced() {
			return apperr.Newf(apperr.KindAlreadyOwned, "item %d is already owned", itemID)
		}
		if st.character.Money < st.item.Price {
			return apperr.Newf(apperr.KindInsufficientFunds,
				"balance %d is less than price %d", st.character.Money, st.item.Price)
		}
		st.character.Money -= st.item.Price
		st.item.InventoryID = &st.inventory.ID
		return nil
	})
}

// Sell moves an item from the character's inventory back to the shop pool
// and credits two thirds of its price, floored.
func (s *Service) Sell(ctx context.Context, accountID, characterID, itemID uint) (*Result, error) {
	return s.transition(ctx, "sell", accountID, characterID, itemID, func(st *txState) error {
		if st.item.EquipmentID != nil {
			return apperr.Newf(apperr.KindItemEquipped, "item %d is equipped and must be unequipped first", itemID)
		}
		if st.item.InventoryID == nil {
			return apperr.Newf(apperr.KindNotInInventory, "item %d is not in any inventory", itemID)
		}
		if *st.item.InventoryID != st.inventory.ID {
			return apperr.Newf(apperr.KindNotOwner, "item %d belongs to another character", itemID)
		}
		st.character.Money += st.item.SellValue()
		st.item.InventoryID = nil
		return nil
	})
}

// Equip moves an item from the character's inventory into their equipment
// and adds the item's stat payload to the character.
func (s *Service) Equip(ctx context.Context, accountID, characterID, itemID uint) (*Result, error) {
	return s.transition(ctx, "equip", accountID, characterID, itemID, func(st *txState) error {
		if st.item.EquipmentID != nil {
			if *st.item.EquipmentID == st.equipment.ID {
				return apperr.Newf(apperr.KindAlreadyEquipped, "item %d is already equipped", itemID)
			}
			return apperr.Newf(apperr.KindAlreadyOwned, "item %d is equipped by another character", itemID)
		}
		if st.item.InventoryID == nil {
			return apperr.Newf(apperr.KindNotInInventory, "item %d is not in any inventory", itemID)
		}
		if *st.item.InventoryID != st.inventory.ID {
			return apperr.Newf(apperr.KindNotOwner, "item %d belongs to another character", itemID)
		}
		st.item.InventoryID = nil
		st.item.EquipmentID = &st.equipment.ID
		st.character.Health += st.item.Health
		st.character.Power += st.item.Power
		return nil
	})
}

// Unequip moves an equipped item back into the character's inventory and
// subtracts the same stat payload that Equip added.
func (s *Service) Unequip(ctx context.Context, accountID, characterID, itemID uint) (*Result, error) {
	return s.transition(ctx, "unequip", accountID, characterID, itemID, func(st *txState) error {
		if st.item.EquipmentID == nil || *st.item.EquipmentID != st.equipment.ID {
			return apperr.Newf(apperr.KindNotEquipped, "item %d is not equipped by this character", itemID)
		}
		st.item.EquipmentID = nil
		st.item.InventoryID = &st.inventory.ID
		st.character.Health -= st.item.Health
		st.character.Power -= st.item.Power
		return nil
	})
}

// transition runs one atomic ownership transition: lock the character row,
// then the item row, validate and mutate via apply, persist, commit.
// The lock order (character before item) is fixed across all transitions.
func (s *Service) transition(ctx context.Context, name string, accountID, characterID, itemID uint, apply func(*txState) error) (*Result, error) {
	var result *Result

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := lockState(tx, accountID, characterID, itemID)
		if err != nil {
			return err
		}

		if err := apply(st); err != nil {
			return err
		}

		// Placement columns are written explicitly so clearing a reference
		// persists NULL rather than being skipped as a zero value.
		err = tx.Model(&itemmodels.Item{}).
			Where("item_id = ?", st.item.ID).
			Updates(map[string]any{
				"inventory_id": st.item.InventoryID,
				"equipment_id": st.item.EquipmentID,
			}).Error
		if err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to update item placement", err)
		}

		err = tx.Model(&charmodels.Character{}).
			Where("character_id = ?", st.character.ID).
			Updates(map[string]any{
				"money":  st.character.Money,
				"health": st.character.Health,
				"power":  st.character.Power,
			}).Error
		if err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to update character ledgers", err)
		}

		result = &Result{
			CharacterID: st.character.ID,
			ItemID:      st.item.ID,
			Placement:   st.item.Placement(),
			Money:       st.character.Money,
			Health:      st.character.Health,
			Power:       st.character.Power,
		}
		return nil
	})
	if err != nil {
		return nil, s.classify(name, characterID, itemID, err)
	}

	s.logger.Info("Transition committed",
		zap.String("transition", name),
		zap.Uint("character_id", characterID),
		zap.Uint("item_id", itemID),
	)
	return result, nil
}

// lockState loads the rows a transition touches, character first then item,
// each under SELECT ... FOR UPDATE. The containers are immutable rows and
// are read without locks.
func lockState(tx *gorm.DB, accountID, characterID, itemID uint) (*txState, error) {
	var ch charmodels.Character
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ch, characterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "character %d does not exist", characterID)
	}
	if err != nil {
		return nil, err
	}
	if ch.AccountID != accountID {
		return nil, apperr.Newf(apperr.KindNotOwner, "character %d belongs to another account", characterID)
	}

	var inv charmodels.Inventory
	if err := tx.Where("character_id = ?", ch.ID).First(&inv).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load inventory container", err)
	}
	var eq charmodels.Equipment
	if err := tx.Where("character_id = ?", ch.ID).First(&eq).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load equipment container", err)
	}

	var item itemmodels.Item
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "item %d does not exist", itemID)
	}
	if err != nil {
		return nil, err
	}

	return &txState{character: &ch, inventory: &inv, equipment: &eq, item: &item}, nil
}

// classify maps transaction failures onto the error taxonomy. Typed errors
// pass through; lock waits become retryable contention; everything else is a
// storage failure (the transaction has already rolled back).
func (s *Service) classify(name string, characterID, itemID uint, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if database.IsLockContention(err) {
		s.logger.Warn("Transition lost a lock race",
			zap.String("transition", name),
			zap.Uint("character_id", characterID),
			zap.Uint("item_id", itemID),
		)
		return apperr.Wrap(apperr.KindContention, "conflicting operation in progress, retry", err)
	}
	s.logger.Error("Transition failed",
		zap.String("transition", name),
		zap.Uint("character_id", characterID),
		zap.Uint("item_id", itemID),
		zap.Error(err),
	)
	return apperr.Wrap(apperr.KindStorage, "transition aborted", err)
}
