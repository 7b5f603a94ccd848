package character

import (
	"context"
	"errors"
	"strings"

	"item-simulator/core/apperr"
	"item-simulator/core/database"
	"item-simulator/feature/character/models"
	itemmodels "item-simulator/feature/item/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles character lifecycle operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new character service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Create creates a character with starting attributes plus its inventory and
// equipment containers, all in one transaction. Names are globally unique.
func (s *Service) Create(ctx context.Context, accountID uint, name string) (*models.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.KindInvalid, "missing character name")
	}

	ch := models.NewCharacter(accountID, name)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Character{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to check character name", err)
		}
		if count > 0 {
			return apperr.Newf(apperr.KindDuplicateName, "character name %q is taken", name)
		}

		if err := tx.Create(&ch).Error; err != nil {
			// The unique index is the real guard; the pre-check only gives a
			// nicer message for the common case.
			return apperr.Wrap(apperr.KindStorage, "failed to create character", err)
		}
		if err := tx.Create(&models.Inventory{CharacterID: ch.ID}).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to create inventory container", err)
		}
		if err := tx.Create(&models.Equipment{CharacterID: ch.ID}).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to create equipment container", err)
		}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.logger.Info("Character created",
		zap.Uint("character_id", ch.ID),
		zap.Uint("account_id", accountID),
		zap.String("name", name),
	)
	return &ch, nil
}

// Delete removes an owned character and its containers. Items still placed
// with the character are released back to the unplaced pool first, keeping
// the placement invariant intact.
func (s *Service) Delete(ctx context.Context, accountID, characterID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ch, err := lockOwned(tx, accountID, characterID)
		if err != nil {
			return err
		}

		var inv models.Inventory
		if err := tx.Where("character_id = ?", ch.ID).First(&inv).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to load inventory container", err)
		}
		var eq models.Equipment
		if err := tx.Where("character_id = ?", ch.ID).First(&eq).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to load equipment container", err)
		}

		err = tx.Model(&itemmodels.Item{}).
			Where("inventory_id = ? OR equipment_id = ?", inv.ID, eq.ID).
			Updates(map[string]any{"inventory_id": nil, "equipment_id": nil}).Error
		if err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to release items", err)
		}

		if err := tx.Delete(&inv).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to delete inventory container", err)
		}
		if err := tx.Delete(&eq).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to delete equipment container", err)
		}
		if err := tx.Delete(ch).Error; err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to delete character", err)
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}

	s.logger.Info("Character deleted",
		zap.Uint("character_id", characterID),
		zap.Uint("account_id", accountID),
	)
	return nil
}

// Get returns the character detail. Money is only populated when
// requesterID owns the character; pass 0 for anonymous callers.
func (s *Service) Get(ctx context.Context, requesterID, characterID uint) (*models.Detail, error) {
	var ch models.Character
	err := s.db.WithContext(ctx).First(&ch, characterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "character %d does not exist", characterID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, "failed to load character", err)
	}

	detail := &models.Detail{
		CharacterID: ch.ID,
		Name:        ch.Name,
		Health:      ch.Health,
		Power:       ch.Power,
	}
	if requesterID != 0 && requesterID == ch.AccountID {
		money := ch.Money
		detail.Money = &money
	}
	return detail, nil
}

// GrantMoney credits the fixed grant amount to an owned character. The
// credit runs under the same row lock discipline as the transition engine
// so it cannot interleave with a purchase or sale.
func (s *Service) GrantMoney(ctx context.Context, accountID, characterID uint) (int, error) {
	var balance int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ch, err := lockOwned(tx, accountID, characterID)
		if err != nil {
			return err
		}

		balance = ch.Money + models.GrantAmount
		err = tx.Model(&models.Character{}).
			Where("character_id = ?", ch.ID).
			Update("money", balance).Error
		if err != nil {
			return apperr.Wrap(apperr.KindStorage, "failed to credit money", err)
		}
		return nil
	})
	if err != nil {
		return 0, asAppError(err)
	}

	s.logger.Info("Money granted",
		zap.Uint("character_id", characterID),
		zap.Int("balance", balance),
	)
	return balance, nil
}

func lockOwned(tx *gorm.DB, accountID, characterID uint) (*models.Character, error) {
	var ch models.Character
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
	return &ch, nil
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
