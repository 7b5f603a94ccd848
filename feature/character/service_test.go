package character_test

import (
	"context"
	"testing"

	"item-simulator/core/apperr"
	"item-simulator/core/database"
	accountmodels "item-simulator/feature/account/models"
	"item-simulator/feature/character"
	"item-simulator/feature/character/models"
	itemmodels "item-simulator/feature/item/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *character.Service, accountmodels.Account) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	err = db.AutoMigrate(
		&accountmodels.Account{},
		&models.Character{},
		&models.Inventory{},
		&models.Equipment{},
		&itemmodels.Item{},
	)
	assert.NoError(t, err)

	account := accountmodels.Account{Username: "tester"}
	assert.NoError(t, db.Create(&account).Error)

	return db, character.NewService(db, zap.NewNop()), account
}

func TestCreateCharacter(t *testing.T) {
	db, svc, account := setup(t)
	ctx := context.Background()

	ch, err := svc.Create(ctx, account.ID, "hero")
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultHealth, ch.Health)
	assert.Equal(t, models.DefaultPower, ch.Power)
	assert.Equal(t, models.DefaultMoney, ch.Money)

	// Both containers come with the character.
	var inv models.Inventory
	assert.NoError(t, db.Where("character_id = ?", ch.ID).First(&inv).Error)
	var eq models.Equipment
	assert.NoError(t, db.Where("character_id = ?", ch.ID).First(&eq).Error)
}

func TestCreateCharacterValidation(t *testing.T) {
	db, svc, account := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, account.ID, "  ")
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = svc.Create(ctx, account.ID, "hero")
	assert.NoError(t, err)

	// Names are unique across all accounts, not per account.
	other := accountmodels.Account{Username: "other"}
	assert.NoError(t, db.Create(&other).Error)
	_, err = svc.Create(ctx, other.ID, "hero")
	assert.Equal(t, apperr.KindDuplicateName, apperr.KindOf(err))
}

func TestDeleteCharacterReleasesItems(t *testing.T) {
	db, svc, account := setup(t)
	ctx := context.Background()

	ch, err := svc.Create(ctx, account.ID, "hero")
	assert.NoError(t, err)

	var inv models.Inventory
	assert.NoError(t, db.Where("character_id = ?", ch.ID).First(&inv).Error)
	var eq models.Equipment
	assert.NoError(t, db.Where("character_id = ?", ch.ID).First(&eq).Error)

	held := itemmodels.Item{AccountID: account.ID, Name: "sword", Price: 100, InventoryID: &inv.ID}
	assert.NoError(t, db.Create(&held).Error)
	worn := itemmodels.Item{AccountID: account.ID, Name: "helm", Price: 80, EquipmentID: &eq.ID}
	assert.NoError(t, db.Create(&worn).Error)

	assert.NoError(t, svc.Delete(ctx, account.ID, ch.ID))

	// Character and containers are gone, the items themselves survive.
	err = db.First(&models.Character{}, ch.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	err = db.Where("character_id = ?", ch.ID).First(&models.Inventory{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, id := range []uint{held.ID, worn.ID} {
		var it itemmodels.Item
		assert.NoError(t, db.First(&it, id).Error)
		assert.Nil(t, it.InventoryID)
		assert.Nil(t, it.EquipmentID)
	}
}

func TestDeleteCharacterOwnership(t *testing.T) {
	db, svc, account := setup(t)
	ctx := context.Background()

	ch, err := svc.Create(ctx, account.ID, "hero")
	assert.NoError(t, err)

	stranger := accountmodels.Account{Username: "stranger"}
	assert.NoError(t, db.Create(&stranger).Error)

	err = svc.Delete(ctx, stranger.ID, ch.ID)
	assert.Equal(t, apperr.KindNotOwner, apperr.KindOf(err))

	err = svc.Delete(ctx, account.ID, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetCharacterMoneyVisibility(t *testing.T) {
	db, svc, account := setup(t)
	ctx := context.Background()

	ch, err := svc.Create(ctx, account.ID, "hero")
	assert.NoError(t, err)

	detail, err := svc.Get(ctx, account.ID, ch.ID)
	assert.NoError(t, err)
	assert.NotNil(t, detail.Money)
	assert.Equal(t, models.DefaultMoney, *detail.Money)

	// Other accounts and anonymous callers see the public view only.
	stranger := accountmodels.Account{Username: "stranger"}
	assert.NoError(t, db.Create(&stranger).Error)

	detail, err = svc.Get(ctx, stranger.ID, ch.ID)
	assert.NoError(t, err)
	assert.Nil(t, detail.Money)

	detail, err = svc.Get(ctx, 0, ch.ID)
	assert.NoError(t, err)
	assert.Nil(t, detail.Money)
	assert.Equal(t, models.DefaultHealth, detail.Health)

	_, err = svc.Get(ctx, account.ID, 9999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGrantMoney(t *testing.T) {
	db, svc, account := setup(t)
	ctx := context.Background()

	ch, err := svc.Create(ctx, account.ID, "hero")
	assert.NoError(t, err)

	balance, err := svc.GrantMoney(ctx, account.ID, ch.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultMoney+models.GrantAmount, balance)

	var stored models.Character
	assert.NoError(t, db.First(&stored, ch.ID).Error)
	assert.Equal(t, balance, stored.Money)

	stranger := accountmodels.Account{Username: "stranger"}
	assert.NoError(t, db.Create(&stranger).Error)
	_, err = svc.GrantMoney(ctx, stranger.ID, ch.ID)
	assert.Equal(t, apperr.KindNotOwner, apperr.KindOf(err))
}
