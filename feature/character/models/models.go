package models

import "time"

// Starting attributes for freshly created characters.
const (
	DefaultHealth = 500
	DefaultPower  = 100
	DefaultMoney  = 10000
)

// GrantAmount is the fixed money credit applied by the grant operation.
const GrantAmount = 10000

// Character represents a playable character owned by an account.
// Health, Power and Money are ledgers: they are only mutated inside the
// same transaction as the placement change (or grant) that caused the
// mutation, never as an independent write.
type Character struct {
	ID        uint      `gorm:"column:character_id;primaryKey;autoIncrement" json:"character_id"`
	AccountID uint      `gorm:"column:account_id;index;not null" json:"account_id"`
	Name      string    `gorm:"column:name;size:64;uniqueIndex;not null" json:"name"`
	Health    int       `gorm:"column:health;not null" json:"health"`
	Power     int       `gorm:"column:power;not null" json:"power"`
	Money     int       `gorm:"column:money;not null" json:"money"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the default table name.
func (Character) TableName() string {
	return "characters"
}

// Inventory is a character's inventory container. Exactly one exists per
// character, created in the same transaction as the character itself.
type Inventory struct {
	ID          uint `gorm:"column:inventory_id;primaryKey;autoIncrement" json:"inventory_id"`
	CharacterID uint `gorm:"column:character_id;uniqueIndex;not null" json:"character_id"`
}

// TableName overrides the default table name.
func (Inventory) TableName() string {
	return "inventories"
}

// Equipment is a character's equipment container. Exactly one exists per
// character, created in the same transaction as the character itself.
type Equipment struct {
	ID          uint `gorm:"column:equipment_id;primaryKey;autoIncrement" json:"equipment_id"`
	CharacterID uint `gorm:"column:character_id;uniqueIndex;not null" json:"character_id"`
}

// TableName overrides the default table name.
func (Equipment) TableName() string {
	return "equipments"
}

// NewCharacter builds a character with the starting attributes.
func NewCharacter(accountID uint, name string) Character {
	return Character{
		AccountID: accountID,
		Name:      name,
		Health:    DefaultHealth,
		Power:     DefaultPower,
		Money:     DefaultMoney,
	}
}

// Detail is the read projection of a character. Money is only populated for
// the owning account.
type Detail struct {
	CharacterID uint   `json:"character_id"`
	Name        string `json:"name"`
	Health      int    `json:"health"`
	Power       int    `json:"power"`
	Money       *int   `json:"money,omitempty"`
}
