package models

import "time"

// Placement names the tri-state location of an item.
type Placement string

const (
	PlacementUnplaced    Placement = "unplaced"
	PlacementInInventory Placement = "in_inventory"
	PlacementEquipped    Placement = "equipped"
)

// Item is an item definition plus its current placement.
//
// InventoryID and EquipmentID are mutually exclusive: at most one is set at
// any time. Both nil means the item is unplaced (in the shop pool). The
// transition engine is the only writer of these two columns.
type Item struct {
	ID        uint      `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	AccountID uint      `gorm:"column:account_id;index;not null" json:"account_id"`
	Code      *int      `gorm:"column:item_code;uniqueIndex" json:"item_code,omitempty"`
	Name      string    `gorm:"column:name;size:64;uniqueIndex;not null" json:"name"`
	Price     int       `gorm:"column:price;not null" json:"price"`
	Health    int       `gorm:"column:health;not null" json:"health"`
	Power     int       `gorm:"column:power;not null" json:"power"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`

	InventoryID *uint `gorm:"column:inventory_id;index" json:"inventory_id,omitempty"`
	EquipmentID *uint `gorm:"column:equipment_id;index" json:"equipment_id,omitempty"`
}

// TableName overrides the default table name.
func (Item) TableName() string {
	return "items"
}

// Placement derives the tri-state location from the placement columns.
func (i Item) Placement() Placement {
	switch {
	case i.EquipmentID != nil:
		return PlacementEquipped
	case i.InventoryID != nil:
		return PlacementInInventory
	default:
		return PlacementUnplaced
	}
}

// IsPlaced reports whether the item is linked to any container.
func (i Item) IsPlaced() bool {
	return i.InventoryID != nil || i.EquipmentID != nil
}

// Stat returns the stat-modifier payload in its wire shape.
func (i Item) Stat() map[string]int {
	return map[string]int{"health": i.Health, "power": i.Power}
}

// SellValue computes the credit for selling the item: two thirds of the
// price, floored by integer division. 2*price/3 keeps the intermediate
// product exact for any realistic price.
func (i Item) SellValue() int {
	return 2 * i.Price / 3
}

// Validate checks the definition fields required at creation time.
func (i Item) Validate() string {
	if i.Name == "" {
		return "missing name"
	}
	if i.Price <= 0 {
		return "price must be positive"
	}
	if i.Code != nil && *i.Code <= 0 {
		return "item code must be positive"
	}
	return ""
}
