package models

import "time"

// Account represents a registered player account. Sign-up, sign-in and
// credential storage are owned by the external auth service; this table is
// the authoritative list of account ids referenced by characters and items.
type Account struct {
	ID        uint      `gorm:"column:account_id;primaryKey;autoIncrement" json:"account_id"`
	Username  string    `gorm:"column:username;size:64;uniqueIndex" json:"username"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the default table name.
func (Account) TableName() string {
	return "accounts"
}
