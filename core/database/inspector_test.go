package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// SQLite specific types: INTEGER, TEXT.
	err = db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, price INTEGER)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "integer", colMap["price"])

	// PRAGMA table_info returns an empty result for a non-existent table,
	// no error but no columns.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}
