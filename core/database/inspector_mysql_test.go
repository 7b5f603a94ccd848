package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGetTableColumnsMySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("item_id", "INT(11)", "NO", "PRI", nil, "auto_increment")
	rows.AddRow("Name", "VARCHAR(64)", "NO", "UNI", nil, "")
	rows.AddRow("price", "int(11)", "NO", "", "0", "")

	mock.ExpectQuery("SHOW COLUMNS FROM `items`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	// Field and type names are normalized to lower case.
	assert.Equal(t, "item_id", columns[0].Field)
	assert.Equal(t, "int(11)", columns[0].Type)
	assert.Equal(t, "name", columns[1].Field)
	assert.Equal(t, "varchar(64)", columns[1].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumnsMySQLError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `missing`").
		WillReturnError(assert.AnError)

	_, err := GetTableColumns(db, "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
