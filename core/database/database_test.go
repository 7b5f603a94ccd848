package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:     "localhost",
			Port:     9999, // Unused port
			User:     "root",
			Password: "wrongpassword",
			Name:     "item_simulator",
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite In-Memory", func(t *testing.T) {
		cfg := Config{
			Driver: "sqlite",
			Name:   ":memory:",
		}

		db, err := Connect(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, db)

		// A trivial round-trip proves the connection is usable.
		var one int
		err = db.Raw("SELECT 1").Scan(&one).Error
		assert.NoError(t, err)
		assert.Equal(t, 1, one)
	})
}

func TestIsLockContention(t *testing.T) {
	assert.False(t, IsLockContention(nil))
	assert.False(t, IsLockContention(assert.AnError))
	assert.True(t, IsLockContention(errMsg("Error 1205: Lock wait timeout exceeded; try restarting transaction")))
	assert.True(t, IsLockContention(errMsg("Error 1213: Deadlock found when trying to get lock")))
	assert.True(t, IsLockContention(errMsg("database is locked")))
}

type errMsg string

func (e errMsg) Error() string { return string(e) }
