package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the configured database.
// It returns a *gorm.DB connection or an error if the connection fails.
func Connect(cfg Config) (*gorm.DB, error) {
	// Suppress GORM logging; the application logs through zap.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if strings.EqualFold(cfg.Driver, "sqlite") {
		return connectSQLite(cfg, gormConfig)
	}
	return connectMySQL(cfg, gormConfig)
}

func connectMySQL(cfg Config, gormConfig *gorm.Config) (*gorm.DB, error) {
	// Special characters in the password must be URL encoded for the
	// go-sql-driver DSN; url.UserPassword handles that.
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	// timeout: connection setup; readTimeout/writeTimeout: I/O deadlines.
	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Bound lock waits so a contended transition fails fast instead of
	// queueing behind a long-held row lock.
	if cfg.LockTimeoutSeconds > 0 {
		if err := db.Exec("SET SESSION innodb_lock_wait_timeout = ?", cfg.LockTimeoutSeconds).Error; err != nil {
			return nil, fmt.Errorf("failed to set lock wait timeout: %w", err)
		}
	}

	return db, nil
}

func connectSQLite(cfg Config, gormConfig *gorm.Config) (*gorm.DB, error) {
	name := cfg.Name
	if name == "" {
		name = ":memory:"
	}

	// busy_timeout plays the role innodb_lock_wait_timeout plays for MySQL.
	lockTimeout := cfg.LockTimeoutSeconds
	if lockTimeout <= 0 {
		lockTimeout = 5
	}
	dsn := fmt.Sprintf("%s?_busy_timeout=%d", name, lockTimeout*1000)

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite serializes writers; a single connection avoids spurious
	// SQLITE_BUSY failures from concurrent test transactions.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
