// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure connections based on the application's configuration. MySQL is the
// production driver; SQLite (including ":memory:") is supported for tests and
// local experiments through the same Connect call.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. For
// MySQL it also applies the configured lock wait timeout, which bounds how
// long a transition transaction blocks on a contended row before failing as
// retryable contention.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which the audit
// feature uses to verify that the game tables match the GORM models before
// running data checks.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "items")
package database
