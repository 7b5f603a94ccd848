// Package config provides configuration management for the item simulator.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, token secret)
//   - Database: MySQL/SQLite connection details and lock timeouts
//   - Storage: S3/MinIO credentials and bucket settings for client assets
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
