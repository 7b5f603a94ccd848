// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the configuration structure for server settings, such as the
// listen port and the secret used to verify bearer tokens.
package server
