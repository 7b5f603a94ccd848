// Package models defines the account table shared by all features.
//
// The account aggregate is deliberately thin: authentication and credential
// storage live in the external auth service, so only the identity row that
// characters and items reference is modeled here.
package models
