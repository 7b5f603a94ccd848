// Package models defines the character aggregate and its containers.
//
// A character row carries the two ledgers the transition engine mutates:
// derived stats (health, power) and the money balance. The inventory and
// equipment containers are separate rows so that item placement can
// reference them by id, mirroring the tri-state placement model
// (unplaced / in-inventory / equipped).
package models
