// Package models defines the item table: the immutable-ish definition
// (name, price, stat payload) and the mutable placement columns the
// transition engine owns.
package models
