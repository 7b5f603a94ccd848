// Package inventory implements the item ownership transition engine.
//
// An item is always in exactly one of three placements: unplaced (shop
// pool), in a character's inventory, or equipped by a character. The five
// transitions between those placements are the only writers of placement,
// money and stat state:
//
//   - Acquire:  unplaced -> in-inventory
//   - Purchase: unplaced -> in-inventory, debiting the item price
//   - Sell:     in-inventory -> unplaced, crediting 2*price/3 (floored)
//   - Equip:    in-inventory -> equipped, adding the item's stat payload
//   - Unequip:  equipped -> in-inventory, subtracting the same payload
//
// # Atomicity and locking
//
// Every transition runs as one database transaction that locks the character
// row and then the item row with SELECT ... FOR UPDATE, validates under the
// lock, writes, and commits. Conflicting transitions on the same item or the
// same character serialize on those row locks; a lock that cannot be
// acquired within the configured wait bound fails as retryable contention.
// The character-before-item lock order is fixed so concurrent transitions
// cannot deadlock each other.
//
// # Components
//
//   - Service: the transition operations plus inventory/equipment listings.
//   - Handler: exposes HTTP endpoints for transitions and listings.
//   - Feature: registers the feature with the application loader.
package inventory
