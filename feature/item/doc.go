// Package item implements the item registry.
//
// Item definitions (name, price, stat payload, optional unique code) are
// created by an account and are only editable by that account. Definition
// fields that feed the transition engine (price, stat payload) become frozen
// while the item is placed with a character; they can be edited again once
// the item returns to the unplaced pool. Deletion requires the unplaced
// state.
//
// # HTTP Endpoints
//
//   - POST   /items                 : create an item definition (authenticated).
//   - GET    /items                 : list items, newest first.
//   - GET    /items/:identifier     : item detail, by id or item code.
//   - PATCH  /items/:itemId         : edit an owned definition.
//   - DELETE /items/:itemId         : delete an owned, unplaced definition.
package item
