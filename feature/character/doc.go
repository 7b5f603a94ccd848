// Package character implements character lifecycle and the money grant.
//
// Creating a character also creates its inventory and equipment containers
// in the same transaction, so the transition engine can always assume both
// containers exist. Deleting a character releases any items still placed
// with it back to the unplaced pool before removing the containers.
//
// # HTTP Endpoints
//
//   - POST   /characters                 : create a character (authenticated).
//   - DELETE /characters/:characterId    : delete an owned character.
//   - GET    /characters/:characterId    : character detail; money is only
//     included when the caller owns the character.
//   - PUT    /characters/:characterId/money : grant the fixed money amount.
package character
