// Package audit provides consistency checks over the game store.
//
// The transition engine maintains placements, money and stats incrementally;
// this package recomputes them from scratch so drift can be detected
// independently of the engine's own bookkeeping.
//
// # Checks Provided
//
//   - Placement: no item references an inventory and an equipment at the
//     same time, and every reference points at an existing container.
//   - Stats: each character's stored health/power equal the starting values
//     plus the stat payloads of the items currently equipped.
//   - Balances: no character has a negative money balance.
//   - Schema: the game tables exist with the columns the models expect.
//
// # Surfaces
//
//   - GET /audit : runs all checks and returns the report.
//   - The 'audit' CLI command runs the same checks offline.
package audit
