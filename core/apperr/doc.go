// Package apperr defines the typed error taxonomy shared by all features.
//
// Services return *apperr.Error values carrying a Kind; handlers translate
// the Kind into an HTTP status with Status(). Unexpected failures (driver
// errors, broken connections) are wrapped as KindStorage so callers can
// distinguish "you did something invalid" from "the store misbehaved".
//
// # Kinds
//
//   - KindNotFound: item or character absent.
//   - KindNotOwner: requester does not own the referenced character or item.
//   - KindAlreadyOwned, KindAlreadyEquipped, KindItemEquipped,
//     KindNotInInventory, KindNotEquipped: placement conflicts raised by the
//     transition engine.
//   - KindInsufficientFunds: purchase exceeds the character's balance.
//   - KindDuplicateCode, KindDuplicateName, KindItemInUse, KindItemOwned:
//     item registry conflicts.
//   - KindContention: row lock could not be acquired in time; safe to retry.
//   - KindStorage: unexpected storage failure, transaction rolled back.
package apperr
