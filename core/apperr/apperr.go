package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error for status mapping and logging.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindNotOwner
	KindAlreadyOwned
	KindAlreadyEquipped
	KindItemEquipped
	KindNotInInventory
	KindNotEquipped
	KindInsufficientFunds
	KindDuplicateCode
	KindDuplicateName
	KindItemInUse
	KindItemOwned
	KindContention
	KindStorage
)

// String returns the snake_case code reported to API clients.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid_request"
	case KindNotOwner:
		return "not_owner"
	case KindAlreadyOwned:
		return "already_owned"
	case KindAlreadyEquipped:
		return "already_equipped"
	case KindItemEquipped:
		return "item_equipped"
	case KindNotInInventory:
		return "not_in_inventory"
	case KindNotEquipped:
		return "not_equipped_by_character"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindDuplicateCode:
		return "duplicate_code"
	case KindDuplicateName:
		return "duplicate_name"
	case KindItemInUse:
		return "item_in_use"
	case KindItemOwned:
		return "item_owned"
	case KindContention:
		return "contention"
	case KindStorage:
		return "storage_error"
	default:
		return "unknown"
	}
}

// Error is the structured error returned by services.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message extracts the user-facing message from an error chain.
// Unknown errors are not leaked to clients verbatim.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal server error"
}

// Status maps an error to the HTTP status the handlers respond with.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindNotOwner:
		return fiber.StatusForbidden
	case KindInvalid, KindInsufficientFunds, KindNotInInventory, KindNotEquipped:
		return fiber.StatusBadRequest
	case KindAlreadyOwned, KindAlreadyEquipped, KindItemEquipped,
		KindDuplicateCode, KindDuplicateName, KindItemInUse, KindItemOwned:
		return fiber.StatusConflict
	case KindContention:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
