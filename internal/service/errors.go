package service

import (
	"errors"
	"fmt"
)

// Kind classifies an order pipeline failure so transports can map it to a
// status code without inspecting messages.
type Kind int

const (
	// KindInternal is any failure not raised by validation (store, tx, commit).
	KindInternal Kind = iota
	// KindInvalid is malformed input: empty items, bad enums, bad quantities.
	KindInvalid
	// KindNotFound means a referenced table or order does not exist.
	KindNotFound
	// KindConflict means the requested table is held by another active order.
	KindConflict
	// KindRejected covers consistency and status-transition failures.
	KindRejected
)

// Error is a classified pipeline error with a stable, client-facing message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Errors returned by the order pipeline.
var (
	ErrEmptyItems           = &Error{KindInvalid, "items are required"}
	ErrInvalidQuantity      = &Error{KindInvalid, "quantity must be > 0"}
	ErrInvalidPrice         = &Error{KindInvalid, "price must be >= 0"}
	ErrInvalidOrderType     = &Error{KindInvalid, "invalid type"}
	ErrInvalidPaymentMethod = &Error{KindInvalid, "invalid payment_method"}
	ErrAmountPrecision      = &Error{KindInvalid, "amounts must have at most 2 decimal places"}

	ErrTableNotFound    = &Error{KindNotFound, "Table does not exist."}
	ErrNoPreviousOrder  = &Error{KindNotFound, "No previous order found."}
	ErrOrderNotFound    = &Error{KindNotFound, "order not found"}
	ErrDuplicateItems   = &Error{KindRejected, "Duplicate order items found"}
	ErrInvalidOrderItem = &Error{KindRejected, "Invalid order item found"}
	ErrInvalidTax       = &Error{KindRejected, "Invalid tax found"}
	ErrSubtotalMismatch = &Error{KindRejected, "Subtotal price does not match"}
	ErrTotalMismatch    = &Error{KindRejected, "Total price does not match"}
	ErrOrderClosed      = &Error{KindRejected, "Invalid data: Order is already COMPLETED or CANCELED"}
	ErrStatusNotPending = &Error{KindRejected, "Invalid data: status should be PENDING"}
)

func tableOccupied(name string) *Error {
	return newError(KindConflict, "%s is already occupied.", name)
}

func tableMoveOccupied(name string) *Error {
	return newError(KindConflict, "Cannot move to %s, it is already occupied.", name)
}
