package service

import "errors"

// Domain failure taxonomy. Handlers map these to HTTP statuses with
// errors.Is; anything unmatched is a 500.
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")

	ErrOutOfStock       = errors.New("out of stock")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrAlreadyConfirmed = errors.New("order already confirmed")
	ErrPendingPayment   = errors.New("order has pending payment")

	// ErrIntegrity marks a gateway/store desync: the payment checked out
	// but the order it references is gone. Always a server fault.
	ErrIntegrity = errors.New("integrity")
)
