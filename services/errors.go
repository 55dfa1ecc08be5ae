package services

import "errors"

// Validation failures: rejected before anything is persisted, the
// client fixes the cart and resubmits.
var (
	ErrTableNotFound            = errors.New("table not found")
	ErrItemUnavailable          = errors.New("menu item unavailable")
	ErrModifierUnavailable      = errors.New("modifier unavailable")
	ErrModifierSelectionInvalid = errors.New("modifier selection invalid")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrInvalidQuantity          = errors.New("quantity must be at least 1")
	ErrInvalidPaymentMethod     = errors.New("payment method must be cash or online")
)

// Conflicts: the caller raced another actor and may retry with fresh
// state.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyConfirmed  = errors.New("payment already confirmed")
	ErrNotCashOrder      = errors.New("order is not a cash order")
)

// External dependency / webhook failures.
var (
	ErrInvalidSignature = errors.New("invalid gateway signature")
	ErrMalformedPayload = errors.New("malformed gateway payload")
	ErrGatewayFailure   = errors.New("payment gateway request failed")
)

// ErrTableIntegrity marks a derived-state recomputation that found an
// order pointing at a nonexistent table. This is a bug, not a user
// error; it should alert, never be swallowed.
var ErrTableIntegrity = errors.New("order references nonexistent table")
