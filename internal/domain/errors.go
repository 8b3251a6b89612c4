package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory indicates a tool category absent from the catalog.
	ErrUnknownCategory = errors.New("unknown tool category")

	// ErrUnknownOperation indicates an operation absent from a known category.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidPricing indicates a catalog entry that violates pricing invariants.
	ErrInvalidPricing = errors.New("invalid pricing")

	// ErrInvalidRequest indicates a request missing required fields.
	ErrInvalidRequest = errors.New("invalid request")

	ErrUnknownUserType     = errors.New("unknown user type")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// InsufficientBalanceError is returned by stateful debits that the balance cannot cover.
type InsufficientBalanceError struct {
	UserID string
	Result BalanceCheckResult
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %s, available %s, shortfall %s",
		e.UserID,
		e.Result.RequiredBalance.String(),
		e.Result.CurrentBalance.String(),
		e.Result.Shortfall.String(),
	)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
