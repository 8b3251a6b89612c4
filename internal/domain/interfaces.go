package domain

import "context"

// BalanceUpdateFunc computes the transaction to apply to an account.
// Returning an error aborts the update and leaves the balance untouched.
type BalanceUpdateFunc func(account Account) (*BalanceTransaction, error)

// BalanceStore persists accounts and their transaction history.
// Implementations own the concurrency control around balance updates.
type BalanceStore interface {
	// CreateAccount inserts a new account. When opening is non-nil the account starts at
	// opening.BalanceAfter and the record is stored in the same atomic write, so an account
	// never exists without its opening grant. Returns ErrAccountExists on duplicates.
	CreateAccount(ctx context.Context, account Account, opening *BalanceTransaction) error

	// GetAccount returns the account of a user. Returns ErrAccountNotFound when missing.
	GetAccount(ctx context.Context, userID string) (*Account, error)

	// UpdateBalance runs fn against the current account while holding the store's
	// per-account lock, then persists fn's BalanceAfter and the transaction record.
	// Errors returned by fn are passed through unchanged.
	UpdateBalance(ctx context.Context, userID string, fn BalanceUpdateFunc) (*BalanceTransaction, error)

	// ListTransactions returns up to limit transactions, newest first.
	ListTransactions(ctx context.Context, userID string, limit int) ([]BalanceTransaction, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// OperationFunc performs the external, paid operation guarded by a charge.
// The returned metadata is attached to the resulting transaction.
type OperationFunc func(ctx context.Context) (map[string]any, error)
