package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRecorder builds balance transaction records.
type TransactionRecorder struct {
	now   func() time.Time
	newID func() string
}

// NewTransactionRecorder creates a recorder stamping records with now.
// A nil clock falls back to time.Now.
func NewTransactionRecorder(now func() time.Time) *TransactionRecorder {
	if now == nil {
		now = time.Now
	}
	return &TransactionRecorder{
		now:   now,
		newID: uuid.NewString,
	}
}

// CreateBalanceTransaction builds an audit record of a balance change.
// Amount is balanceAfter minus balanceBefore; a positive amount is a credit.
func (r *TransactionRecorder) CreateBalanceTransaction(
	userID string,
	operationType string,
	operationCategory string,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	metadata map[string]any,
) BalanceTransaction {
	var meta map[string]any
	if len(metadata) > 0 {
		meta = maps.Clone(metadata)
	}

	return BalanceTransaction{
		ID:                r.newID(),
		UserID:            userID,
		OperationType:     operationType,
		OperationCategory: operationCategory,
		Amount:            balanceAfter.Sub(balanceBefore),
		BalanceBefore:     balanceBefore,
		BalanceAfter:      balanceAfter,
		Timestamp:         r.now(),
		Metadata:          meta,
	}
}

// CreateBalanceTransaction builds an audit record stamped with the wall clock.
func CreateBalanceTransaction(
	userID string,
	operationType string,
	operationCategory string,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	metadata map[string]any,
) BalanceTransaction {
	return NewTransactionRecorder(time.Now).CreateBalanceTransaction(
		userID, operationType, operationCategory, balanceBefore, balanceAfter, metadata,
	)
}
