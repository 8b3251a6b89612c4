package domain

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davidbz/creditledger/internal/metrics"
	"github.com/davidbz/creditledger/internal/observability"
)

// Transaction labels for balance changes that are not tool operations.
const (
	CategoryBalance       = "balance"
	OperationSignupGrant  = "signup-grant"
	DefaultCreditReason   = "top-up"
	defaultHistoryLimit   = 20
	defaultMaxHistoryRows = 100
)

// Events published by the ledger.
const (
	EventTransactionRecorded = "balance.transaction.recorded"
	EventInsufficientBalance = "balance.insufficient"
	EventAccountProvisioned  = "balance.account.provisioned"
)

// LedgerConfig tunes the ledger service.
type LedgerConfig struct {
	// FreeBalance is granted once when an account is provisioned.
	FreeBalance map[UserType]decimal.Decimal

	// DefaultHistory is used when History is called without a limit.
	DefaultHistory int

	// MaxHistory caps History results.
	MaxHistory int

	// Clock stamps accounts and transactions. Nil means time.Now.
	Clock func() time.Time
}

// DefaultLedgerConfig returns the built-in free balances and history limits.
func DefaultLedgerConfig() LedgerConfig {
	free := make(map[UserType]decimal.Decimal)
	for userType, credits := range FreeBalanceByUserType() {
		free[userType] = decimal.NewFromInt(credits)
	}

	return LedgerConfig{
		FreeBalance:    free,
		DefaultHistory: defaultHistoryLimit,
		MaxHistory:     defaultMaxHistoryRows,
		Clock:          time.Now,
	}
}

// LedgerService runs the read, check, operate, record and persist sequence for user balances.
type LedgerService struct {
	calculator CostCalculator
	store      BalanceStore
	publisher  EventPublisher
	cache      BalanceCache
	guard      *cacheGuard
	recorder   *TransactionRecorder
	cfg        LedgerConfig
}

// NewLedgerService creates a new ledger service (DI constructor).
func NewLedgerService(
	calculator CostCalculator,
	store BalanceStore,
	publisher EventPublisher,
	cache BalanceCache,
	cfg LedgerConfig,
) *LedgerService {
	if cache == nil {
		cache = NoopBalanceCache{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.DefaultHistory <= 0 {
		cfg.DefaultHistory = defaultHistoryLimit
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = defaultMaxHistoryRows
	}
	if cfg.DefaultHistory > cfg.MaxHistory {
		cfg.DefaultHistory = cfg.MaxHistory
	}

	return &LedgerService{
		calculator: calculator,
		store:      store,
		publisher:  publisher,
		cache:      cache,
		guard:      &cacheGuard{},
		recorder:   NewTransactionRecorder(cfg.Clock),
		cfg:        cfg,
	}
}

// Provision creates an account and grants the free balance of its user type.
func (l *LedgerService) Provision(ctx context.Context, userID string, userType UserType) (*Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", ErrInvalidRequest)
	}

	grant, ok := l.cfg.FreeBalance[userType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUserType, userType)
	}

	ctx = observability.WithUserID(ctx, userID)
	ctx, span := observability.StartSpan(ctx, "ledger.provision")
	defer span.End()
	observability.AddLedgerAttributes(span, userID, "", "")

	now := l.cfg.Clock()
	account := Account{
		UserID:    userID,
		UserType:  userType,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var opening *BalanceTransaction
	if grant.IsPositive() {
		record := l.recorder.CreateBalanceTransaction(
			userID,
			OperationSignupGrant,
			CategoryBalance,
			account.Balance,
			account.Balance.Add(grant),
			map[string]any{"user_type": string(userType)},
		)
		opening = &record
	}

	if err := l.store.CreateAccount(ctx, account, opening); err != nil {
		observability.AddErrorAttribute(span, err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if opening != nil {
		account.Balance = opening.BalanceAfter
		account.UpdatedAt = opening.Timestamp
		metrics.RecordCredit(OperationSignupGrant, opening.Amount)
		l.publishTransaction(ctx, opening)
	}

	l.guard.invalidate(l.cache, userID)

	observability.FromContext(ctx).Info("account provisioned",
		observability.String("user_type", string(userType)),
		observability.String("balance", account.Balance.String()),
	)
	l.publish(ctx, EventAccountProvisioned, map[string]interface{}{
		"user_id":   userID,
		"user_type": string(userType),
		"balance":   account.Balance.String(),
	})

	return &account, nil
}

// Balance returns the current account of a user.
func (l *LedgerService) Balance(ctx context.Context, userID string) (*Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", ErrInvalidRequest)
	}

	if cached, ok := l.cache.Get(userID); ok {
		metrics.RecordCacheHit()
		return &cached, nil
	}
	metrics.RecordCacheMiss()

	generation := l.guard.generation(userID)
	account, err := l.store.GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	l.guard.fill(l.cache, userID, generation, *account)
	return account, nil
}

// Quote prices an operation without touching any balance.
func (l *LedgerService) Quote(
	ctx context.Context,
	category ToolCategory,
	operation OperationType,
	multipliers ...string,
) (decimal.Decimal, error) {
	_, span := observability.StartSpan(ctx, "ledger.quote")
	defer span.End()
	observability.AddLedgerAttributes(span, "", string(category), string(operation))

	cost, err := l.calculator.CalculateOperationCost(category, operation, multipliers...)
	if err != nil {
		metrics.RecordQuote(metrics.LabelUnknown, metrics.LabelUnknown, "error")
		observability.AddErrorAttribute(span, err)
		return decimal.Zero, err
	}

	metrics.RecordQuote(string(category), string(operation), "success")
	observability.AddCostAttribute(span, cost)
	return cost, nil
}

// Check reports whether the user's current balance covers an operation.
func (l *LedgerService) Check(
	ctx context.Context,
	userID string,
	category ToolCategory,
	operation OperationType,
	multipliers ...string,
) (BalanceCheckResult, error) {
	ctx, span := observability.StartSpan(ctx, "ledger.check")
	defer span.End()
	observability.AddLedgerAttributes(span, userID, string(category), string(operation))

	account, err := l.Balance(ctx, userID)
	if err != nil {
		observability.AddErrorAttribute(span, err)
		return BalanceCheckResult{}, err
	}

	result, err := l.calculator.CheckOperationBalance(account.Balance, category, operation, multipliers...)
	if err != nil {
		observability.AddErrorAttribute(span, err)
		return BalanceCheckResult{}, err
	}

	metrics.RecordBalanceCheck(string(category), string(operation), result.HasEnoughBalance)
	observability.AddCostAttribute(span, result.RequiredBalance)
	return result, nil
}

// Charge debits the cost of an operation. The check and the debit happen atomically
// per user; an uncovered cost returns *InsufficientBalanceError and leaves the balance as is.
func (l *LedgerService) Charge(ctx context.Context, req ChargeRequest) (*BalanceTransaction, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", ErrInvalidRequest)
	}

	ctx = observability.WithUserID(ctx, req.UserID)
	ctx = observability.WithCategory(ctx, string(req.Category))
	ctx = observability.WithOperation(ctx, string(req.Operation))
	ctx, span := observability.StartSpan(ctx, "ledger.charge")
	defer span.End()
	observability.AddLedgerAttributes(span, req.UserID, string(req.Category), string(req.Operation))

	// Reject unknown operations before taking any store lock.
	cost, err := l.calculator.CalculateOperationCost(req.Category, req.Operation, req.Multipliers...)
	if err != nil {
		observability.AddErrorAttribute(span, err)
		return nil, err
	}
	observability.AddCostAttribute(span, cost)

	metadata := chargeMetadata(req)

	tx, err := l.store.UpdateBalance(ctx, req.UserID, func(current Account) (*BalanceTransaction, error) {
		result, checkErr := l.calculator.CheckOperationBalance(
			current.Balance, req.Category, req.Operation, req.Multipliers...,
		)
		if checkErr != nil {
			return nil, checkErr
		}
		if !result.HasEnoughBalance {
			return nil, &InsufficientBalanceError{UserID: current.UserID, Result: result}
		}

		record := l.recorder.CreateBalanceTransaction(
			current.UserID,
			string(req.Operation),
			string(req.Category),
			current.Balance,
			current.Balance.Sub(result.RequiredBalance),
			metadata,
		)
		return &record, nil
	})
	if err != nil {
		observability.AddErrorAttribute(span, err)

		var insufficient *InsufficientBalanceError
		if errors.As(err, &insufficient) {
			metrics.RecordInsufficient(string(req.Category), string(req.Operation))
			observability.FromContext(ctx).Info("charge rejected",
				observability.String("required", insufficient.Result.RequiredBalance.String()),
				observability.String("shortfall", insufficient.Result.Shortfall.String()),
			)
			l.publish(ctx, EventInsufficientBalance, map[string]interface{}{
				"user_id":   req.UserID,
				"category":  string(req.Category),
				"operation": string(req.Operation),
				"required":  insufficient.Result.RequiredBalance.String(),
				"available": insufficient.Result.CurrentBalance.String(),
				"shortfall": insufficient.Result.Shortfall.String(),
			})
			return nil, insufficient
		}

		return nil, fmt.Errorf("failed to charge account: %w", err)
	}

	l.guard.invalidate(l.cache, req.UserID)
	metrics.RecordCharge(string(req.Category), string(req.Operation), tx.Amount)

	observability.FromContext(ctx).Info("charge recorded",
		observability.String("transaction_id", tx.ID),
		observability.String("amount", tx.Amount.String()),
		observability.String("balance_after", tx.BalanceAfter.String()),
	)
	l.publishTransaction(ctx, tx)

	return tx, nil
}

// Credit adds credits to a user's balance (top-ups and refunds).
func (l *LedgerService) Credit(ctx context.Context, req CreditRequest) (*BalanceTransaction, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", ErrInvalidRequest)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount must be positive, got %s", ErrInvalidAmount, req.Amount.String())
	}

	reason := req.Reason
	if reason == "" {
		reason = DefaultCreditReason
	}

	ctx = observability.WithUserID(ctx, req.UserID)
	ctx, span := observability.StartSpan(ctx, "ledger.credit")
	defer span.End()
	observability.AddLedgerAttributes(span, req.UserID, CategoryBalance, reason)
	observability.AddCostAttribute(span, req.Amount)

	tx, err := l.store.UpdateBalance(ctx, req.UserID, func(current Account) (*BalanceTransaction, error) {
		record := l.recorder.CreateBalanceTransaction(
			current.UserID,
			reason,
			CategoryBalance,
			current.Balance,
			current.Balance.Add(req.Amount),
			req.Metadata,
		)
		return &record, nil
	})
	if err != nil {
		observability.AddErrorAttribute(span, err)
		return nil, fmt.Errorf("failed to credit account: %w", err)
	}

	l.guard.invalidate(l.cache, req.UserID)
	metrics.RecordCredit(reason, tx.Amount)

	observability.FromContext(ctx).Info("credit recorded",
		observability.String("transaction_id", tx.ID),
		observability.String("amount", tx.Amount.String()),
		observability.String("balance_after", tx.BalanceAfter.String()),
	)
	l.publishTransaction(ctx, tx)

	return tx, nil
}

// Execute guards an external operation with a balance check and charges for it only
// when it succeeds. Metadata returned by fn is merged over the request metadata.
func (l *LedgerService) Execute(ctx context.Context, req ChargeRequest, fn OperationFunc) (*BalanceTransaction, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: operation cannot be nil", ErrInvalidRequest)
	}

	result, err := l.Check(ctx, req.UserID, req.Category, req.Operation, req.Multipliers...)
	if err != nil {
		return nil, err
	}
	if !result.HasEnoughBalance {
		return nil, &InsufficientBalanceError{UserID: req.UserID, Result: result}
	}

	produced, err := fn(ctx)
	if err != nil {
		observability.FromContext(observability.WithUserID(ctx, req.UserID)).Warn("operation failed, balance untouched",
			observability.String("category", string(req.Category)),
			observability.String("operation", string(req.Operation)),
			observability.Error(err),
		)
		return nil, fmt.Errorf("operation failed: %w", err)
	}

	if len(produced) > 0 {
		merged := make(map[string]any, len(req.Metadata)+len(produced))
		maps.Copy(merged, req.Metadata)
		maps.Copy(merged, produced)
		req.Metadata = merged
	}

	return l.Charge(ctx, req)
}

// History returns the user's most recent transactions, newest first.
func (l *LedgerService) History(ctx context.Context, userID string, limit int) ([]BalanceTransaction, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", ErrInvalidRequest)
	}

	switch {
	case limit <= 0:
		limit = l.cfg.DefaultHistory
	case limit > l.cfg.MaxHistory:
		limit = l.cfg.MaxHistory
	}

	if _, err := l.store.GetAccount(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	transactions, err := l.store.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

func (l *LedgerService) publishTransaction(ctx context.Context, tx *BalanceTransaction) {
	l.publish(ctx, EventTransactionRecorded, map[string]interface{}{
		"transaction_id":     tx.ID,
		"user_id":            tx.UserID,
		"operation_type":     tx.OperationType,
		"operation_category": tx.OperationCategory,
		"amount":             tx.Amount.String(),
		"balance_before":     tx.BalanceBefore.String(),
		"balance_after":      tx.BalanceAfter.String(),
	})
}

func (l *LedgerService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if l.publisher == nil {
		return
	}
	l.publisher.Publish(ctx, eventType, data)
}

func chargeMetadata(req ChargeRequest) map[string]any {
	if len(req.Metadata) == 0 && len(req.Multipliers) == 0 {
		return nil
	}

	metadata := make(map[string]any, len(req.Metadata)+1)
	maps.Copy(metadata, req.Metadata)
	if len(req.Multipliers) > 0 {
		if _, taken := metadata["multipliers"]; !taken {
			metadata["multipliers"] = append([]string(nil), req.Multipliers...)
		}
	}
	return metadata
}
