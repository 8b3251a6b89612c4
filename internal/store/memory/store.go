package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/davidbz/creditledger/internal/domain"
)

// Store implements domain.BalanceStore in process memory.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	transactions map[string][]domain.BalanceTransaction
	maxHistory   int
}

// NewStore creates an empty store. maxHistory bounds the transactions kept per user; 0 keeps all.
func NewStore(maxHistory int) *Store {
	return &Store{
		mu:           sync.Mutex{},
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string][]domain.BalanceTransaction),
		maxHistory:   maxHistory,
	}
}

// CreateAccount adds an account together with its opening transaction, if any.
func (s *Store) CreateAccount(_ context.Context, account domain.Account, opening *domain.BalanceTransaction) error {
	if account.UserID == "" {
		return errors.New("user id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.UserID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.UserID)
	}

	if opening != nil {
		account.Balance = opening.BalanceAfter
		account.UpdatedAt = opening.Timestamp
		s.transactions[account.UserID] = []domain.BalanceTransaction{cloneTransaction(*opening)}
	}

	s.accounts[account.UserID] = account
	return nil
}

// GetAccount retrieves an account by user ID.
func (s *Store) GetAccount(_ context.Context, userID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[userID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, userID)
	}

	return &account, nil
}

// UpdateBalance applies fn while holding the store lock.
func (s *Store) UpdateBalance(
	_ context.Context,
	userID string,
	fn domain.BalanceUpdateFunc,
) (*domain.BalanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[userID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, userID)
	}

	tx, err := fn(account)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.New("balance update produced no transaction")
	}

	account.Balance = tx.BalanceAfter
	account.UpdatedAt = tx.Timestamp
	s.accounts[userID] = account

	history := append(s.transactions[userID], cloneTransaction(*tx))
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}
	s.transactions[userID] = history

	out := cloneTransaction(*tx)
	return &out, nil
}

// ListTransactions returns up to limit transactions, newest first.
func (s *Store) ListTransactions(_ context.Context, userID string, limit int) ([]domain.BalanceTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.transactions[userID]
	if limit <= 0 || limit > len(history) {
		limit = len(history)
	}

	out := make([]domain.BalanceTransaction, 0, limit)
	for i := len(history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneTransaction(history[i]))
	}

	return out, nil
}

func cloneTransaction(tx domain.BalanceTransaction) domain.BalanceTransaction {
	if tx.Metadata != nil {
		tx.Metadata = maps.Clone(tx.Metadata)
	}
	return tx
}
