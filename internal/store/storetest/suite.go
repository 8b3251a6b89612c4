// Package storetest holds the behavior every domain.BalanceStore must share.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/domain"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) domain.BalanceStore

var (
	createdAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	errBoom   = errors.New("boom")
)

// Run executes the conformance suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("create and get account", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("create with opening transaction", func(t *testing.T) { testCreateWithOpening(t, newStore(t)) })
	t.Run("duplicate account", func(t *testing.T) { testDuplicate(t, newStore(t)) })
	t.Run("missing account", func(t *testing.T) { testMissing(t, newStore(t)) })
	t.Run("update balance", func(t *testing.T) { testUpdateBalance(t, newStore(t)) })
	t.Run("update error leaves balance", func(t *testing.T) { testUpdateError(t, newStore(t)) })
	t.Run("list transactions", func(t *testing.T) { testListTransactions(t, newStore(t)) })
	t.Run("concurrent debits never overdraw", func(t *testing.T) { testConcurrentDebits(t, newStore(t)) })
}

func newAccount(userID string, balance string) domain.Account {
	return domain.Account{
		UserID:    userID,
		UserType:  domain.UserTypeRegular,
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func debit(recorder *domain.TransactionRecorder, amount string, metadata map[string]any) domain.BalanceUpdateFunc {
	cost := decimal.RequireFromString(amount)
	return func(account domain.Account) (*domain.BalanceTransaction, error) {
		if account.Balance.LessThan(cost) {
			return nil, &domain.InsufficientBalanceError{UserID: account.UserID}
		}
		tx := recorder.CreateBalanceTransaction(
			account.UserID, "text-to-image", "image-generation",
			account.Balance, account.Balance.Sub(cost), metadata,
		)
		return &tx, nil
	}
}

func fixedRecorder(at time.Time) *domain.TransactionRecorder {
	return domain.NewTransactionRecorder(func() time.Time { return at })
}

func testCreateAndGet(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, newAccount("alice", "12.5"), nil))

	account, err := store.GetAccount(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", account.UserID)
	require.Equal(t, domain.UserTypeRegular, account.UserType)
	require.True(t, account.Balance.Equal(decimal.RequireFromString("12.5")), "balance %s", account.Balance)
	require.True(t, account.CreatedAt.Equal(createdAt))
}

func testCreateWithOpening(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()
	grantedAt := createdAt.Add(time.Second)

	opening := fixedRecorder(grantedAt).CreateBalanceTransaction(
		"gina", domain.OperationSignupGrant, domain.CategoryBalance,
		decimal.Zero, decimal.NewFromInt(50), map[string]any{"user_type": "guest"},
	)
	require.NoError(t, store.CreateAccount(ctx, newAccount("gina", "0"), &opening))

	account, err := store.GetAccount(ctx, "gina")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(50)), "balance %s", account.Balance)
	require.True(t, account.UpdatedAt.Equal(grantedAt))

	history, err := store.ListTransactions(ctx, "gina", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, opening.ID, history[0].ID)
	require.True(t, history[0].Amount.Equal(decimal.NewFromInt(50)))

	again := fixedRecorder(grantedAt).CreateBalanceTransaction(
		"gina", domain.OperationSignupGrant, domain.CategoryBalance,
		decimal.Zero, decimal.NewFromInt(50), nil,
	)
	err = store.CreateAccount(ctx, newAccount("gina", "0"), &again)
	require.ErrorIs(t, err, domain.ErrAccountExists)

	history, err = store.ListTransactions(ctx, "gina", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func testDuplicate(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, newAccount("bob", "0"), nil))
	err := store.CreateAccount(ctx, newAccount("bob", "10"), nil)
	require.ErrorIs(t, err, domain.ErrAccountExists)

	account, err := store.GetAccount(ctx, "bob")
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero())
}

func testMissing(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()

	_, err := store.GetAccount(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = store.UpdateBalance(ctx, "ghost", debit(fixedRecorder(createdAt), "1", nil))
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func testUpdateBalance(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()
	at := createdAt.Add(time.Hour)

	require.NoError(t, store.CreateAccount(ctx, newAccount("carol", "20"), nil))

	tx, err := store.UpdateBalance(ctx, "carol", debit(fixedRecorder(at), "7.5", map[string]any{"prompt": "a lighthouse"}))
	require.NoError(t, err)
	require.NotEmpty(t, tx.ID)
	require.True(t, tx.Amount.Equal(decimal.RequireFromString("-7.5")))
	require.True(t, tx.BalanceAfter.Equal(decimal.RequireFromString("12.5")))

	account, err := store.GetAccount(ctx, "carol")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.RequireFromString("12.5")), "balance %s", account.Balance)
	require.True(t, account.UpdatedAt.Equal(at))

	history, err := store.ListTransactions(ctx, "carol", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, tx.ID, history[0].ID)
	require.Equal(t, "carol", history[0].UserID)
	require.Equal(t, "text-to-image", history[0].OperationType)
	require.Equal(t, "image-generation", history[0].OperationCategory)
	require.True(t, history[0].Amount.Equal(tx.Amount))
	require.True(t, history[0].BalanceBefore.Equal(decimal.RequireFromString("20")))
	require.True(t, history[0].BalanceAfter.Equal(decimal.RequireFromString("12.5")))
	require.True(t, history[0].Timestamp.Equal(at))
	require.Equal(t, "a lighthouse", history[0].Metadata["prompt"])
}

func testUpdateError(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, newAccount("dave", "3"), nil))

	_, err := store.UpdateBalance(ctx, "dave", func(domain.Account) (*domain.BalanceTransaction, error) {
		return nil, errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = store.UpdateBalance(ctx, "dave", debit(fixedRecorder(createdAt), "5", nil))
	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)

	account, err := store.GetAccount(ctx, "dave")
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(decimal.NewFromInt(3)))

	history, err := store.ListTransactions(ctx, "dave", 10)
	require.NoError(t, err)
	require.Empty(t, history)
}

func testListTransactions(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, newAccount("erin", "100"), nil))

	var ids []string
	for i := range 5 {
		at := createdAt.Add(time.Duration(i+1) * time.Minute)
		tx, err := store.UpdateBalance(ctx, "erin", debit(fixedRecorder(at), "1", map[string]any{"n": fmt.Sprint(i)}))
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}

	history, err := store.ListTransactions(ctx, "erin", 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	require.Equal(t, []string{ids[4], ids[3], ids[2]}, []string{history[0].ID, history[1].ID, history[2].ID})
	require.True(t, history[0].BalanceAfter.Equal(decimal.NewFromInt(95)))

	empty, err := store.ListTransactions(ctx, "nobody", 3)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func testConcurrentDebits(t *testing.T, store domain.BalanceStore) {
	ctx := context.Background()
	const (
		workers = 20
		balance = 10
	)

	require.NoError(t, store.CreateAccount(ctx, newAccount("frank", fmt.Sprint(balance)), nil))

	recorder := fixedRecorder(createdAt)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpdateBalance(ctx, "frank", debit(recorder, "1", nil))

			mu.Lock()
			defer mu.Unlock()
			var insufficient *domain.InsufficientBalanceError
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &insufficient):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, balance, succeeded)
	require.Equal(t, workers-balance, rejected)

	account, err := store.GetAccount(ctx, "frank")
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero(), "balance %s", account.Balance)
}
