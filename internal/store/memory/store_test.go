package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/store/memory"
	"github.com/davidbz/creditledger/internal/store/storetest"
)

func TestStore_Conformance(t *testing.T) {
	storetest.Run(t, func(*testing.T) domain.BalanceStore {
		return memory.NewStore(0)
	})
}

func TestStore_TrimsHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(2)
	recorder := domain.NewTransactionRecorder(time.Now)

	require.NoError(t, store.CreateAccount(ctx, domain.Account{UserID: "u", Balance: decimal.NewFromInt(10)}, nil))

	for range 3 {
		_, err := store.UpdateBalance(ctx, "u", func(a domain.Account) (*domain.BalanceTransaction, error) {
			tx := recorder.CreateBalanceTransaction(a.UserID, "basic-script", "script-generation", a.Balance, a.Balance.Sub(decimal.NewFromInt(1)), nil)
			return &tx, nil
		})
		require.NoError(t, err)
	}

	history, err := store.ListTransactions(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.True(t, history[0].BalanceAfter.Equal(decimal.NewFromInt(7)))
}

func TestStore_NilTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(0)
	require.NoError(t, store.CreateAccount(ctx, domain.Account{UserID: "u"}, nil))

	_, err := store.UpdateBalance(ctx, "u", func(domain.Account) (*domain.BalanceTransaction, error) {
		return nil, nil //nolint:nilnil
	})
	require.Error(t, err)
}
