package domain_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/cache"
	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/metrics"
	"github.com/davidbz/creditledger/internal/mocks"
	"github.com/davidbz/creditledger/internal/store/memory"
)

var ledgerNow = time.Date(2026, 4, 2, 15, 4, 5, 0, time.UTC)

type recordedEvent struct {
	eventType string
	data      map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, data map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{eventType: eventType, data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

func newTestLedger(t *testing.T) (*domain.LedgerService, *recordingPublisher) {
	t.Helper()

	cfg := domain.DefaultLedgerConfig()
	cfg.Clock = func() time.Time { return ledgerNow }

	publisher := &recordingPublisher{}
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), memory.NewStore(0), publisher, nil, cfg)
	return ledger, publisher
}

func TestLedger_Provision(t *testing.T) {
	tests := []struct {
		name      string
		userType  domain.UserType
		expected  string
		expectErr error
	}{
		{name: "guest", userType: domain.UserTypeGuest, expected: "50"},
		{name: "regular", userType: domain.UserTypeRegular, expected: "100"},
		{name: "demo", userType: domain.UserTypeDemo, expected: "100"},
		{name: "unknown type", userType: "vip", expectErr: domain.ErrUnknownUserType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, publisher := newTestLedger(t)
			ctx := context.Background()

			account, err := ledger.Provision(ctx, "user-1", tt.userType)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			requireDecimal(t, tt.expected, account.Balance)
			require.Equal(t, tt.userType, account.UserType)
			require.Equal(t, ledgerNow, account.CreatedAt)

			history, err := ledger.History(ctx, "user-1", 0)
			require.NoError(t, err)
			require.Len(t, history, 1)
			require.Equal(t, domain.OperationSignupGrant, history[0].OperationType)
			require.Equal(t, domain.CategoryBalance, history[0].OperationCategory)
			requireDecimal(t, tt.expected, history[0].Amount)
			requireDecimal(t, "0", history[0].BalanceBefore)

			require.Equal(t, []string{domain.EventTransactionRecorded, domain.EventAccountProvisioned}, publisher.types())
		})
	}
}

func TestLedger_ProvisionDuplicate(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)

	_, err = ledger.Provision(ctx, "user-1", domain.UserTypeRegular)
	require.ErrorIs(t, err, domain.ErrAccountExists)

	account, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	requireDecimal(t, "50", account.Balance)
}

func TestLedger_Charge(t *testing.T) {
	ledger, publisher := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeRegular)
	require.NoError(t, err)

	tx, err := ledger.Charge(ctx, domain.ChargeRequest{
		UserID:      "user-1",
		Category:    domain.CategoryVideoGeneration,
		Operation:   domain.OperationTextToVideo,
		Multipliers: []string{domain.MultiplierDuration10s},
		Metadata:    map[string]any{"prompt": "a koi pond at dusk"},
	})
	require.NoError(t, err)
	requireDecimal(t, "-15", tx.Amount)
	requireDecimal(t, "100", tx.BalanceBefore)
	requireDecimal(t, "85", tx.BalanceAfter)
	require.Equal(t, string(domain.OperationTextToVideo), tx.OperationType)
	require.Equal(t, string(domain.CategoryVideoGeneration), tx.OperationCategory)
	require.Equal(t, ledgerNow, tx.Timestamp)
	require.Equal(t, "a koi pond at dusk", tx.Metadata["prompt"])
	require.Equal(t, []string{domain.MultiplierDuration10s}, tx.Metadata["multipliers"])

	account, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	requireDecimal(t, "85", account.Balance)

	history, err := ledger.History(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, tx.ID, history[0].ID)

	require.Contains(t, publisher.types(), domain.EventTransactionRecorded)
}

func TestLedger_ChargeFractionalCost(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)

	tx, err := ledger.Charge(ctx, domain.ChargeRequest{
		UserID:    "user-1",
		Category:  domain.CategoryVideoGeneration,
		Operation: domain.OperationTextToVideo,
	})
	require.NoError(t, err)
	requireDecimal(t, "42.5", tx.BalanceAfter)
}

func TestLedger_ChargeInsufficient(t *testing.T) {
	ledger, publisher := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)

	_, err = ledger.Charge(ctx, domain.ChargeRequest{
		UserID:      "user-1",
		Category:    domain.CategoryVideoGeneration,
		Operation:   domain.OperationImageToVideo,
		Multipliers: []string{domain.MultiplierDuration30s, domain.Multiplier4KQuality},
	})

	var insufficient *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.False(t, insufficient.Result.HasEnoughBalance)
	requireDecimal(t, "135", insufficient.Result.RequiredBalance)
	requireDecimal(t, "85", insufficient.Result.Shortfall)

	account, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	requireDecimal(t, "50", account.Balance)

	require.Contains(t, publisher.types(), domain.EventInsufficientBalance)
}

func TestLedger_ChargeUnknownOperationSkipsStore(t *testing.T) {
	store := mocks.NewMockBalanceStore(t)
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, nil, nil, domain.DefaultLedgerConfig())

	_, err := ledger.Charge(context.Background(), domain.ChargeRequest{
		UserID:    "user-1",
		Category:  domain.CategoryImageGeneration,
		Operation: "text-to-sculpture",
	})
	require.ErrorIs(t, err, domain.ErrUnknownOperation)
	require.NotErrorIs(t, err, domain.ErrInsufficientBalance)

	_, err = ledger.Charge(context.Background(), domain.ChargeRequest{
		UserID:    "user-1",
		Category:  "bogus-category",
		Operation: "x",
	})
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestLedger_ChargeStoreFailure(t *testing.T) {
	store := mocks.NewMockBalanceStore(t)
	cache := mocks.NewMockBalanceCache(t)
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, nil, cache, domain.DefaultLedgerConfig())

	storeErr := errors.New("connection reset")
	store.EXPECT().
		UpdateBalance(mock.Anything, "user-1", mock.Anything).
		Return(nil, storeErr)

	_, err := ledger.Charge(context.Background(), domain.ChargeRequest{
		UserID:    "user-1",
		Category:  domain.CategoryScriptGeneration,
		Operation: domain.OperationBasicScript,
	})
	require.ErrorIs(t, err, storeErr)
}

func TestLedger_ChargeInvalidatesCache(t *testing.T) {
	store := mocks.NewMockBalanceStore(t)
	cache := mocks.NewMockBalanceCache(t)
	publisher := mocks.NewMockEventPublisher(t)
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, publisher, cache, domain.DefaultLedgerConfig())

	account := domain.Account{UserID: "user-1", UserType: domain.UserTypeRegular, Balance: dec("10")}

	store.EXPECT().
		UpdateBalance(mock.Anything, "user-1", mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, fn domain.BalanceUpdateFunc) (*domain.BalanceTransaction, error) {
			return fn(account)
		})
	cache.EXPECT().Delete("user-1").Return()
	publisher.EXPECT().
		Publish(mock.Anything, domain.EventTransactionRecorded, mock.MatchedBy(func(data map[string]interface{}) bool {
			return data["amount"] == "-1" && data["balance_after"] == "9"
		})).
		Return()

	tx, err := ledger.Charge(context.Background(), domain.ChargeRequest{
		UserID:    "user-1",
		Category:  domain.CategoryPromptEnhancement,
		Operation: domain.OperationBasicEnhancement,
	})
	require.NoError(t, err)
	requireDecimal(t, "9", tx.BalanceAfter)
}

func TestLedger_BalanceUsesCache(t *testing.T) {
	store := mocks.NewMockBalanceStore(t)
	cache := mocks.NewMockBalanceCache(t)
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, nil, cache, domain.DefaultLedgerConfig())

	account := domain.Account{UserID: "user-1", Balance: dec("33")}

	cache.EXPECT().Get("user-1").Return(domain.Account{}, false).Once()
	store.EXPECT().GetAccount(mock.Anything, "user-1").Return(&account, nil).Once()
	cache.EXPECT().Set("user-1", account).Return().Once()

	got, err := ledger.Balance(context.Background(), "user-1")
	require.NoError(t, err)
	requireDecimal(t, "33", got.Balance)

	cache.EXPECT().Get("user-1").Return(account, true).Once()

	got, err = ledger.Balance(context.Background(), "user-1")
	require.NoError(t, err)
	requireDecimal(t, "33", got.Balance)
}

func TestLedger_Check(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)

	result, err := ledger.Check(ctx, "user-1", domain.CategoryImageGeneration, domain.OperationTextToImage, domain.MultiplierUltraQuality)
	require.NoError(t, err)
	require.True(t, result.HasEnoughBalance)
	requireDecimal(t, "10", result.RequiredBalance)

	_, err = ledger.Check(ctx, "ghost", domain.CategoryImageGeneration, domain.OperationTextToImage)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = ledger.Check(ctx, "user-1", "bogus-category", "x")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestLedger_Quote(t *testing.T) {
	ledger, _ := newTestLedger(t)

	cost, err := ledger.Quote(context.Background(), domain.CategoryImageGeneration, domain.OperationTextToImage, domain.MultiplierHighQuality)
	require.NoError(t, err)
	requireDecimal(t, "8", cost)

	_, err = ledger.Quote(context.Background(), "bogus-category", "x")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestLedger_Credit(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)

	tests := []struct {
		name      string
		amount    string
		reason    string
		expectErr error
		opType    string
	}{
		{name: "zero amount", amount: "0", expectErr: domain.ErrInvalidAmount},
		{name: "negative amount", amount: "-5", expectErr: domain.ErrInvalidAmount},
		{name: "default reason", amount: "25", opType: domain.DefaultCreditReason},
		{name: "refund", amount: "7.5", reason: "refund", opType: "refund"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := ledger.Balance(ctx, "user-1")
			require.NoError(t, err)

			tx, err := ledger.Credit(ctx, domain.CreditRequest{UserID: "user-1", Amount: dec(tt.amount), Reason: tt.reason})
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.opType, tx.OperationType)
			require.Equal(t, domain.CategoryBalance, tx.OperationCategory)
			requireDecimal(t, tt.amount, tx.Amount)
			require.True(t, tx.BalanceAfter.Equal(before.Balance.Add(dec(tt.amount))))
		})
	}

	_, err = ledger.Credit(ctx, domain.CreditRequest{UserID: "ghost", Amount: dec("1")})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLedger_Execute(t *testing.T) {
	ctx := context.Background()
	request := domain.ChargeRequest{
		UserID:      "user-1",
		Category:    domain.CategoryImageGeneration,
		Operation:   domain.OperationTextToImage,
		Multipliers: []string{domain.MultiplierHighQuality},
		Metadata:    map[string]any{"prompt": "a red bicycle"},
	}

	t.Run("charges after success and merges metadata", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
		require.NoError(t, err)

		tx, err := ledger.Execute(ctx, request, func(context.Context) (map[string]any, error) {
			return map[string]any{"image_url": "https://cdn.example.com/1.png"}, nil
		})
		require.NoError(t, err)
		requireDecimal(t, "-8", tx.Amount)
		require.Equal(t, "a red bicycle", tx.Metadata["prompt"])
		require.Equal(t, "https://cdn.example.com/1.png", tx.Metadata["image_url"])
	})

	t.Run("failed operation leaves balance", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
		require.NoError(t, err)

		opErr := errors.New("upstream timeout")
		_, err = ledger.Execute(ctx, request, func(context.Context) (map[string]any, error) {
			return nil, opErr
		})
		require.ErrorIs(t, err, opErr)

		account, err := ledger.Balance(ctx, "user-1")
		require.NoError(t, err)
		requireDecimal(t, "50", account.Balance)
	})

	t.Run("insufficient balance skips operation", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
		require.NoError(t, err)

		called := false
		_, err = ledger.Execute(ctx, domain.ChargeRequest{
			UserID:      "user-1",
			Category:    domain.CategoryVideoGeneration,
			Operation:   domain.OperationImageToVideo,
			Multipliers: []string{domain.MultiplierDuration30s},
		}, func(context.Context) (map[string]any, error) {
			called = true
			return nil, nil
		})
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
		require.False(t, called)
	})
}

func TestLedger_HistoryLimits(t *testing.T) {
	store := mocks.NewMockBalanceStore(t)
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, nil, nil, domain.LedgerConfig{
		DefaultHistory: 5,
		MaxHistory:     50,
	})
	ctx := context.Background()

	store.EXPECT().GetAccount(mock.Anything, "user-1").Return(&domain.Account{UserID: "user-1"}, nil)
	store.EXPECT().ListTransactions(mock.Anything, "user-1", 5).Return(nil, nil).Once()
	store.EXPECT().ListTransactions(mock.Anything, "user-1", 50).Return(nil, nil).Once()
	store.EXPECT().ListTransactions(mock.Anything, "user-1", 7).Return([]domain.BalanceTransaction{{ID: "tx-1"}}, nil).Once()

	_, err := ledger.History(ctx, "user-1", 0)
	require.NoError(t, err)

	_, err = ledger.History(ctx, "user-1", 1000)
	require.NoError(t, err)

	history, err := ledger.History(ctx, "user-1", 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestLedger_HistoryUnknownAccount(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.History(context.Background(), "ghost", 10)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestLedger_EmptyUserID(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "", domain.UserTypeGuest)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = ledger.Charge(ctx, domain.ChargeRequest{Category: domain.CategoryImageGeneration, Operation: domain.OperationTextToImage})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = ledger.Credit(ctx, domain.CreditRequest{Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestLedger_ConcurrentChargesNeverOverdraw(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)

	const workers = 30

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, chargeErr := ledger.Charge(ctx, domain.ChargeRequest{
				UserID:    "user-1",
				Category:  domain.CategoryImageGeneration,
				Operation: domain.OperationTextToImage,
			})
			if chargeErr == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10, succeeded)

	account, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero())
}

var errConnectionReset = errors.New("connection reset")

// flakyStore fails the first createFailures account creations and every balance update.
type flakyStore struct {
	*memory.Store
	createFailures int
}

func (s *flakyStore) CreateAccount(ctx context.Context, account domain.Account, opening *domain.BalanceTransaction) error {
	if s.createFailures > 0 {
		s.createFailures--
		return errConnectionReset
	}
	return s.Store.CreateAccount(ctx, account, opening)
}

func (s *flakyStore) UpdateBalance(context.Context, string, domain.BalanceUpdateFunc) (*domain.BalanceTransaction, error) {
	return nil, errConnectionReset
}

func TestLedger_ProvisionFailureLeavesNoAccount(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore(0), createFailures: 1}
	cfg := domain.DefaultLedgerConfig()
	cfg.Clock = func() time.Time { return ledgerNow }
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, nil, nil, cfg)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.ErrorIs(t, err, errConnectionReset)

	_, err = ledger.Balance(ctx, "user-1")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	account, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
	require.NoError(t, err)
	requireDecimal(t, "50", account.Balance)

	stored, err := store.GetAccount(ctx, "user-1")
	require.NoError(t, err)
	requireDecimal(t, "50", stored.Balance)
	require.Equal(t, ledgerNow, stored.UpdatedAt)

	history, err := ledger.History(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, domain.OperationSignupGrant, history[0].OperationType)
	requireDecimal(t, "50", history[0].Amount)
}

func TestLedger_MetricLabelsStayBounded(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	t.Run("unknown quotes share one series", func(t *testing.T) {
		metrics.QuotesTotal.Reset()

		for i := range 500 {
			_, err := ledger.Quote(ctx, domain.ToolCategory(fmt.Sprintf("junk-%d", i)), "anything")
			require.ErrorIs(t, err, domain.ErrUnknownCategory)
		}
		_, err := ledger.Quote(ctx, domain.CategoryImageGeneration, "no-such-operation")
		require.ErrorIs(t, err, domain.ErrUnknownOperation)

		require.Equal(t, 1, testutil.CollectAndCount(metrics.QuotesTotal))
		require.InDelta(t, 501, testutil.ToFloat64(
			metrics.QuotesTotal.WithLabelValues(metrics.LabelUnknown, metrics.LabelUnknown, "error"),
		), 0)
	})

	t.Run("free text credit reasons collapse", func(t *testing.T) {
		metrics.CreditsGrantedTotal.Reset()

		_, err := ledger.Provision(ctx, "user-1", domain.UserTypeGuest)
		require.NoError(t, err)

		for i := range 50 {
			_, err := ledger.Credit(ctx, domain.CreditRequest{
				UserID: "user-1",
				Amount: dec("1"),
				Reason: fmt.Sprintf("support ticket %d", i),
			})
			require.NoError(t, err)
		}

		require.Equal(t, 2, testutil.CollectAndCount(metrics.CreditsGrantedTotal))
		require.InDelta(t, 50, testutil.ToFloat64(metrics.CreditsGrantedTotal.WithLabelValues(metrics.ReasonOther)), 1e-9)
	})
}

// racingStore runs afterRead once, after the account was read but before the caller sees it.
type racingStore struct {
	*memory.Store
	afterRead func()
}

func (s *racingStore) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.Store.GetAccount(ctx, userID)
	if hook := s.afterRead; hook != nil {
		s.afterRead = nil
		hook()
	}
	return account, err
}

func TestLedger_CacheFillDoesNotOverwriteNewerCharge(t *testing.T) {
	balanceCache := cache.New[string, domain.Account](10, time.Minute, func() time.Time { return ledgerNow })
	store := &racingStore{Store: memory.NewStore(0)}
	cfg := domain.DefaultLedgerConfig()
	cfg.Clock = func() time.Time { return ledgerNow }
	ledger := domain.NewLedgerService(domain.DefaultCatalog(), store, nil, balanceCache, cfg)
	ctx := context.Background()

	_, err := ledger.Provision(ctx, "user-1", domain.UserTypeRegular)
	require.NoError(t, err)

	store.afterRead = func() {
		_, chargeErr := ledger.Charge(ctx, domain.ChargeRequest{
			UserID:    "user-1",
			Category:  domain.CategoryImageGeneration,
			Operation: domain.OperationTextToImage,
		})
		require.NoError(t, chargeErr)
	}

	raced, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	requireDecimal(t, "100", raced.Balance)

	_, cached := balanceCache.Get("user-1")
	require.False(t, cached, "a read that raced a charge must not be cached")

	fresh, err := ledger.Balance(ctx, "user-1")
	require.NoError(t, err)
	requireDecimal(t, "95", fresh.Balance)

	cachedAccount, cached := balanceCache.Get("user-1")
	require.True(t, cached)
	requireDecimal(t, "95", cachedAccount.Balance)

	result, err := ledger.Check(ctx, "user-1", domain.CategoryImageGeneration, domain.OperationTextToImage)
	require.NoError(t, err)
	requireDecimal(t, "95", result.CurrentBalance)
}
