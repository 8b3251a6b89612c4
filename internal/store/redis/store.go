package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/observability"
)

const (
	accountKeyPrefix     = "ledger:account:"
	transactionKeyPrefix = "ledger:transactions:"
	defaultMaxRetries    = 50

	fieldUserType  = "user_type"
	fieldBalance   = "balance"
	fieldCreatedAt = "created_at"
	fieldUpdatedAt = "updated_at"
)

// ErrTooManyRetries is returned when optimistic updates keep colliding.
var ErrTooManyRetries = errors.New("balance update retries exhausted")

// Store implements domain.BalanceStore on Redis.
// Accounts are hashes; transactions are a capped JSON list per user, newest first.
type Store struct {
	client     *redis.Client
	maxHistory int
	maxRetries int
}

// NewStore creates a new Redis balance store. maxHistory caps the stored
// transactions per user (0 keeps all); maxRetries bounds WATCH conflicts.
func NewStore(client *redis.Client, maxHistory, maxRetries int) *Store {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Store{
		client:     client,
		maxHistory: maxHistory,
		maxRetries: maxRetries,
	}
}

func accountKey(userID string) string {
	return accountKeyPrefix + userID
}

func transactionsKey(userID string) string {
	return transactionKeyPrefix + userID
}

// CreateAccount stores a new account hash and its opening transaction in one MULTI/EXEC.
func (s *Store) CreateAccount(ctx context.Context, account domain.Account, opening *domain.BalanceTransaction) error {
	if account.UserID == "" {
		return errors.New("user id cannot be empty")
	}

	key := accountKey(account.UserID)
	historyKey := transactionsKey(account.UserID)

	var payload []byte
	if opening != nil {
		encoded, err := json.Marshal(opening)
		if err != nil {
			return fmt.Errorf("failed to encode transaction: %w", err)
		}
		payload = encoded
		account.Balance = opening.BalanceAfter
		account.UpdatedAt = opening.Timestamp
	}

	err := s.withRetries(ctx, key, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to check account: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.UserID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldUserType, string(account.UserType),
				fieldBalance, account.Balance.String(),
				fieldCreatedAt, account.CreatedAt.UTC().Format(time.RFC3339Nano),
				fieldUpdatedAt, account.UpdatedAt.UTC().Format(time.RFC3339Nano),
			)
			if payload != nil {
				pipe.Del(ctx, historyKey)
				pipe.LPush(ctx, historyKey, payload)
			}
			return nil
		})
		return err
	})
	if err != nil {
		return err
	}

	observability.FromContext(ctx).Debug("account stored in redis", observability.String("key", key))
	return nil
}

// GetAccount loads an account hash.
func (s *Store) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	fields, err := s.client.HGetAll(ctx, accountKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return decodeAccount(userID, fields)
}

// UpdateBalance runs fn under WATCH on the account hash and commits with MULTI/EXEC.
// fn may run more than once when concurrent writers collide.
func (s *Store) UpdateBalance(
	ctx context.Context,
	userID string,
	fn domain.BalanceUpdateFunc,
) (*domain.BalanceTransaction, error) {
	key := accountKey(userID)
	historyKey := transactionsKey(userID)

	var committed *domain.BalanceTransaction

	err := s.withRetries(ctx, key, func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}

		account, err := decodeAccount(userID, fields)
		if err != nil {
			return err
		}

		record, err := fn(*account)
		if err != nil {
			return err
		}
		if record == nil {
			return errors.New("balance update produced no transaction")
		}

		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode transaction: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fieldBalance, record.BalanceAfter.String(),
				fieldUpdatedAt, record.Timestamp.UTC().Format(time.RFC3339Nano),
			)
			pipe.LPush(ctx, historyKey, payload)
			if s.maxHistory > 0 {
				pipe.LTrim(ctx, historyKey, 0, int64(s.maxHistory-1))
			}
			return nil
		})
		if err != nil {
			return err
		}

		committed = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return committed, nil
}

// ListTransactions returns up to limit transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string, limit int) ([]domain.BalanceTransaction, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	payloads, err := s.client.LRange(ctx, transactionsKey(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := make([]domain.BalanceTransaction, 0, len(payloads))
	for _, payload := range payloads {
		var tx domain.BalanceTransaction
		if err := json.Unmarshal([]byte(payload), &tx); err != nil {
			observability.FromContext(ctx).Warn("skipping unreadable transaction",
				observability.String("user_id", userID),
				observability.Error(err))
			continue
		}
		out = append(out, tx)
	}

	return out, nil
}

func (s *Store) withRetries(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			observability.FromContext(ctx).Debug("redis watch conflict, retrying",
				observability.String("key", key),
				observability.Int("attempt", attempt+1))
			continue
		}
		return err
	}

	return fmt.Errorf("%w: %s", ErrTooManyRetries, key)
}

func decodeAccount(userID string, fields map[string]string) (*domain.Account, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, userID)
	}

	balance, err := decimal.NewFromString(fields[fieldBalance])
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for %s: %w", userID, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields[fieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at for %s: %w", userID, err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, fields[fieldUpdatedAt])
	if err != nil {
		return nil, fmt.Errorf("corrupt updated_at for %s: %w", userID, err)
	}

	return &domain.Account{
		UserID:    userID,
		UserType:  domain.UserType(fields[fieldUserType]),
		Balance:   balance,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
