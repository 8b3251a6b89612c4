package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/observability"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	transactionColumns   = "id, user_id, operation_type, operation_category, amount, balance_before, balance_after, metadata, created_at"
	accountColumns       = "user_id, user_type, balance, created_at, updated_at"
	selectAccountForLock = "SELECT " + accountColumns + " FROM ledger_accounts WHERE user_id = ? FOR UPDATE"
)

type accountRow struct {
	UserID    string          `db:"user_id"`
	UserType  string          `db:"user_type"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r accountRow) toDomain() domain.Account {
	return domain.Account{
		UserID:    r.UserID,
		UserType:  domain.UserType(r.UserType),
		Balance:   r.Balance,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type transactionRow struct {
	ID                string          `db:"id"`
	UserID            string          `db:"user_id"`
	OperationType     string          `db:"operation_type"`
	OperationCategory string          `db:"operation_category"`
	Amount            decimal.Decimal `db:"amount"`
	BalanceBefore     decimal.Decimal `db:"balance_before"`
	BalanceAfter      decimal.Decimal `db:"balance_after"`
	Metadata          Metadata        `db:"metadata"`
	CreatedAt         time.Time       `db:"created_at"`
}

func (r transactionRow) toDomain() domain.BalanceTransaction {
	return domain.BalanceTransaction{
		ID:                r.ID,
		UserID:            r.UserID,
		OperationType:     r.OperationType,
		OperationCategory: r.OperationCategory,
		Amount:            r.Amount,
		BalanceBefore:     r.BalanceBefore,
		BalanceAfter:      r.BalanceAfter,
		Timestamp:         r.CreatedAt,
		Metadata:          r.Metadata,
	}
}

// Store implements domain.BalanceStore on postgres or mysql.
// Balance updates lock the account row with SELECT ... FOR UPDATE.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new SQL balance store.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CreateAccount inserts a new account row and its opening transaction in one SQL transaction.
func (s *Store) CreateAccount(ctx context.Context, account domain.Account, opening *domain.BalanceTransaction) error {
	if account.UserID == "" {
		return errors.New("user id cannot be empty")
	}

	if opening != nil {
		account.Balance = opening.BalanceAfter
		account.UpdatedAt = opening.Timestamp
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	_, err = tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO ledger_accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?)`),
		account.UserID,
		string(account.UserType),
		account.Balance,
		account.CreatedAt.UTC(),
		account.UpdatedAt.UTC(),
	)
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.UserID)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	if opening != nil {
		if err := insertTransaction(ctx, tx, opening); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit account: %w", err)
	}

	return nil
}

// GetAccount loads an account row.
func (s *Store) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	var row accountRow
	query := s.db.Rebind(`SELECT ` + accountColumns + ` FROM ledger_accounts WHERE user_id = ?`)
	if err := s.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	account := row.toDomain()
	return &account, nil
}

// UpdateBalance locks the account row, runs fn, and writes the new balance and the record in one transaction.
func (s *Store) UpdateBalance(
	ctx context.Context,
	userID string,
	fn domain.BalanceUpdateFunc,
) (*domain.BalanceTransaction, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	var row accountRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(selectAccountForLock), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, userID)
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	record, err := fn(row.toDomain())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("balance update produced no transaction")
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE ledger_accounts SET balance = ?, updated_at = ? WHERE user_id = ?`),
		record.BalanceAfter, record.Timestamp.UTC(), userID,
	); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := insertTransaction(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit balance update: %w", err)
	}

	return record, nil
}

// ListTransactions returns up to limit transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string, limit int) ([]domain.BalanceTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE user_id = ? ORDER BY seq DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []transactionRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := make([]domain.BalanceTransaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, record *domain.BalanceTransaction) error {
	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO ledger_transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		record.ID,
		record.UserID,
		record.OperationType,
		record.OperationCategory,
		record.Amount,
		record.BalanceBefore,
		record.BalanceAfter,
		Metadata(record.Metadata),
		record.Timestamp.UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		observability.FromContext(ctx).Warn("rollback failed", observability.Error(err))
	}
}

func isDuplicate(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return false
}
