package sqlstore

//nolint:gochecknoglobals // read-only DDL per dialect
var schemas = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS ledger_accounts (
    user_id VARCHAR(128) PRIMARY KEY,
    user_type VARCHAR(32) NOT NULL,
    balance NUMERIC(20, 4) NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS ledger_transactions (
    seq BIGSERIAL PRIMARY KEY,
    id VARCHAR(64) NOT NULL UNIQUE,
    user_id VARCHAR(128) NOT NULL REFERENCES ledger_accounts(user_id),
    operation_type VARCHAR(64) NOT NULL,
    operation_category VARCHAR(64) NOT NULL,
    amount NUMERIC(20, 4) NOT NULL,
    balance_before NUMERIC(20, 4) NOT NULL,
    balance_after NUMERIC(20, 4) NOT NULL,
    metadata JSONB,
    created_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_transactions_user ON ledger_transactions (user_id, seq DESC)`,
	},
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS ledger_accounts (
    user_id VARCHAR(128) PRIMARY KEY,
    user_type VARCHAR(32) NOT NULL,
    balance DECIMAL(20, 4) NOT NULL DEFAULT 0,
    created_at DATETIME(6) NOT NULL,
    updated_at DATETIME(6) NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS ledger_transactions (
    seq BIGINT AUTO_INCREMENT PRIMARY KEY,
    id VARCHAR(64) NOT NULL UNIQUE,
    user_id VARCHAR(128) NOT NULL,
    operation_type VARCHAR(64) NOT NULL,
    operation_category VARCHAR(64) NOT NULL,
    amount DECIMAL(20, 4) NOT NULL,
    balance_before DECIMAL(20, 4) NOT NULL,
    balance_after DECIMAL(20, 4) NOT NULL,
    metadata JSON,
    created_at DATETIME(6) NOT NULL,
    INDEX idx_ledger_transactions_user (user_id, seq),
    FOREIGN KEY (user_id) REFERENCES ledger_accounts(user_id)
)`,
	},
}
