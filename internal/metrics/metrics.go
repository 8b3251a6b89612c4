package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Balance check outcomes.
const (
	CheckSufficient   = "sufficient"
	CheckInsufficient = "insufficient"
)

// LabelUnknown replaces label values that did not resolve to a catalog entry.
const LabelUnknown = "unknown"

// Credit reasons kept as label values; anything else is counted as ReasonOther.
const (
	ReasonSignupGrant = "signup-grant"
	ReasonTopUp       = "top-up"
	ReasonRefund      = "refund"
	ReasonOther       = "other"
)

// CreditReason maps a free-text credit reason onto the closed label set.
func CreditReason(reason string) string {
	switch reason {
	case ReasonSignupGrant, ReasonTopUp, ReasonRefund:
		return reason
	default:
		return ReasonOther
	}
}

var (
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_quotes_total",
			Help: "Total number of operation cost quotes",
		},
		[]string{"category", "operation", "status"},
	)

	BalanceChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_balance_checks_total",
			Help: "Total number of balance checks by outcome",
		},
		[]string{"category", "operation", "result"},
	)

	CreditsChargedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_credits_charged_total",
			Help: "Total credits debited for operations",
		},
		[]string{"category", "operation"},
	)

	CreditsGrantedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_credits_granted_total",
			Help: "Total credits added through grants and top-ups",
		},
		[]string{"reason"},
	)

	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_transactions_total",
			Help: "Total number of recorded balance transactions",
		},
		[]string{"kind"},
	)

	InsufficientBalanceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_insufficient_balance_total",
			Help: "Total number of charges rejected for insufficient balance",
		},
		[]string{"category", "operation"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditledger_balance_cache_lookups_total",
			Help: "Balance cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordQuote counts a quote. Callers pass LabelUnknown for lookups that failed.
func RecordQuote(category, operation, status string) {
	QuotesTotal.WithLabelValues(category, operation, status).Inc()
}

func RecordBalanceCheck(category, operation string, sufficient bool) {
	result := CheckInsufficient
	if sufficient {
		result = CheckSufficient
	}
	BalanceChecksTotal.WithLabelValues(category, operation, result).Inc()
}

// RecordCharge adds a debit. Prometheus counters are float64, so the exact amount is approximated here only.
func RecordCharge(category, operation string, amount decimal.Decimal) {
	CreditsChargedTotal.WithLabelValues(category, operation).Add(amount.Abs().InexactFloat64())
	TransactionsTotal.WithLabelValues("debit").Inc()
}

func RecordCredit(reason string, amount decimal.Decimal) {
	CreditsGrantedTotal.WithLabelValues(CreditReason(reason)).Add(amount.Abs().InexactFloat64())
	TransactionsTotal.WithLabelValues("credit").Inc()
}

func RecordInsufficient(category, operation string) {
	InsufficientBalanceTotal.WithLabelValues(category, operation).Inc()
}

func RecordCacheHit() {
	CacheLookupsTotal.WithLabelValues("hit").Inc()
}

func RecordCacheMiss() {
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}
