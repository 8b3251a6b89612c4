package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ToolCategory groups priceable operations.
type ToolCategory string

// OperationType identifies a priceable action within a category.
type OperationType string

// UserType tags the kind of account a user holds.
type UserType string

const (
	CategoryImageGeneration   ToolCategory = "image-generation"
	CategoryVideoGeneration   ToolCategory = "video-generation"
	CategoryScriptGeneration  ToolCategory = "script-generation"
	CategoryPromptEnhancement ToolCategory = "prompt-enhancement"
)

const (
	OperationTextToImage      OperationType = "text-to-image"
	OperationImageToImage     OperationType = "image-to-image"
	OperationTextToVideo      OperationType = "text-to-video"
	OperationImageToVideo     OperationType = "image-to-video"
	OperationBasicScript      OperationType = "basic-script"
	OperationBasicEnhancement OperationType = "basic-enhancement"
	OperationVeo3Enhancement  OperationType = "veo3-enhancement"
)

const (
	UserTypeGuest   UserType = "guest"
	UserTypeRegular UserType = "regular"
	UserTypeDemo    UserType = "demo"
)

// ToolOperation describes one priceable action.
type ToolOperation struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Description     string                     `json:"description"`
	BaseCost        decimal.Decimal            `json:"base_cost"`
	CostMultipliers map[string]decimal.Decimal `json:"cost_multipliers,omitempty"`
}

// BalanceCheckResult reports whether a balance covers an operation.
type BalanceCheckResult struct {
	HasEnoughBalance bool            `json:"has_enough_balance"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	RequiredBalance  decimal.Decimal `json:"required_balance"`
	Shortfall        decimal.Decimal `json:"shortfall"`
}

// BalanceTransaction is an immutable audit record of a balance change.
type BalanceTransaction struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	OperationType     string          `json:"operation_type"`
	OperationCategory string          `json:"operation_category"`
	Amount            decimal.Decimal `json:"amount"`
	BalanceBefore     decimal.Decimal `json:"balance_before"`
	BalanceAfter      decimal.Decimal `json:"balance_after"`
	Timestamp         time.Time       `json:"timestamp"`
	Metadata          map[string]any  `json:"metadata,omitempty"`
}

// Account is the persisted balance of a single user.
type Account struct {
	UserID    string          `json:"user_id"`
	UserType  UserType        `json:"user_type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PricingDisplay is the UI-facing view of a catalog entry.
type PricingDisplay struct {
	Category    ToolCategory      `json:"category"`
	Operation   OperationType     `json:"operation"`
	Name        string            `json:"name"`
	BaseCost    decimal.Decimal   `json:"base_cost"`
	Description string            `json:"description"`
	Multipliers map[string]string `json:"multipliers,omitempty"`
}

// ChargeRequest describes a paid operation to debit from a user's balance.
type ChargeRequest struct {
	UserID      string
	Category    ToolCategory
	Operation   OperationType
	Multipliers []string
	Metadata    map[string]any
}

// CreditRequest describes a top-up or refund.
type CreditRequest struct {
	UserID   string
	Amount   decimal.Decimal
	Reason   string
	Metadata map[string]any
}
