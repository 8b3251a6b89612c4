package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davidbz/creditledger/internal/domain"
)

// credits renders a decimal as an exact JSON number.
func credits(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type operationRequest struct {
	Category    domain.ToolCategory  `json:"category"`
	Operation   domain.OperationType `json:"operation"`
	Multipliers []string             `json:"multipliers,omitempty"`
}

type chargeRequest struct {
	operationRequest
	Metadata map[string]any `json:"metadata,omitempty"`
}

type creditRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

type provisionRequest struct {
	UserID   string          `json:"user_id"`
	UserType domain.UserType `json:"user_type"`
}

type quoteResponse struct {
	Category    domain.ToolCategory  `json:"category"`
	Operation   domain.OperationType `json:"operation"`
	Multipliers []string             `json:"multipliers,omitempty"`
	Cost        json.Number          `json:"cost"`
}

type accountResponse struct {
	UserID    string          `json:"user_id"`
	UserType  domain.UserType `json:"user_type"`
	Balance   json.Number     `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		UserID:    a.UserID,
		UserType:  a.UserType,
		Balance:   credits(a.Balance),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type balanceCheckResponse struct {
	HasEnoughBalance bool        `json:"has_enough_balance"`
	CurrentBalance   json.Number `json:"current_balance"`
	RequiredBalance  json.Number `json:"required_balance"`
	Shortfall        json.Number `json:"shortfall"`
}

func newBalanceCheckResponse(r domain.BalanceCheckResult) balanceCheckResponse {
	return balanceCheckResponse{
		HasEnoughBalance: r.HasEnoughBalance,
		CurrentBalance:   credits(r.CurrentBalance),
		RequiredBalance:  credits(r.RequiredBalance),
		Shortfall:        credits(r.Shortfall),
	}
}

type transactionResponse struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	OperationType     string         `json:"operation_type"`
	OperationCategory string         `json:"operation_category"`
	Amount            json.Number    `json:"amount"`
	BalanceBefore     json.Number    `json:"balance_before"`
	BalanceAfter      json.Number    `json:"balance_after"`
	Timestamp         time.Time      `json:"timestamp"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

func newTransactionResponse(tx *domain.BalanceTransaction) transactionResponse {
	return transactionResponse{
		ID:                tx.ID,
		UserID:            tx.UserID,
		OperationType:     tx.OperationType,
		OperationCategory: tx.OperationCategory,
		Amount:            credits(tx.Amount),
		BalanceBefore:     credits(tx.BalanceBefore),
		BalanceAfter:      credits(tx.BalanceAfter),
		Timestamp:         tx.Timestamp,
		Metadata:          tx.Metadata,
	}
}

type historyResponse struct {
	UserID       string                `json:"user_id"`
	Transactions []transactionResponse `json:"transactions"`
}

type pricingResponse struct {
	Category    domain.ToolCategory  `json:"category"`
	Operation   domain.OperationType `json:"operation"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	BaseCost    json.Number          `json:"base_cost"`
	Multipliers map[string]string    `json:"multipliers,omitempty"`
}

func newPricingResponse(d domain.PricingDisplay) pricingResponse {
	return pricingResponse{
		Category:    d.Category,
		Operation:   d.Operation,
		Name:        d.Name,
		Description: d.Description,
		BaseCost:    credits(d.BaseCost),
		Multipliers: d.Multipliers,
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error        errorBody             `json:"error"`
	BalanceCheck *balanceCheckResponse `json:"balance_check,omitempty"`
}
