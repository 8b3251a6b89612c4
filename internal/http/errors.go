package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/observability"
)

// Error codes returned in error responses.
const (
	CodeUnknownCategory     = "unknown_category"
	CodeUnknownOperation    = "unknown_operation"
	CodeUnknownUserType     = "unknown_user_type"
	CodeInvalidAmount       = "invalid_amount"
	CodeInvalidRequest      = "invalid_request"
	CodeAccountNotFound     = "account_not_found"
	CodeAccountExists       = "account_exists"
	CodeInsufficientBalance = "insufficient_balance"
	CodeInternal            = "internal_error"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)

	resp := errorResponse{Error: errorBody{Code: code, Message: err.Error()}}

	var insufficient *domain.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		check := newBalanceCheckResponse(insufficient.Result)
		resp.BalanceCheck = &check
	}

	logger := observability.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", observability.String("code", code), observability.Error(err))
	} else {
		logger.Info("request rejected", observability.String("code", code), observability.Error(err))
	}

	writeJSON(w, r, status, resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired, CodeInsufficientBalance
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, CodeUnknownCategory
	case errors.Is(err, domain.ErrUnknownOperation):
		return http.StatusBadRequest, CodeUnknownOperation
	case errors.Is(err, domain.ErrUnknownUserType):
		return http.StatusBadRequest, CodeUnknownUserType
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, CodeInvalidAmount
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, CodeAccountNotFound
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, CodeAccountExists
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
