package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/observability"
)

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests.
type Handler struct {
	ledger  *domain.LedgerService
	catalog *domain.PricingCatalog
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(ledger *domain.LedgerService, catalog *domain.PricingCatalog) *Handler {
	return &Handler{
		ledger:  ledger,
		catalog: catalog,
	}
}

// HandleHealth returns health status.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleCatalog lists the display view of every priced operation.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	displays := h.catalog.CatalogDisplay()

	out := make([]pricingResponse, 0, len(displays))
	for _, d := range displays {
		out = append(out, newPricingResponse(d))
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"operations": out})
}

// HandlePricing returns the display view of one operation.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	category := domain.ToolCategory(chi.URLParam(r, "category"))
	operation := domain.OperationType(chi.URLParam(r, "operation"))

	display, err := h.catalog.GetToolPricingDisplay(category, operation)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, newPricingResponse(display))
}

// HandleQuote prices an operation without touching any account.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	var req operationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := observability.WithCategory(r.Context(), string(req.Category))
	ctx = observability.WithOperation(ctx, string(req.Operation))

	cost, err := h.ledger.Quote(ctx, req.Category, req.Operation, req.Multipliers...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, quoteResponse{
		Category:    req.Category,
		Operation:   req.Operation,
		Multipliers: req.Multipliers,
		Cost:        credits(cost),
	})
}

// HandleProvision creates an account with its free balance.
func (h *Handler) HandleProvision(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.ledger.Provision(r.Context(), req.UserID, req.UserType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, newAccountResponse(account))
}

// HandleBalance returns a user's account.
func (h *Handler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	ctx := observability.WithUserID(r.Context(), userID)

	account, err := h.ledger.Balance(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, newAccountResponse(account))
}

// HandleCheck reports whether a user can afford an operation.
// An insufficient balance is a successful answer, not an error.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req operationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := observability.WithUserID(r.Context(), userID)
	result, err := h.ledger.Check(ctx, userID, req.Category, req.Operation, req.Multipliers...)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, newBalanceCheckResponse(result))
}

// HandleCharge debits an operation's cost.
func (h *Handler) HandleCharge(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.ledger.Charge(r.Context(), domain.ChargeRequest{
		UserID:      userID,
		Category:    req.Category,
		Operation:   req.Operation,
		Multipliers: req.Multipliers,
		Metadata:    req.Metadata,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, newTransactionResponse(tx))
}

// HandleCredit adds credits to a user's balance.
func (h *Handler) HandleCredit(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req creditRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.ledger.Credit(r.Context(), domain.CreditRequest{
		UserID:   userID,
		Amount:   req.Amount,
		Reason:   req.Reason,
		Metadata: req.Metadata,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, newTransactionResponse(tx))
}

// HandleHistory lists a user's recent transactions, newest first.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidRequest))
			return
		}
		limit = parsed
	}

	ctx := observability.WithUserID(r.Context(), userID)
	transactions, err := h.ledger.History(ctx, userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, newTransactionResponse(&transactions[i]))
	}

	writeJSON(w, r, http.StatusOK, historyResponse{UserID: userID, Transactions: out})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %w", domain.ErrInvalidRequest, err)
	}
	return nil
}
