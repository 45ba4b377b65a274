// internal/api/handler/ledger.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"susu-ledger/internal/api/types"
	"susu-ledger/internal/apperr"
	"susu-ledger/internal/domain"
	"susu-ledger/internal/service"
)

// DefaultTimeout bounds request handling end to end.
const DefaultTimeout = 15 * time.Second

// uidResolver extracts the authenticated caller uid from a request. The
// api package's middleware provides the production implementation.
type uidResolver func(r *http.Request) string

// LedgerHandler handles HTTP requests for the savings ledger operations.
type LedgerHandler struct {
	service service.LedgerService
	uid     uidResolver
	logger  *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(svc service.LedgerService, uid uidResolver, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{service: svc, uid: uid, logger: logger}
}

func (h *LedgerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps the error taxonomy onto HTTP statuses.
func (h *LedgerHandler) respondWithError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	status := http.StatusInternalServerError
	message := "internal server error"

	switch code {
	case apperr.Unauthenticated:
		status = http.StatusUnauthorized
		message = err.Error()
	case apperr.PermissionDenied:
		status = http.StatusForbidden
		message = err.Error()
	case apperr.InvalidArgument:
		status = http.StatusBadRequest
		message = err.Error()
	case apperr.NotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperr.AlreadyExists:
		status = http.StatusConflict
		message = err.Error()
	case apperr.FailedPrecondition:
		status = http.StatusPreconditionFailed
		message = err.Error()
	case apperr.Aborted:
		status = http.StatusConflict
		message = "operation conflicted with a concurrent update, retry"
	default:
		h.logger.Error("unhandled service error", "error", err)
	}

	h.respondWithJSON(w, status, types.ErrorBody{
		Error: types.ErrorDetail{Code: string(code), Message: message},
	})
}

func (h *LedgerHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondWithError(w, apperr.New(apperr.InvalidArgument, "malformed request body"))
		return false
	}
	return true
}

// CreateCustomerRequest represents the request body for customer onboarding.
type CreateCustomerRequest struct {
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	CompanyName      string `json:"companyName"`
	Address          string `json:"address"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	DailyTargetCents int64  `json:"dailyTargetCents"`
	CreditLimitCents int64  `json:"creditLimitCents"`
}

// CreateCustomer handles customer onboarding.
// POST /customers
func (h *LedgerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.CreateCustomer(r.Context(), h.uid(r), service.CreateCustomerInput{
		FullName:         req.FullName,
		Phone:            req.Phone,
		CompanyName:      req.CompanyName,
		Address:          req.Address,
		Email:            req.Email,
		Password:         req.Password,
		DailyTargetCents: req.DailyTargetCents,
		CreditLimitCents: req.CreditLimitCents,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"customerId": result.CustomerID,
		"uid":        result.UID,
		"email":      result.Email,
	})
}

// DailySavingRequest represents the request body for a daily savings payment.
type DailySavingRequest struct {
	CustomerID     string `json:"customerId"`
	AmountCents    int64  `json:"amountCents"`
	TxDateMillis   int64  `json:"txDateMillis"`
	TxDay          string `json:"txDay"`
	Note           string `json:"note"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// RecordDailySaving handles a daily savings payment.
// POST /savings/daily
func (h *LedgerHandler) RecordDailySaving(w http.ResponseWriter, r *http.Request) {
	var req DailySavingRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.RecordDailySaving(r.Context(), h.uid(r), service.DailySavingInput{
		CustomerID:     req.CustomerID,
		AmountCents:    req.AmountCents,
		TxDateMillis:   req.TxDateMillis,
		TxDay:          req.TxDay,
		Note:           req.Note,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"idempotent": result.Idempotent})
}

// DepositRequest represents the request body for a lump-sum deposit.
// TxDateMillis is free-form on purpose: a missing or non-numeric value is
// replaced with server time instead of rejecting the call.
type DepositRequest struct {
	CustomerID     string          `json:"customerId"`
	AmountCents    int64           `json:"amountCents"`
	TxDateMillis   json.RawMessage `json:"txDateMillis"`
	Note           string          `json:"note"`
	IdempotencyKey string          `json:"idempotencyKey"`
}

// RecordDeposit handles a lump-sum deposit.
// POST /deposits
func (h *LedgerHandler) RecordDeposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if !h.decode(w, r, &req) {
		return
	}

	var txDateMillis *int64
	if len(req.TxDateMillis) > 0 {
		if millis, err := strconv.ParseInt(string(req.TxDateMillis), 10, 64); err == nil {
			txDateMillis = &millis
		}
	}

	result, err := h.service.RecordDeposit(r.Context(), h.uid(r), service.DepositInput{
		CustomerID:     req.CustomerID,
		AmountCents:    req.AmountCents,
		TxDateMillis:   txDateMillis,
		Note:           req.Note,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"idempotent": result.Idempotent})
}

// WithdrawRequestBody represents the request body for filing a withdrawal.
type WithdrawRequestBody struct {
	AmountCents int64  `json:"amountCents"`
	Reason      string `json:"reason"`
	CustomerID  string `json:"customerId"`
}

// RequestWithdraw handles filing a withdraw request.
// POST /withdrawals
func (h *LedgerHandler) RequestWithdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequestBody
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.RequestWithdraw(r.Context(), h.uid(r), service.WithdrawInput{
		AmountCents: req.AmountCents,
		Reason:      req.Reason,
		CustomerID:  req.CustomerID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{"requestId": result.RequestID})
}

// ApproveWithdrawRequest represents the request body for an approval.
type ApproveWithdrawRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
}

// ApproveWithdraw handles approving a pending withdraw request.
// POST /withdrawals/{requestID}/approve
func (h *LedgerHandler) ApproveWithdraw(w http.ResponseWriter, r *http.Request) {
	var req ApproveWithdrawRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.ApproveWithdraw(r.Context(), h.uid(r), service.ApproveWithdrawInput{
		RequestID:      chi.URLParam(r, "requestID"),
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"idempotent": result.Idempotent})
}

// RejectWithdrawRequest represents the request body for a rejection.
type RejectWithdrawRequest struct {
	Note string `json:"note"`
}

// RejectWithdraw handles rejecting a pending withdraw request.
// POST /withdrawals/{requestID}/reject
func (h *LedgerHandler) RejectWithdraw(w http.ResponseWriter, r *http.Request) {
	var req RejectWithdrawRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.service.RejectWithdraw(r.Context(), h.uid(r), service.RejectWithdrawInput{
		RequestID: chi.URLParam(r, "requestID"),
		Note:      req.Note,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{})
}

// WalletResponse is the wallet snapshot payload.
type WalletResponse struct {
	CustomerID   string    `json:"customer_id"`
	BalanceCents int64     `json:"balance_cents"`
	Balance      string    `json:"balance"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GetWallet handles the wallet snapshot request.
// GET /wallets/{customerID}
func (h *LedgerHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.GetWallet(r.Context(), h.uid(r), chi.URLParam(r, "customerID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, WalletResponse{
		CustomerID:   wallet.CustomerID,
		BalanceCents: wallet.BalanceCents,
		Balance:      domain.FormatCents(wallet.BalanceCents),
		UpdatedAt:    wallet.UpdatedAt,
	})
}

// LedgerEntryResponse is one ledger entry payload.
type LedgerEntryResponse struct {
	ID           string            `json:"id"`
	Type         domain.EntryType  `json:"type"`
	Direction    domain.Direction  `json:"direction"`
	AmountCents  int64             `json:"amount_cents"`
	Amount       string            `json:"amount"`
	BalanceAfter *int64            `json:"balance_after_cents"`
	TxDate       time.Time         `json:"tx_date"`
	TxDay        *string           `json:"tx_day,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	CreatedByUID string            `json:"created_by_uid"`
	Meta         domain.LedgerMeta `json:"meta"`
}

// ListLedger handles the ledger history request.
// GET /wallets/{customerID}/ledger
func (h *LedgerHandler) ListLedger(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	entries, total, err := h.service.ListLedger(r.Context(), h.uid(r), chi.URLParam(r, "customerID"), limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	data := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, LedgerEntryResponse{
			ID:           e.ID,
			Type:         e.Type,
			Direction:    e.Direction,
			AmountCents:  e.AmountCents,
			Amount:       domain.FormatCents(e.AmountCents),
			BalanceAfter: e.BalanceAfterCents,
			TxDate:       e.TxDate,
			TxDay:        e.TxDay,
			CreatedAt:    e.CreatedAt,
			CreatedByUID: e.CreatedByUID,
			Meta:         e.Meta,
		})
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[LedgerEntryResponse]{
		Data:       data,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

// ListWithdrawRequests handles the review queue request.
// GET /withdrawals?status=PENDING
func (h *LedgerHandler) ListWithdrawRequests(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	var status *domain.WithdrawStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.WithdrawStatus(raw)
		switch st {
		case domain.WithdrawStatusPending, domain.WithdrawStatusApproved, domain.WithdrawStatusRejected:
			status = &st
		default:
			h.respondWithError(w, apperr.New(apperr.InvalidArgument, "status must be PENDING, APPROVED or REJECTED"))
			return
		}
	}

	requests, total, err := h.service.ListWithdrawRequests(r.Context(), h.uid(r), status, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.WithdrawRequest]{
		Data:       requests,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

func pagination(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
