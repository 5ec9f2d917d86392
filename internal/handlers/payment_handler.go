package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"payfam-backend/internal/middleware"
	"payfam-backend/internal/models"
	"payfam-backend/internal/services"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	DueService   *services.DueService
	Notification *services.NotificationService
}

func NewPaymentHandler(dueService *services.DueService, notification *services.NotificationService) *PaymentHandler {
	return &PaymentHandler{DueService: dueService, Notification: notification}
}

// RecordPaymentResponse bundles the appended transaction with the due it
// landed on and an optional receipt message prepared for WhatsApp.
type RecordPaymentResponse struct {
	Transaction *models.PaymentTransaction   `json:"transaction"`
	Due         *models.MonthlyDue           `json:"due"`
	Receipt     *services.NotificationResult `json:"receipt,omitempty"`
}

// RecordPayment appends a payment to a member's ledger. The owning due is
// located or materialized from the payment date. Pass ?receipt=true to also
// prepare the WhatsApp receipt.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	recordedBy, _ := middleware.GetUserIDFromContext(r.Context())

	txn, due, err := h.DueService.RecordPayment(r.Context(), &req, recordedBy)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := &RecordPaymentResponse{Transaction: txn, Due: due}
	if r.URL.Query().Get("receipt") == "true" {
		if receipt, err := h.Notification.SendReceipt(r.Context(), req.MemberID, txn); err == nil {
			resp.Receipt = receipt
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *PaymentHandler) GetDue(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	due, err := h.DueService.GetDue(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !middleware.CanAccessMember(r.Context(), due.MemberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	writeJSON(w, http.StatusOK, due)
}

// ListMemberDues returns a member's dues for ?year=, or the current year
// when the parameter is omitted
func (h *PaymentHandler) ListMemberDues(w http.ResponseWriter, r *http.Request) {
	memberID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if !middleware.CanAccessMember(r.Context(), memberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	dues, err := h.DueService.ListMemberDues(r.Context(), memberID, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dues)
}

// ListPeriodDues returns all dues of one calendar month
func (h *PaymentHandler) ListPeriodDues(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	dues, err := h.DueService.ListPeriodDues(r.Context(), month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dues)
}

// ListDueTransactions returns the ledger entries behind one due
func (h *PaymentHandler) ListDueTransactions(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	due, err := h.DueService.GetDue(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !middleware.CanAccessMember(r.Context(), due.MemberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	txns, err := h.DueService.ListDueTransactions(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

// ListMemberTransactions returns a member's full payment history
func (h *PaymentHandler) ListMemberTransactions(w http.ResponseWriter, r *http.Request) {
	memberID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if !middleware.CanAccessMember(r.Context(), memberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	txns, err := h.DueService.ListMemberTransactions(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txns)
}

// GetPeriodSummary returns org-wide totals for one calendar month
func (h *PaymentHandler) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	summary, err := h.DueService.GetPeriodSummary(r.Context(), month, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// parsePeriod reads month and year query parameters
func parsePeriod(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "month parameter must be 1-12", http.StatusBadRequest)
		return 0, 0, false
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		http.Error(w, "year parameter is required", http.StatusBadRequest)
		return 0, 0, false
	}
	return month, year, true
}
