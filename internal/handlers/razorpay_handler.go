package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"payfam-backend/internal/middleware"
	"payfam-backend/internal/services"
)

type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(s *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

// GetStatus tells clients whether online payments are available
func (h *RazorpayHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enabled": h.Service.IsEnabled(),
		"key_id":  h.Service.KeyID(),
	})
}

// CreateOrder starts an online payment for a member's dues
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !middleware.CanAccessMember(r.Context(), req.MemberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	resp, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// VerifyPayment handles the checkout callback after the gateway confirms
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req services.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !middleware.CanAccessMember(r.Context(), req.MemberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	recordedBy, _ := middleware.GetUserIDFromContext(r.Context())

	txn, due, err := h.Service.VerifyPayment(r.Context(), &req, recordedBy)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, &RecordPaymentResponse{Transaction: txn, Due: due})
}

// Webhook receives gateway events. Signature is checked before anything
// else; unverifiable deliveries are rejected outright.
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		http.Error(w, "Invalid webhook signature", http.StatusUnauthorized)
		return
	}

	if err := h.Service.HandleWebhook(r.Context(), body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
