package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"payfam-backend/internal/middleware"
	"payfam-backend/internal/services"

	"github.com/gorilla/mux"
)

type MessageHandler struct {
	Service *services.NotificationService
}

func NewMessageHandler(s *services.NotificationService) *MessageHandler {
	return &MessageHandler{Service: s}
}

// SendReminder prepares a WhatsApp payment reminder for a member's period
func (h *MessageHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	memberID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.SendReminder(r.Context(), memberID, req.Month, req.Year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListMemberMessages returns a member's message history
func (h *MessageHandler) ListMemberMessages(w http.ResponseWriter, r *http.Request) {
	memberID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if !middleware.CanAccessMember(r.Context(), memberID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	logs, err := h.Service.ListMemberMessages(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
