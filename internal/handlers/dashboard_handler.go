package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"payfam-backend/internal/services"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DashboardHandler serves the current-month overview and pushes refreshed
// stats to connected WebSocket clients every 30 seconds.
type DashboardHandler struct {
	Service    *services.DueService
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
}

func NewDashboardHandler(s *services.DueService) *DashboardHandler {
	h := &DashboardHandler{
		Service: s,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcastLoop()
	return h
}

// GetStats returns the dashboard aggregates for the current month
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetDashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// LiveStats upgrades the connection and keeps it subscribed to stat pushes
func (h *DashboardHandler) LiveStats(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	// Send the current snapshot before registering the connection: the
	// broadcast loop must not write to conn while this write is in flight,
	// since websocket connections allow only one concurrent writer
	if stats, err := h.Service.GetDashboardStats(r.Context()); err == nil {
		conn.WriteJSON(stats)
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}

func (h *DashboardHandler) broadcastLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		h.clientsMux.Lock()
		n := len(h.clients)
		h.clientsMux.Unlock()
		if n == 0 {
			continue
		}

		ctx, cancel := contextWithTimeout()
		stats, err := h.Service.GetDashboardStats(ctx)
		cancel()
		if err != nil {
			continue
		}

		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(stats); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}
