package handlers

import (
	"net/http"

	"bidding-engine/internal/infrastructure/websocket"
	"bidding-engine/pkg/logger"

	"github.com/gorilla/mux"
)

type WebSocketHandlers struct {
	wsHandler *websocket.WebSocketHandler
}

func NewWebSocketHandlers(bidder websocket.Bidder, connManager *websocket.ConnectionManager,
	allowedOrigins []string, log logger.Logger) *WebSocketHandlers {
	return &WebSocketHandlers{
		wsHandler: websocket.NewWebSocketHandler(bidder, connManager, allowedOrigins, log),
	}
}

// Register mounts the auction socket on r.
func (h *WebSocketHandlers) Register(r *mux.Router) {
	r.HandleFunc("/ws/auction/{auctionID}", h.HandleConnection)
}

func (h *WebSocketHandlers) HandleConnection(w http.ResponseWriter, r *http.Request) {
	h.wsHandler.HandleConnection(w, r)
}
