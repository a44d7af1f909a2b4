package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"bidding-engine/internal/domain"
	"bidding-engine/internal/services"
	"bidding-engine/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Message types of the auction socket protocol.
const (
	MessagePlaceBid     = "place_bid"
	MessagePing         = "ping"
	MessagePong         = "pong"
	MessageAuctionEvent = "auction_event"
	MessageBidResult    = "bid_result"
	MessageError        = "error"
)

// Bidder is what a socket needs from the bidding side.
type Bidder interface {
	PlaceBid(ctx context.Context, auctionID, userID string, amount decimal.Decimal) (domain.Bid, error)
	Subscribe(ctx context.Context, auctionID string) (*services.Subscription, error)
}

// ClientMessage is a frame sent by the browser.
type ClientMessage struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

type EventMessage struct {
	Type  string                `json:"type"`
	Event domain.LifecycleEvent `json:"event"`
}

type BidResultMessage struct {
	Type           string           `json:"type"`
	RequestID      string           `json:"request_id,omitempty"`
	Accepted       bool             `json:"accepted"`
	Bid            *domain.Bid      `json:"bid,omitempty"`
	Reason         string           `json:"reason,omitempty"`
	Message        string           `json:"message,omitempty"`
	MinimumNextBid *decimal.Decimal `json:"minimum_next_bid,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// WebSocketHandler serves /ws/auction/{auctionID}. A socket first receives a
// snapshot of the auction, then every lifecycle event, and may place bids.
type WebSocketHandler struct {
	bidder      Bidder
	connManager domain.ConnectionManager
	upgrader    websocket.Upgrader
	log         logger.Logger
}

func NewWebSocketHandler(bidder Bidder, connManager domain.ConnectionManager, allowedOrigins []string, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		bidder:      bidder,
		connManager: connManager,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		log: log,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["auctionID"]
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id required", http.StatusBadRequest)
		return
	}

	// Subscribing before the upgrade means an unknown auction is refused with
	// a plain 404.
	sub, err := h.bidder.Subscribe(r.Context(), auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAuction) {
			http.Error(w, "auction not found", http.StatusNotFound)
			return
		}
		h.log.Error("Failed to subscribe to auction", "auction_id", auctionID, "error", err)
		http.Error(w, "failed to subscribe", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Close()
		h.log.Error("Failed to upgrade connection", "auction_id", auctionID, "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	wsConn := NewWebSocketConnection(conn, userID, auctionID, h.log)
	if err := h.connManager.RegisterConnection(userID, auctionID, wsConn); err != nil {
		sub.Close()
		_ = wsConn.Close()
		h.log.Error("Failed to register connection", "error", err)
		return
	}

	go h.writeEvents(wsConn, sub)
	go h.handleMessages(wsConn, sub)
}

// writeEvents forwards the subscription to the socket. A subscription that
// ends, for instance because the auction was reaped, closes the socket.
func (h *WebSocketHandler) writeEvents(conn *WebSocketConnection, sub *services.Subscription) {
	defer conn.Close()

	for event := range sub.Events() {
		if err := conn.Send(EventMessage{Type: MessageAuctionEvent, Event: event}); err != nil {
			h.log.Debug("Failed to write event", "user_id", conn.UserID(), "auction_id", conn.AuctionID(), "error", err)
			return
		}
	}
}

func (h *WebSocketHandler) handleMessages(conn *WebSocketConnection, sub *services.Subscription) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		sub.Close()
		_ = h.connManager.UnregisterConnection(conn.UserID(), conn.AuctionID(), conn)
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Connection closed unexpectedly", "user_id", conn.UserID(), "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = conn.Send(ErrorMessage{Type: MessageError, Message: "malformed message"})
			continue
		}

		switch msg.Type {
		case MessagePlaceBid:
			h.handleBidMessage(ctx, conn, msg)
		case MessagePing:
			_ = conn.Send(map[string]string{"type": MessagePong})
		default:
			_ = conn.Send(ErrorMessage{Type: MessageError, Message: "unknown message type"})
		}
	}
}

func (h *WebSocketHandler) handleBidMessage(ctx context.Context, conn *WebSocketConnection, msg ClientMessage) {
	result := BidResultMessage{Type: MessageBidResult, RequestID: msg.RequestID}

	bid, err := h.bidder.PlaceBid(ctx, conn.AuctionID(), conn.UserID(), msg.Amount)
	if err != nil {
		result.Reason = domain.RejectionReason(err)
		result.Message = err.Error()
		var bidErr *domain.BidError
		if errors.As(err, &bidErr) && errors.Is(err, domain.ErrBidTooLow) {
			minimum := bidErr.Minimum
			result.MinimumNextBid = &minimum
		}
	} else {
		result.Accepted = true
		result.Bid = &bid
	}

	if err := conn.Send(result); err != nil {
		h.log.Debug("Failed to write bid result", "user_id", conn.UserID(), "error", err)
	}
}

// WebSocketConnection serializes writes to one gorilla connection, which
// allows a single concurrent writer only.
type WebSocketConnection struct {
	conn      *websocket.Conn
	userID    string
	auctionID string
	log       logger.Logger

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func NewWebSocketConnection(conn *websocket.Conn, userID, auctionID string, log logger.Logger) *WebSocketConnection {
	return &WebSocketConnection{
		conn:      conn,
		userID:    userID,
		auctionID: auctionID,
		log:       log,
	}
}

func (wsc *WebSocketConnection) Send(message interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()

	if err := wsc.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return wsc.conn.WriteJSON(message)
}

func (wsc *WebSocketConnection) Close() error {
	var err error
	wsc.closeOnce.Do(func() {
		wsc.writeMu.Lock()
		_ = wsc.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if werr := wsc.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); werr != nil {
			wsc.log.Debug("Failed to send close frame", "user_id", wsc.userID, "auction_id", wsc.auctionID, "error", werr)
		}
		wsc.writeMu.Unlock()
		err = wsc.conn.Close()
	})
	return err
}

func (wsc *WebSocketConnection) UserID() string {
	return wsc.userID
}

func (wsc *WebSocketConnection) AuctionID() string {
	return wsc.auctionID
}
