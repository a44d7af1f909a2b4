package websocket

import (
	"context"

	"bidding-engine/internal/domain"
)

// WebSocketNotifier pushes user-addressed messages, such as outbid notices,
// to that user's open connections.
type WebSocketNotifier struct {
	connManager domain.ConnectionManager
}

func NewWebSocketNotifier(connManager domain.ConnectionManager) *WebSocketNotifier {
	return &WebSocketNotifier{connManager: connManager}
}

func (n *WebSocketNotifier) NotifyUser(ctx context.Context, userID string, message interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.connManager.NotifyUser(userID, message)
}
