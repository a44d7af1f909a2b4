package websocket

import (
	"errors"
	"slices"
	"sync"

	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"

	"go.uber.org/multierr"
)

// ConnectionManager indexes open connections by auction and by user. A user
// may hold several connections, on one auction or on many.
type ConnectionManager struct {
	mutex     sync.RWMutex
	byAuction map[string][]domain.WebSocketConnection
	byUser    map[string][]domain.WebSocketConnection
	log       logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		byAuction: make(map[string][]domain.WebSocketConnection),
		byUser:    make(map[string][]domain.WebSocketConnection),
		log:       log,
	}
}

func (cm *ConnectionManager) RegisterConnection(userID, auctionID string, conn domain.WebSocketConnection) error {
	if userID == "" || auctionID == "" || conn == nil {
		return errors.New("connection needs a user, an auction and a socket")
	}

	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if slices.Contains(cm.byAuction[auctionID], conn) {
		return nil
	}
	cm.byAuction[auctionID] = append(cm.byAuction[auctionID], conn)
	cm.byUser[userID] = append(cm.byUser[userID], conn)

	cm.log.Debug("Connection registered", "user_id", userID, "auction_id", auctionID)
	return nil
}

func (cm *ConnectionManager) UnregisterConnection(userID, auctionID string, conn domain.WebSocketConnection) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	removeConn(cm.byAuction, auctionID, conn)
	removeConn(cm.byUser, userID, conn)

	cm.log.Debug("Connection unregistered", "user_id", userID, "auction_id", auctionID)
	return nil
}

// CloseAndUnregisterConnections closes every connection watching auctionID.
func (cm *ConnectionManager) CloseAndUnregisterConnections(auctionID string) error {
	cm.mutex.Lock()
	conns := cm.byAuction[auctionID]
	delete(cm.byAuction, auctionID)
	for _, conn := range conns {
		removeConn(cm.byUser, conn.UserID(), conn)
	}
	cm.mutex.Unlock()

	var errs error
	for _, conn := range conns {
		errs = multierr.Append(errs, conn.Close())
	}

	cm.log.Info("Connections closed for auction", "auction_id", auctionID, "count", len(conns))
	return errs
}

func (cm *ConnectionManager) GetConnectionsForAuction(auctionID string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return slices.Clone(cm.byAuction[auctionID])
}

func (cm *ConnectionManager) GetConnectionsForUser(userID string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return slices.Clone(cm.byUser[userID])
}

// NotifyUser sends message to every connection of userID. A user without
// connections is not an error; the notice is simply not pushed.
func (cm *ConnectionManager) NotifyUser(userID string, message interface{}) error {
	var errs error
	for _, conn := range cm.GetConnectionsForUser(userID) {
		if err := conn.Send(message); err != nil {
			cm.log.Warn("Failed to send message", "user_id", userID, "auction_id", conn.AuctionID(), "error", err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func removeConn(index map[string][]domain.WebSocketConnection, key string, conn domain.WebSocketConnection) {
	conns := slices.DeleteFunc(index[key], func(c domain.WebSocketConnection) bool {
		return c == conn
	})
	if len(conns) == 0 {
		delete(index, key)
		return
	}
	index[key] = conns
}
