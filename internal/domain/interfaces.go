package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Repository interfaces
type AuctionRepository interface {
	CreateAuction(ctx context.Context, auction *Auction) error
	// GetAuction returns ErrAuctionNotFound when no row exists.
	GetAuction(ctx context.Context, auctionID string) (*Auction, error)
	SaveAuctionState(ctx context.Context, auction *Auction) error
	// GetLiveAuctions returns auctions in Scheduled, Active or Extended.
	GetLiveAuctions(ctx context.Context) ([]*Auction, error)
}

type BidRepository interface {
	// SaveBid is idempotent on (auction id, sequence).
	SaveBid(ctx context.Context, bid *Bid) error
	// GetBids returns the ledger in ascending sequence order.
	GetBids(ctx context.Context, auctionID string) ([]Bid, error)
}

type NotificationRepository interface {
	SaveNotification(ctx context.Context, n *Notification) error
}

type EventArchive interface {
	// SaveEvent is idempotent on (auction id, sequence).
	SaveEvent(ctx context.Context, event *LifecycleEvent) error
}

type SchedulerRepository interface {
	CreateJob(ctx context.Context, job *ScheduledJob) error
	GetPendingJobs(ctx context.Context, before time.Time) ([]*ScheduledJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status JobStatus) error
	CancelJobsForAuction(ctx context.Context, auctionID string, jobType JobType) error
}

// StatePersister is the system of record every accepted transition is
// written to.
type StatePersister interface {
	PersistAuctionState(ctx context.Context, auction *Auction) error
	PersistBid(ctx context.Context, bid *Bid) error
}

// Cache interfaces
type AuctionStateCache interface {
	SetSnapshot(ctx context.Context, auction *Auction) error
	// GetSnapshot returns ErrAuctionNotFound on a cache miss.
	GetSnapshot(ctx context.Context, auctionID string) (*Auction, error)
}

// Event interfaces
type EventPublisher interface {
	PublishLifecycleEvent(ctx context.Context, event *LifecycleEvent) error
}

type EventSubscriber interface {
	SubscribeToLifecycleEvents(ctx context.Context, handler EventHandler) error
}

type EventHandler func(event *LifecycleEvent) error

type CommandPublisher interface {
	PublishCommand(ctx context.Context, cmd *AuctionCommand) error
}

type CommandSubscriber interface {
	SubscribeToCommands(ctx context.Context, handler CommandHandler) error
}

type CommandHandler func(cmd *AuctionCommand) error

// Notification interfaces
type UserNotifier interface {
	NotifyUser(ctx context.Context, userID string, message interface{}) error
}

// IncrementRules supplies the default minimum increment for new auctions.
type IncrementRules interface {
	GetIncrementRule(basePrice decimal.Decimal) decimal.Decimal
	LoadRules(ctx context.Context) error
}

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	UserID() string
	AuctionID() string
}

type ConnectionManager interface {
	RegisterConnection(userID, auctionID string, conn WebSocketConnection) error
	UnregisterConnection(userID, auctionID string, conn WebSocketConnection) error
	GetConnectionsForAuction(auctionID string) []WebSocketConnection
	GetConnectionsForUser(userID string) []WebSocketConnection
	NotifyUser(userID string, message interface{}) error
	CloseAndUnregisterConnections(auctionID string) error
}
