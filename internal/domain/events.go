package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	// EventSnapshot is synthetic: the first event a new subscriber receives.
	EventSnapshot         EventType = "snapshot"
	EventStarted          EventType = "started"
	EventBidAccepted      EventType = "bid_accepted"
	EventDeadlineExtended EventType = "deadline_extended"
	EventClosed           EventType = "closed"
	EventCancelled        EventType = "cancelled"
)

// LifecycleEvent is one ordered state change of an auction. Besides the
// change itself it carries the auction state right after the change, so any
// event can stand in for a snapshot.
type LifecycleEvent struct {
	Type      EventType `json:"type"`
	AuctionID string    `json:"auction_id"`
	Sequence  uint64    `json:"sequence"`

	Status           AuctionStatus   `json:"status"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	MinimumIncrement decimal.Decimal `json:"minimum_increment"`
	LeaderID         string          `json:"leader_id,omitempty"`
	EndTime          time.Time       `json:"end_time"`

	Bid         *Bid   `json:"bid,omitempty"`
	PreviousBid *Bid   `json:"previous_bid,omitempty"`
	WinningBid  *Bid   `json:"winning_bid,omitempty"`
	Reason      string `json:"reason,omitempty"`

	// Durable is set once the transition behind the event has been persisted.
	Durable    bool      `json:"durable"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e LifecycleEvent) IsTerminal() bool {
	return e.Type == EventClosed || e.Type == EventCancelled
}

// MinimumNextBid is the lowest acceptable bid as of this event.
func (e LifecycleEvent) MinimumNextBid() decimal.Decimal {
	return e.CurrentPrice.Add(e.MinimumIncrement)
}

// AsSnapshot turns the event into a snapshot at the same sequence.
func (e LifecycleEvent) AsSnapshot() LifecycleEvent {
	e.Type = EventSnapshot
	e.Bid = nil
	e.PreviousBid = nil
	e.Reason = ""
	return e
}
