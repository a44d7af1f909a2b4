package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Auction struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	SellerID         string          `json:"seller_id"`
	BasePrice        decimal.Decimal `json:"base_price"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	MinimumIncrement decimal.Decimal `json:"minimum_increment"`
	LeaderID         string          `json:"leader_id,omitempty"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
	Status           AuctionStatus   `json:"status"`
	// LastBidSequence is the sequence of the newest ledger entry, 0 without bids.
	LastBidSequence uint64 `json:"last_bid_sequence"`
	// EventSequence is the sequence of the newest lifecycle event emitted.
	EventSequence uint64    `json:"event_sequence"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MoneyScale is the number of fractional digits the store keeps for prices,
// increments and bid amounts.
const MoneyScale = 2

// FitsMoneyScale reports whether d can be stored without rounding.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

// MinimumNextBid is the lowest amount the next bid may carry.
func (a *Auction) MinimumNextBid() decimal.Decimal {
	return a.CurrentPrice.Add(a.MinimumIncrement)
}

type AuctionStatus int

const (
	AuctionDraft AuctionStatus = iota
	AuctionScheduled
	AuctionActive
	AuctionExtended
	AuctionClosed
	AuctionCancelled
)

func (s AuctionStatus) String() string {
	switch s {
	case AuctionDraft:
		return "draft"
	case AuctionScheduled:
		return "scheduled"
	case AuctionActive:
		return "active"
	case AuctionExtended:
		return "extended"
	case AuctionClosed:
		return "closed"
	case AuctionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func ParseAuctionStatus(s string) (AuctionStatus, error) {
	for st := AuctionDraft; st <= AuctionCancelled; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return AuctionDraft, fmt.Errorf("unknown auction status %q", s)
}

func (s AuctionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AuctionStatus) UnmarshalText(b []byte) error {
	st, err := ParseAuctionStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// IsOpen reports whether bids may be accepted in this status.
func (s AuctionStatus) IsOpen() bool {
	return s == AuctionActive || s == AuctionExtended
}

func (s AuctionStatus) IsTerminal() bool {
	return s == AuctionClosed || s == AuctionCancelled
}

// IsLive reports whether the auction is owned by a running state machine.
func (s AuctionStatus) IsLive() bool {
	return s == AuctionScheduled || s.IsOpen()
}

// Bid is a ledger entry. It is created once, on acceptance, and never mutated.
type Bid struct {
	AuctionID   string          `json:"auction_id"`
	BidderID    string          `json:"bidder_id"`
	Amount      decimal.Decimal `json:"amount"`
	Sequence    uint64          `json:"sequence"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Data      map[string]interface{} `json:"data"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// OutbidNotice is the message delivered to a bidder who lost the lead.
type OutbidNotice struct {
	Type           string          `json:"type"`
	AuctionID      string          `json:"auction_id"`
	Sequence       uint64          `json:"sequence"`
	YourAmount     decimal.Decimal `json:"your_amount"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	MinimumNextBid decimal.Decimal `json:"minimum_next_bid"`
	EndTime        time.Time       `json:"end_time"`
}

type CommandType string

const (
	CommandSchedule CommandType = "schedule"
	CommandCancel   CommandType = "cancel"
)

// AuctionCommand travels from the admin API to the service hosting the registry.
type AuctionCommand struct {
	Type      CommandType `json:"type"`
	AuctionID string      `json:"auction_id"`
	Reason    string      `json:"reason,omitempty"`
	IssuedAt  time.Time   `json:"issued_at"`
}

type IncrementTier struct {
	From      decimal.Decimal `json:"from"`
	Increment decimal.Decimal `json:"increment"`
}

type BidIncrementRules struct {
	Tiers []IncrementTier `json:"tiers"`
}
