package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bid rejection kinds. Every rejection returned by the engine matches exactly
// one of these with errors.Is.
var (
	ErrBidTooLow      = errors.New("bid too low")
	ErrAuctionNotOpen = errors.New("auction not open")
	ErrSelfBid        = errors.New("bidder already holds the highest bid")
	ErrUnknownAuction = errors.New("unknown auction")
	ErrInvalidBid     = errors.New("invalid bid")
	// ErrSequenceConflict means the ledger was asked to break its ordering.
	// It is a defect, never a normal rejection.
	ErrSequenceConflict = errors.New("bid sequence conflict")
	// ErrAuctionHalted is returned for every mutation of an auction that hit a
	// sequence conflict. Reads keep working.
	ErrAuctionHalted = errors.New("auction halted pending operator intervention")
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrInvalidAuction  = errors.New("invalid auction")
)

// BidError describes a rejected bid or lifecycle operation.
type BidError struct {
	Kind      error
	AuctionID string
	BidderID  string
	Amount    decimal.Decimal
	// Minimum is the lowest acceptable amount, set for ErrBidTooLow.
	Minimum decimal.Decimal
	Status  AuctionStatus
	Cause   error
}

func (e *BidError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrBidTooLow):
		return fmt.Sprintf("auction %s: %v: %s is below the minimum of %s", e.AuctionID, e.Kind, e.Amount, e.Minimum)
	case errors.Is(e.Kind, ErrAuctionNotOpen):
		return fmt.Sprintf("auction %s: %v (status %s)", e.AuctionID, e.Kind, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("auction %s: %v: %v", e.AuctionID, e.Kind, e.Cause)
	default:
		return fmt.Sprintf("auction %s: %v", e.AuctionID, e.Kind)
	}
}

func (e *BidError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// RejectionReason maps an engine error to a stable, snake_case reason used in
// API responses and metric labels.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuctionHalted):
		return "auction_halted"
	case errors.Is(err, ErrSequenceConflict):
		return "sequence_conflict"
	case errors.Is(err, ErrBidTooLow):
		return "bid_too_low"
	case errors.Is(err, ErrAuctionNotOpen):
		return "auction_not_open"
	case errors.Is(err, ErrSelfBid):
		return "self_bid"
	case errors.Is(err, ErrUnknownAuction), errors.Is(err, ErrAuctionNotFound):
		return "unknown_auction"
	case errors.Is(err, ErrInvalidBid):
		return "invalid_bid"
	case errors.Is(err, ErrInvalidAuction):
		return "invalid_auction"
	default:
		return "internal_error"
	}
}
