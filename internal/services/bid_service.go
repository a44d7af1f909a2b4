package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"

	"github.com/shopspring/decimal"
)

// BidService is the bidding entry point used by the HTTP and websocket
// handlers. Acceptance is decided by the registry's machines alone.
type BidService struct {
	registry *AuctionRegistry
	clock    clock.Clock
	log      logger.Logger
}

func NewBidService(registry *AuctionRegistry, clk clock.Clock, log logger.Logger) *BidService {
	if clk == nil {
		clk = clock.New()
	}
	return &BidService{
		registry: registry,
		clock:    clk,
		log:      log,
	}
}

// ParseAmount reads a bid amount as sent by clients.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", raw, domain.ErrInvalidBid)
	}
	if !domain.FitsMoneyScale(amount) {
		return decimal.Decimal{}, fmt.Errorf("amount %q has more than %d decimal places: %w",
			raw, domain.MoneyScale, domain.ErrInvalidBid)
	}
	return amount, nil
}

func (s *BidService) PlaceBid(ctx context.Context, auctionID, userID string, amount decimal.Decimal) (domain.Bid, error) {
	if auctionID == "" || userID == "" {
		return domain.Bid{}, &domain.BidError{Kind: domain.ErrInvalidBid, AuctionID: auctionID, BidderID: userID, Amount: amount}
	}

	s.log.Info("Placing bid", "auction_id", auctionID, "user_id", userID, "amount", amount)

	bid, err := s.registry.PlaceBid(ctx, auctionID, userID, amount, s.clock.Now())
	if err != nil {
		s.log.Debug("Bid rejected", "auction_id", auctionID, "user_id", userID,
			"reason", domain.RejectionReason(err), "error", err)
		return domain.Bid{}, err
	}
	return bid, nil
}

func (s *BidService) AuctionState(ctx context.Context, auctionID string) (domain.Auction, error) {
	return s.registry.Snapshot(ctx, auctionID)
}

func (s *BidService) BidHistory(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	history, err := s.registry.History(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	return slices.Collect(history), nil
}

func (s *BidService) Subscribe(ctx context.Context, auctionID string) (*Subscription, error) {
	return s.registry.Subscribe(ctx, auctionID)
}
