package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"
	"bidding-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// MinAuctionDuration is the shortest bidding window an auction may be created with.
const MinAuctionDuration = 10 * time.Minute

type CreateAuctionRequest struct {
	Title       string
	Description string
	SellerID    string
	BasePrice   decimal.Decimal
	// MinimumIncrement is optional; the increment rules supply it when zero.
	MinimumIncrement decimal.Decimal
	StartTime        time.Time
	EndTime          time.Time
}

// AuctionManager backs the admin API. It owns Draft auctions; once an
// auction is scheduled the bidding service owns it and the manager only
// sends it commands.
type AuctionManager struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	stateCache  domain.AuctionStateCache
	commands    domain.CommandPublisher
	rules       domain.IncrementRules
	clock       clock.Clock
	log         logger.Logger
}

func NewAuctionManager(
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	stateCache domain.AuctionStateCache,
	commands domain.CommandPublisher,
	rules domain.IncrementRules,
	clk clock.Clock,
	log logger.Logger,
) *AuctionManager {
	if clk == nil {
		clk = clock.New()
	}
	return &AuctionManager{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		stateCache:  stateCache,
		commands:    commands,
		rules:       rules,
		clock:       clk,
		log:         log,
	}
}

func (am *AuctionManager) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*domain.Auction, error) {
	now := am.clock.Now()
	if err := validateCreate(req, now); err != nil {
		return nil, err
	}

	increment := req.MinimumIncrement
	if increment.IsZero() && am.rules != nil {
		increment = am.rules.GetIncrementRule(req.BasePrice)
	}
	if !increment.IsPositive() {
		return nil, fmt.Errorf("minimum increment must be positive: %w", domain.ErrInvalidAuction)
	}
	if !domain.FitsMoneyScale(increment) {
		return nil, fmt.Errorf("minimum increment %s has more than %d decimal places: %w",
			increment, domain.MoneyScale, domain.ErrInvalidAuction)
	}

	auction := &domain.Auction{
		ID:               utils.GenerateID("auction"),
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		SellerID:         req.SellerID,
		BasePrice:        req.BasePrice,
		CurrentPrice:     req.BasePrice,
		MinimumIncrement: increment,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           domain.AuctionDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := am.auctionRepo.CreateAuction(ctx, auction); err != nil {
		return nil, err
	}

	am.log.Info("Auction created", "auction_id", auction.ID, "seller_id", auction.SellerID,
		"base_price", auction.BasePrice, "increment", auction.MinimumIncrement)
	return auction, nil
}

func validateCreate(req CreateAuctionRequest, now time.Time) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return fmt.Errorf("title is required: %w", domain.ErrInvalidAuction)
	case req.SellerID == "":
		return fmt.Errorf("seller is required: %w", domain.ErrInvalidAuction)
	case !req.BasePrice.IsPositive():
		return fmt.Errorf("base price must be positive: %w", domain.ErrInvalidAuction)
	case req.MinimumIncrement.IsNegative():
		return fmt.Errorf("minimum increment must not be negative: %w", domain.ErrInvalidAuction)
	case !domain.FitsMoneyScale(req.BasePrice) || !domain.FitsMoneyScale(req.MinimumIncrement):
		return fmt.Errorf("prices take at most %d decimal places: %w", domain.MoneyScale, domain.ErrInvalidAuction)
	case !req.StartTime.After(now):
		return fmt.Errorf("start time must be in the future: %w", domain.ErrInvalidAuction)
	case !req.EndTime.After(req.StartTime):
		return fmt.Errorf("end time must be after start time: %w", domain.ErrInvalidAuction)
	case req.EndTime.Sub(req.StartTime) < MinAuctionDuration:
		return fmt.Errorf("auction must run for at least %s: %w", MinAuctionDuration, domain.ErrInvalidAuction)
	}
	return nil
}

// GetAuction prefers the snapshot the bidding service keeps in Redis, which
// is fresher than MySQL while the auction is live.
func (am *AuctionManager) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	if am.stateCache != nil {
		auction, err := am.stateCache.GetSnapshot(ctx, auctionID)
		if err == nil {
			return auction, nil
		}
		if !errors.Is(err, domain.ErrAuctionNotFound) {
			am.log.Warn("Auction snapshot cache unavailable", "auction_id", auctionID, "error", err)
		}
	}
	return am.auctionRepo.GetAuction(ctx, auctionID)
}

func (am *AuctionManager) GetBids(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	if _, err := am.auctionRepo.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	return am.bidRepo.GetBids(ctx, auctionID)
}

// ScheduleAuction asks the bidding service to take ownership of a Draft
// auction.
func (am *AuctionManager) ScheduleAuction(ctx context.Context, auctionID string) error {
	auction, err := am.auctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	if auction.Status.IsTerminal() {
		return &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: auctionID, Status: auction.Status}
	}
	if !auction.EndTime.After(am.clock.Now()) {
		return fmt.Errorf("auction %s already ended at %s: %w", auctionID, auction.EndTime, domain.ErrInvalidAuction)
	}
	return am.send(ctx, domain.CommandSchedule, auctionID, "")
}

func (am *AuctionManager) CancelAuction(ctx context.Context, auctionID, reason string) error {
	auction, err := am.auctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		return err
	}
	if auction.Status.IsTerminal() {
		return &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: auctionID, Status: auction.Status}
	}
	return am.send(ctx, domain.CommandCancel, auctionID, reason)
}

func (am *AuctionManager) send(ctx context.Context, cmdType domain.CommandType, auctionID, reason string) error {
	cmd := &domain.AuctionCommand{
		Type:      cmdType,
		AuctionID: auctionID,
		Reason:    reason,
		IssuedAt:  am.clock.Now(),
	}
	if err := am.commands.PublishCommand(ctx, cmd); err != nil {
		return fmt.Errorf("send %s command for auction %s: %w", cmdType, auctionID, err)
	}
	am.log.Info("Auction command sent", "type", cmdType, "auction_id", auctionID)
	return nil
}
