package services

import (
	"context"
	"fmt"

	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"
)

// StorePersister writes accepted transitions to MySQL and refreshes the
// Redis snapshot cache. The cache is best effort.
type StorePersister struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	stateCache  domain.AuctionStateCache
	log         logger.Logger
}

func NewStorePersister(auctionRepo domain.AuctionRepository, bidRepo domain.BidRepository,
	stateCache domain.AuctionStateCache, log logger.Logger) *StorePersister {
	return &StorePersister{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		stateCache:  stateCache,
		log:         log,
	}
}

func (p *StorePersister) PersistAuctionState(ctx context.Context, auction *domain.Auction) error {
	if err := p.auctionRepo.SaveAuctionState(ctx, auction); err != nil {
		return fmt.Errorf("save auction %s: %w", auction.ID, err)
	}
	if p.stateCache != nil {
		if err := p.stateCache.SetSnapshot(ctx, auction); err != nil {
			p.log.Warn("Failed to refresh auction snapshot cache", "auction_id", auction.ID, "error", err)
		}
	}
	return nil
}

func (p *StorePersister) PersistBid(ctx context.Context, bid *domain.Bid) error {
	if err := p.bidRepo.SaveBid(ctx, bid); err != nil {
		return fmt.Errorf("save bid %s/%d: %w", bid.AuctionID, bid.Sequence, err)
	}
	return nil
}
