package services

import (
	"context"
	"fmt"
	"sync"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/internal/metrics"
	"bidding-engine/pkg/logger"
	"bidding-engine/pkg/utils"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/multierr"
)

const outbidNoticeType = "outbid"

// OutbidNotifier tells the previous leader of an auction that a new bid
// took the lead. Each BidAccepted sequence is handled at most once per
// auction.
type OutbidNotifier struct {
	userNotifier  domain.UserNotifier
	notifications domain.NotificationRepository
	clock         clock.Clock
	metrics       *metrics.EngineMetrics
	maxRetries    uint64
	log           logger.Logger

	mu       sync.Mutex
	lastSeen map[string]uint64
}

func NewOutbidNotifier(userNotifier domain.UserNotifier, notifications domain.NotificationRepository,
	clk clock.Clock, m *metrics.EngineMetrics, maxRetries uint64, log logger.Logger) *OutbidNotifier {
	if clk == nil {
		clk = clock.New()
	}
	return &OutbidNotifier{
		userNotifier:  userNotifier,
		notifications: notifications,
		clock:         clk,
		metrics:       m,
		maxRetries:    maxRetries,
		log:           log,
		lastSeen:      make(map[string]uint64),
	}
}

// Run consumes sub until it closes or ctx ends.
func (n *OutbidNotifier) Run(ctx context.Context, sub *Subscription) {
	n.log.Info("Starting outbid notifier")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := n.Handle(ctx, event); err != nil {
				n.log.Error("Failed to deliver outbid notice", "auction_id", event.AuctionID,
					"sequence", event.Sequence, "error", err)
			}
		}
	}
}

func (n *OutbidNotifier) Handle(ctx context.Context, event domain.LifecycleEvent) error {
	if event.IsTerminal() {
		n.mu.Lock()
		delete(n.lastSeen, event.AuctionID)
		n.mu.Unlock()
		return nil
	}
	if event.Type != domain.EventBidAccepted || event.Bid == nil {
		return nil
	}

	n.mu.Lock()
	if event.Sequence <= n.lastSeen[event.AuctionID] {
		n.mu.Unlock()
		return nil
	}
	n.lastSeen[event.AuctionID] = event.Sequence
	n.mu.Unlock()

	previous := event.PreviousBid
	if previous == nil || previous.BidderID == event.Bid.BidderID {
		return nil
	}

	notice := domain.OutbidNotice{
		Type:           outbidNoticeType,
		AuctionID:      event.AuctionID,
		Sequence:       event.Sequence,
		YourAmount:     previous.Amount,
		CurrentPrice:   event.CurrentPrice,
		MinimumNextBid: event.MinimumNextBid(),
		EndTime:        event.EndTime,
	}

	// A resend may reach some connections twice; clients drop repeated sequences.
	notify := func() error {
		return n.userNotifier.NotifyUser(ctx, previous.BidderID, notice)
	}
	var errs error
	if err := backoff.Retry(notify, retryPolicy(ctx, n.maxRetries)); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("notify %s: %w", previous.BidderID, err))
	} else {
		n.metrics.IncNotification()
	}

	if n.notifications != nil {
		record := &domain.Notification{
			ID:      utils.GenerateID("notification"),
			UserID:  previous.BidderID,
			Title:   "You have been outbid",
			Content: fmt.Sprintf("Your bid of %s was topped. The current price is %s.", previous.Amount, event.CurrentPrice),
			Data: map[string]interface{}{
				"auction_id":       event.AuctionID,
				"sequence":         event.Sequence,
				"current_price":    event.CurrentPrice.String(),
				"minimum_next_bid": notice.MinimumNextBid.String(),
			},
			CreatedAt: n.clock.Now(),
		}
		if err := n.notifications.SaveNotification(ctx, record); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("save notification: %w", err))
		}
	}

	n.log.Debug("Outbid notice sent", "auction_id", event.AuctionID, "user_id", previous.BidderID,
		"sequence", event.Sequence)
	return errs
}
