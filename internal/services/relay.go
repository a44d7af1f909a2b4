package services

import (
	"context"

	"bidding-engine/internal/domain"
	"bidding-engine/internal/metrics"
	"bidding-engine/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// EventRelay forwards every lifecycle event from a broadcaster tap to an
// external publisher. Failed publishes are retried a bounded number of
// times, then logged and counted.
type EventRelay struct {
	publisher  domain.EventPublisher
	maxRetries uint64
	metrics    *metrics.EngineMetrics
	log        logger.Logger
}

func NewEventRelay(publisher domain.EventPublisher, maxRetries uint64, m *metrics.EngineMetrics, log logger.Logger) *EventRelay {
	return &EventRelay{
		publisher:  publisher,
		maxRetries: maxRetries,
		metrics:    m,
		log:        log,
	}
}

// Run consumes sub until it closes or ctx ends.
func (r *EventRelay) Run(ctx context.Context, sub *Subscription) {
	r.log.Info("Starting event relay")
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			r.forward(ctx, event)
		}
	}
}

func (r *EventRelay) forward(ctx context.Context, event domain.LifecycleEvent) {
	op := func() error {
		return r.publisher.PublishLifecycleEvent(ctx, &event)
	}
	if err := backoff.Retry(op, retryPolicy(ctx, r.maxRetries)); err != nil {
		r.metrics.IncPublishFailure()
		r.log.Error("Failed to publish lifecycle event", "auction_id", event.AuctionID,
			"sequence", event.Sequence, "type", event.Type, "error", err)
	}
}
