package services

import (
	"context"

	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"
)

// EventArchiver copies every published lifecycle event into the analytics
// archive.
type EventArchiver struct {
	archive domain.EventArchive
	log     logger.Logger
}

func NewEventArchiver(archive domain.EventArchive, log logger.Logger) *EventArchiver {
	return &EventArchiver{
		archive: archive,
		log:     log,
	}
}

// Start blocks until ctx ends or the subscription fails.
func (ea *EventArchiver) Start(ctx context.Context, subscriber domain.EventSubscriber) error {
	ea.log.Info("Starting event archiver")

	return subscriber.SubscribeToLifecycleEvents(ctx, func(event *domain.LifecycleEvent) error {
		return ea.Archive(ctx, event)
	})
}

func (ea *EventArchiver) Archive(ctx context.Context, event *domain.LifecycleEvent) error {
	if event.Type == domain.EventSnapshot {
		return nil
	}
	ea.log.Debug("Archiving event", "auction_id", event.AuctionID, "sequence", event.Sequence, "type", event.Type)
	return ea.archive.SaveEvent(ctx, event)
}
