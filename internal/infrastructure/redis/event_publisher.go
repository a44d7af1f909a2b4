package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"bidding-engine/internal/domain"

	"github.com/go-redis/redis/v8"
)

// EventPublisherImpl publishes lifecycle events as JSON on a pub/sub channel.
type EventPublisherImpl struct {
	client  *redis.Client
	channel string
}

func NewEventPublisher(client *redis.Client, channel string) *EventPublisherImpl {
	return &EventPublisherImpl{client: client, channel: channel}
}

func (r *EventPublisherImpl) PublishLifecycleEvent(ctx context.Context, event *domain.LifecycleEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s/%d: %w", event.AuctionID, event.Sequence, err)
	}

	return r.client.Publish(ctx, r.channel, data).Err()
}
