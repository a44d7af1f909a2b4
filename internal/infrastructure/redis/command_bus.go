package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// CommandBus carries admin commands from the auction service to the
// bidding service that hosts the registry.
type CommandBus struct {
	client  *redis.Client
	channel string
	log     logger.Logger
}

func NewCommandBus(client *redis.Client, channel string, log logger.Logger) *CommandBus {
	return &CommandBus{
		client:  client,
		channel: channel,
		log:     log,
	}
}

// PublishCommand fails when no bidding service is listening, so that the
// caller can report it.
func (b *CommandBus) PublishCommand(ctx context.Context, cmd *domain.AuctionCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	receivers, err := b.client.Publish(ctx, b.channel, data).Result()
	if err != nil {
		return err
	}
	if receivers == 0 {
		return fmt.Errorf("no bidding service listening on %s", b.channel)
	}
	return nil
}

func (b *CommandBus) SubscribeToCommands(ctx context.Context, handler domain.CommandHandler) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", b.channel, err)
	}
	ch := pubsub.Channel()

	b.log.Info("Subscribed to auction commands", "channel", b.channel)

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("subscription to %s closed", b.channel)
			}
			var cmd domain.AuctionCommand
			if err := json.Unmarshal([]byte(msg.Payload), &cmd); err != nil {
				b.log.Error("Failed to parse command", "payload", msg.Payload, "error", err)
				continue
			}

			if err := handler(&cmd); err != nil {
				b.log.Error("Failed to handle command", "type", cmd.Type, "auction_id", cmd.AuctionID, "error", err)
			}

		case <-ctx.Done():
			b.log.Info("Command subscriber stopped")
			return ctx.Err()
		}
	}
}
