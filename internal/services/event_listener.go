package services

import (
	"context"
	"errors"
	"fmt"

	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"
)

// CommandRunner is the part of the registry the command listener drives.
type CommandRunner interface {
	Schedule(ctx context.Context, auctionID string) (domain.Auction, error)
	Cancel(ctx context.Context, auctionID, reason string) error
}

// CommandListener applies admin commands received from the auction service.
type CommandListener struct {
	runner CommandRunner
	log    logger.Logger
}

func NewCommandListener(runner CommandRunner, log logger.Logger) *CommandListener {
	return &CommandListener{
		runner: runner,
		log:    log,
	}
}

// Start blocks until ctx ends or the subscription fails.
func (cl *CommandListener) Start(ctx context.Context, subscriber domain.CommandSubscriber) error {
	cl.log.Info("Starting command listener")
	return subscriber.SubscribeToCommands(ctx, func(cmd *domain.AuctionCommand) error {
		return cl.handleCommand(ctx, cmd)
	})
}

func (cl *CommandListener) handleCommand(ctx context.Context, cmd *domain.AuctionCommand) error {
	cl.log.Info("Handling auction command", "type", cmd.Type, "auction_id", cmd.AuctionID)

	switch cmd.Type {
	case domain.CommandSchedule:
		return cl.handleSchedule(ctx, cmd)
	case domain.CommandCancel:
		return cl.handleCancel(ctx, cmd)
	}

	return fmt.Errorf("unknown command type %q for auction %s", cmd.Type, cmd.AuctionID)
}

func (cl *CommandListener) handleSchedule(ctx context.Context, cmd *domain.AuctionCommand) error {
	auction, err := cl.runner.Schedule(ctx, cmd.AuctionID)
	if err != nil {
		return fmt.Errorf("schedule auction %s: %w", cmd.AuctionID, err)
	}
	cl.log.Info("Auction scheduled", "auction_id", cmd.AuctionID, "status", auction.Status)
	return nil
}

func (cl *CommandListener) handleCancel(ctx context.Context, cmd *domain.AuctionCommand) error {
	err := cl.runner.Cancel(ctx, cmd.AuctionID, cmd.Reason)
	if errors.Is(err, domain.ErrAuctionNotOpen) {
		cl.log.Warn("Cancel ignored for finished auction", "auction_id", cmd.AuctionID)
		return nil
	}
	return err
}
