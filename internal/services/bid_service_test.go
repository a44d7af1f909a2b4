package services

import (
	"context"
	"testing"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" 1250.50 ")
	require.NoError(t, err)
	require.Equal(t, "1250.5", amount.String())

	_, err = ParseAmount("12,50")
	require.ErrorIs(t, err, domain.ErrInvalidBid)
	_, err = ParseAmount("")
	require.ErrorIs(t, err, domain.ErrInvalidBid)
	_, err = ParseAmount("1100.005")
	require.ErrorIs(t, err, domain.ErrInvalidBid)

	// trailing zeros past the cent do not change the value
	amount, err = ParseAmount("1100.500")
	require.NoError(t, err)
	require.Equal(t, "1100.5", amount.String())
}

func TestBidService_PlaceBidAndRead(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	f.stored(activeAuction("auction-1")).Times(1)
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return(nil, nil)
	_, err := f.registry.Schedule(ctx, "auction-1")
	require.NoError(t, err)

	svc := NewBidService(f.registry, clock.Wrap(f.mock), logger.NewNop())

	sub, err := svc.Subscribe(ctx, "auction-1")
	require.NoError(t, err)
	defer sub.Close()
	require.Equal(t, domain.EventSnapshot, nextEvent(t, sub).Type)

	bid, err := svc.PlaceBid(ctx, "auction-1", "bidder-a", dec(1100))
	require.NoError(t, err)
	require.Equal(t, uint64(1), bid.Sequence)
	require.Equal(t, f.mock.Now(), bid.SubmittedAt)

	event := nextEvent(t, sub)
	require.Equal(t, domain.EventBidAccepted, event.Type)
	require.Equal(t, "bidder-a", event.LeaderID)

	_, err = svc.PlaceBid(ctx, "auction-1", "bidder-b", dec(1150))
	require.ErrorIs(t, err, domain.ErrBidTooLow)

	state, err := svc.AuctionState(ctx, "auction-1")
	require.NoError(t, err)
	require.True(t, state.CurrentPrice.Equal(dec(1100)))

	history, err := svc.BidHistory(ctx, "auction-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "bidder-a", history[0].BidderID)
}

func TestBidService_RejectsMissingIdentity(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	svc := NewBidService(f.registry, clock.Wrap(f.mock), logger.NewNop())

	_, err := svc.PlaceBid(context.Background(), "auction-1", "", dec(1100))
	require.ErrorIs(t, err, domain.ErrInvalidBid)
	_, err = svc.PlaceBid(context.Background(), "", "bidder-a", dec(1100))
	require.ErrorIs(t, err, domain.ErrInvalidBid)

	_, err = svc.PlaceBid(context.Background(), "missing", "bidder-a", dec(1100))
	require.ErrorIs(t, err, domain.ErrUnknownAuction)
}
