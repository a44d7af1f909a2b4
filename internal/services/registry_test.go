package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/internal/domain/mocks"
	"bidding-engine/pkg/logger"

	bclock "github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct {
	mu          sync.Mutex
	starts      map[string]time.Time
	ends        map[string]time.Time
	reschedules map[string][]time.Time
	cancelled   []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		starts:      make(map[string]time.Time),
		ends:        make(map[string]time.Time),
		reschedules: make(map[string][]time.Time),
	}
}

func (s *fakeScheduler) ScheduleAuctionStart(_ context.Context, auctionID string, startTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts[auctionID] = startTime
	return nil
}

func (s *fakeScheduler) ScheduleAuctionEnd(_ context.Context, auctionID string, endTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ends[auctionID] = endTime
	return nil
}

func (s *fakeScheduler) RescheduleAuctionEnd(_ context.Context, auctionID string, newEndTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reschedules[auctionID] = append(s.reschedules[auctionID], newEndTime)
	return nil
}

func (s *fakeScheduler) CancelSchedule(_ context.Context, auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, auctionID)
	return nil
}

func (s *fakeScheduler) Start(context.Context) error { return nil }
func (s *fakeScheduler) Stop() error                 { return nil }

func (s *fakeScheduler) wasCancelled(auctionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.cancelled, auctionID)
}

func (s *fakeScheduler) rescheduled(auctionID string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.reschedules[auctionID]...)
}

type registryFixture struct {
	registry  *AuctionRegistry
	mock      *bclock.Mock
	auctions  *mocks.MockAuctionRepository
	bids      *mocks.MockBidRepository
	persister *recordingPersister
	scheduler *fakeScheduler
}

func newRegistryFixture(t *testing.T, settings Settings) *registryFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	mock := bclock.NewMock()
	mock.Set(testStart)

	f := &registryFixture{
		mock:      mock,
		auctions:  mocks.NewMockAuctionRepository(ctrl),
		bids:      mocks.NewMockBidRepository(ctrl),
		persister: &recordingPersister{},
		scheduler: newFakeScheduler(),
	}
	f.registry = NewAuctionRegistry(RegistryDeps{
		AuctionRepo: f.auctions,
		BidRepo:     f.bids,
		Persister:   f.persister,
		Scheduler:   f.scheduler,
		Clock:       clock.Wrap(mock),
	}, settings, logger.NewNop())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = f.registry.Shutdown(ctx)
	})
	return f
}

// stored makes the repository return a fresh copy of a on every load.
func (f *registryFixture) stored(a domain.Auction) *gomock.Call {
	return f.auctions.EXPECT().GetAuction(gomock.Any(), a.ID).
		DoAndReturn(func(context.Context, string) (*domain.Auction, error) {
			c := a
			return &c, nil
		})
}

func draftAuction(id string) domain.Auction {
	a := activeAuction(id)
	a.Status = domain.AuctionDraft
	a.StartTime = testStart.Add(10 * time.Minute)
	return a
}

func TestAuctionRegistry_ScheduleDraft(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	draft := draftAuction("auction-1")
	f.stored(draft).Times(1)
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return(nil, nil)

	snapshot, err := f.registry.Schedule(ctx, "auction-1")
	require.NoError(t, err)
	require.Equal(t, domain.AuctionScheduled, snapshot.Status)

	state, ok := f.persister.lastState()
	require.True(t, ok)
	require.Equal(t, domain.AuctionScheduled, state.Status)
	require.Equal(t, draft.StartTime, f.scheduler.starts["auction-1"])
	require.Equal(t, draft.EndTime, f.scheduler.ends["auction-1"])

	// already hosted: no second load
	again, err := f.registry.Schedule(ctx, "auction-1")
	require.NoError(t, err)
	require.Equal(t, domain.AuctionScheduled, again.Status)
	require.Equal(t, []string{"auction-1"}, f.registry.Live())

	_, err = f.registry.PlaceBid(ctx, "auction-1", "bidder-a", dec(1100), f.mock.Now())
	require.ErrorIs(t, err, domain.ErrAuctionNotOpen)

	f.mock.Add(10 * time.Minute)
	require.Eventually(t, func() bool {
		a, err := f.registry.Snapshot(ctx, "auction-1")
		return err == nil && a.Status == domain.AuctionActive
	}, 2*time.Second, 10*time.Millisecond)

	bid, err := f.registry.PlaceBid(ctx, "auction-1", "bidder-a", dec(1100), f.mock.Now())
	require.NoError(t, err)
	require.Equal(t, uint64(1), bid.Sequence)
}

func TestAuctionRegistry_ScheduleRejects(t *testing.T) {
	invalid := draftAuction("auction-invalid")
	invalid.BasePrice = dec(0)

	backwards := draftAuction("auction-backwards")
	backwards.EndTime = backwards.StartTime.Add(-time.Minute)

	closed := activeAuction("auction-closed")
	closed.Status = domain.AuctionClosed

	tests := []struct {
		name    string
		auction domain.Auction
		want    error
	}{
		{name: "non-positive base price", auction: invalid, want: domain.ErrInvalidAuction},
		{name: "end before start", auction: backwards, want: domain.ErrInvalidAuction},
		{name: "already closed", auction: closed, want: domain.ErrAuctionNotOpen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newRegistryFixture(t, testSettings())
			f.stored(tc.auction)

			_, err := f.registry.Schedule(context.Background(), tc.auction.ID)
			require.ErrorIs(t, err, tc.want)
			require.Zero(t, f.registry.Len())
		})
	}
}

func TestAuctionRegistry_UnknownAuction(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	_, err := f.registry.PlaceBid(ctx, "missing", "bidder-a", dec(10), f.mock.Now())
	require.ErrorIs(t, err, domain.ErrUnknownAuction)
	require.ErrorIs(t, f.registry.Activate(ctx, "missing", f.mock.Now()), domain.ErrUnknownAuction)
	require.ErrorIs(t, f.registry.Close(ctx, "missing", f.mock.Now()), domain.ErrUnknownAuction)
	_, err = f.registry.Subscribe(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUnknownAuction)

	f.auctions.EXPECT().GetAuction(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("auction missing: %w", domain.ErrAuctionNotFound)).Times(2)
	_, err = f.registry.Schedule(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUnknownAuction)
	_, err = f.registry.Snapshot(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUnknownAuction)
}

func TestAuctionRegistry_ReadsUnhostedAuctionsFromStorage(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	closed := activeAuction("auction-1")
	closed.Status = domain.AuctionClosed
	closed.CurrentPrice = dec(1200)
	f.stored(closed).Times(2)
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return([]domain.Bid{
		{AuctionID: "auction-1", BidderID: "bidder-a", Amount: dec(1100), Sequence: 1},
		{AuctionID: "auction-1", BidderID: "bidder-b", Amount: dec(1200), Sequence: 2},
	}, nil)

	snapshot, err := f.registry.Snapshot(ctx, "auction-1")
	require.NoError(t, err)
	require.Equal(t, domain.AuctionClosed, snapshot.Status)

	history, err := f.registry.History(ctx, "auction-1")
	require.NoError(t, err)
	bids := slices.Collect(history)
	require.Len(t, bids, 2)
	require.Equal(t, "bidder-b", bids[1].BidderID)
}

func TestAuctionRegistry_CancelDraft(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	f.stored(draftAuction("auction-1"))
	require.NoError(t, f.registry.Cancel(ctx, "auction-1", "seller withdrew"))

	state, ok := f.persister.lastState()
	require.True(t, ok)
	require.Equal(t, domain.AuctionCancelled, state.Status)

	cancelled := draftAuction("auction-2")
	cancelled.Status = domain.AuctionCancelled
	f.stored(cancelled)
	require.NoError(t, f.registry.Cancel(ctx, "auction-2", "again"))

	closed := activeAuction("auction-3")
	closed.Status = domain.AuctionClosed
	f.stored(closed)
	require.ErrorIs(t, f.registry.Cancel(ctx, "auction-3", "late"), domain.ErrAuctionNotOpen)
}

func TestAuctionRegistry_ReapsFinishedAuctions(t *testing.T) {
	settings := testSettings()
	settings.ReapGracePeriod = 0
	f := newRegistryFixture(t, settings)
	ctx := context.Background()

	f.stored(activeAuction("auction-1"))
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return(nil, nil)

	_, err := f.registry.Schedule(ctx, "auction-1")
	require.NoError(t, err)

	sub, err := f.registry.Subscribe(ctx, "auction-1")
	require.NoError(t, err)
	require.Equal(t, domain.EventSnapshot, nextEvent(t, sub).Type)

	require.NoError(t, f.registry.Cancel(ctx, "auction-1", "seller withdrew"))

	cancelled := nextEvent(t, sub)
	require.Equal(t, domain.EventCancelled, cancelled.Type)
	require.Equal(t, "seller withdrew", cancelled.Reason)
	requireClosed(t, sub)

	require.Eventually(t, func() bool {
		return f.registry.Len() == 0 && f.scheduler.wasCancelled("auction-1")
	}, 2*time.Second, 10*time.Millisecond)

	state, ok := f.persister.lastState()
	require.True(t, ok)
	require.Equal(t, domain.AuctionCancelled, state.Status)

	_, err = f.registry.PlaceBid(ctx, "auction-1", "bidder-a", dec(1100), f.mock.Now())
	require.ErrorIs(t, err, domain.ErrUnknownAuction)
}

func TestAuctionRegistry_ExtensionReschedulesEndJob(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()
	f.mock.Set(testStart.Add(59 * time.Minute))

	f.stored(activeAuction("auction-1"))
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return(nil, nil)
	_, err := f.registry.Schedule(ctx, "auction-1")
	require.NoError(t, err)

	_, err = f.registry.PlaceBid(ctx, "auction-1", "bidder-a", dec(1100), f.mock.Now())
	require.NoError(t, err)

	want := testStart.Add(61 * time.Minute)
	require.Eventually(t, func() bool {
		r := f.scheduler.rescheduled("auction-1")
		return len(r) == 1 && r[0].Equal(want)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAuctionRegistry_Recover(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	a1 := activeAuction("auction-1")
	a2 := activeAuction("auction-2")
	f.auctions.EXPECT().GetLiveAuctions(gomock.Any()).Return([]*domain.Auction{&a1, &a2}, nil)
	f.stored(a1)
	f.auctions.EXPECT().GetAuction(gomock.Any(), "auction-2").Return(nil, errors.New("connection reset"))
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return(nil, nil)

	err := f.registry.Recover(ctx)
	require.Error(t, err)
	require.Contains(t, err.Error(), "auction-2")
	require.Equal(t, []string{"auction-1"}, f.registry.Live())
}

func TestAuctionRegistry_Shutdown(t *testing.T) {
	f := newRegistryFixture(t, testSettings())
	ctx := context.Background()

	f.stored(activeAuction("auction-1")).AnyTimes()
	f.bids.EXPECT().GetBids(gomock.Any(), "auction-1").Return(nil, nil).AnyTimes()
	_, err := f.registry.Schedule(ctx, "auction-1")
	require.NoError(t, err)

	_, err = f.registry.PlaceBid(ctx, "auction-1", "bidder-a", dec(1100), f.mock.Now())
	require.NoError(t, err)

	require.NoError(t, f.registry.Shutdown(ctx))
	require.Zero(t, f.registry.Len())
	require.Equal(t, 1, f.persister.bidCount(), "outbox flushed before stop")

	_, err = f.registry.PlaceBid(ctx, "auction-1", "bidder-b", dec(1200), f.mock.Now())
	require.ErrorIs(t, err, domain.ErrUnknownAuction)

	_, err = f.registry.Schedule(ctx, "auction-1")
	require.Error(t, err)
}
