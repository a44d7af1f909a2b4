package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/pkg/logger"

	bclock "github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decStr(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func testSettings() Settings {
	s := DefaultSettings()
	s.PersistMaxRetries = 0
	s.PublishMaxRetries = 0
	return s
}

// activeAuction is open from testStart to testStart+1h.
func activeAuction(id string) domain.Auction {
	return domain.Auction{
		ID:               id,
		Title:            "Vintage camera",
		SellerID:         "seller-1",
		BasePrice:        dec(1000),
		CurrentPrice:     dec(1000),
		MinimumIncrement: dec(100),
		StartTime:        testStart,
		EndTime:          testStart.Add(time.Hour),
		Status:           domain.AuctionActive,
		CreatedAt:        testStart.Add(-time.Hour),
	}
}

type recordingPersister struct {
	mu       sync.Mutex
	states   []domain.Auction
	bids     []domain.Bid
	failWith error
}

func (p *recordingPersister) PersistAuctionState(_ context.Context, auction *domain.Auction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.states = append(p.states, *auction)
	return nil
}

func (p *recordingPersister) PersistBid(_ context.Context, bid *domain.Bid) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.bids = append(p.bids, *bid)
	return nil
}

func (p *recordingPersister) lastState() (domain.Auction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.states) == 0 {
		return domain.Auction{}, false
	}
	return p.states[len(p.states)-1], true
}

func (p *recordingPersister) bidCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bids)
}

type recordingObserver struct {
	mu         sync.Mutex
	extensions []time.Time
	terminal   []domain.AuctionStatus
}

func (o *recordingObserver) OnDeadlineExtended(_ string, endTime time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extensions = append(o.extensions, endTime)
}

func (o *recordingObserver) OnTerminal(_ string, status domain.AuctionStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.terminal = append(o.terminal, status)
}

func (o *recordingObserver) snapshot() ([]time.Time, []domain.AuctionStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]time.Time(nil), o.extensions...), append([]domain.AuctionStatus(nil), o.terminal...)
}

type machineFixture struct {
	machine     *AuctionMachine
	mock        *bclock.Mock
	broadcaster *EventBroadcaster
	persister   *recordingPersister
	observer    *recordingObserver
}

func newMachineFixture(t *testing.T, auction domain.Auction, bids []domain.Bid, settings Settings) *machineFixture {
	t.Helper()

	mock := bclock.NewMock()
	mock.Set(testStart)

	f := &machineFixture{
		mock:        mock,
		broadcaster: NewEventBroadcaster(settings.SubscriberBuffer, nil, logger.NewNop()),
		persister:   &recordingPersister{},
		observer:    &recordingObserver{},
	}
	m, err := NewAuctionMachine(auction, bids, settings, MachineDeps{
		Clock:       clock.Wrap(mock),
		Broadcaster: f.broadcaster,
		Persister:   f.persister,
		Observer:    f.observer,
	}, logger.NewNop())
	require.NoError(t, err)

	m.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = m.Stop(ctx)
	})
	f.machine = m
	return f
}

func (f *machineFixture) snapshot(t *testing.T) domain.Auction {
	t.Helper()
	a, err := f.machine.Snapshot(context.Background())
	require.NoError(t, err)
	return a
}

func (f *machineFixture) flush(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.machine.Flush(ctx))
}

func nextEvent(t *testing.T, sub *Subscription) domain.LifecycleEvent {
	t.Helper()
	select {
	case e, ok := <-sub.Events():
		require.True(t, ok, "subscription closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return domain.LifecycleEvent{}
	}
}

func requireClosed(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case e, ok := <-sub.Events():
		require.False(t, ok, "unexpected event %+v", e)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed")
	}
}
