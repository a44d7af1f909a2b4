package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/internal/metrics"
	"bidding-engine/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const reapTimeout = 10 * time.Second

type RegistryDeps struct {
	AuctionRepo domain.AuctionRepository
	BidRepo     domain.BidRepository
	Persister   domain.StatePersister
	Scheduler   domain.AuctionScheduler
	Broadcaster *EventBroadcaster
	Clock       clock.Clock
	Metrics     *metrics.EngineMetrics
}

// AuctionRegistry hosts one AuctionMachine per live auction and routes every
// command to it. Finished auctions are evicted after a grace period.
type AuctionRegistry struct {
	deps     RegistryDeps
	settings Settings
	log      logger.Logger

	// scheduleMu serializes machine creation; mu guards the maps.
	scheduleMu sync.Mutex
	mu         sync.RWMutex
	machines   map[string]*AuctionMachine
	reapTimers map[string]clock.Timer
	closed     bool
}

func NewAuctionRegistry(deps RegistryDeps, settings Settings, log logger.Logger) *AuctionRegistry {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Broadcaster == nil {
		deps.Broadcaster = NewEventBroadcaster(settings.SubscriberBuffer, deps.Metrics, log)
	}
	return &AuctionRegistry{
		deps:       deps,
		settings:   settings,
		log:        log,
		machines:   make(map[string]*AuctionMachine),
		reapTimers: make(map[string]clock.Timer),
	}
}

// SetScheduler wires the durable job scheduler, which itself needs the
// registry to run jobs.
func (r *AuctionRegistry) SetScheduler(scheduler domain.AuctionScheduler) {
	r.deps.Scheduler = scheduler
}

func (r *AuctionRegistry) Broadcaster() *EventBroadcaster {
	return r.deps.Broadcaster
}

// Schedule brings an auction under the registry. A Draft auction moves to
// Scheduled and gets durable start and end jobs; a Scheduled, Active or
// Extended one is rehydrated from storage as it is.
func (r *AuctionRegistry) Schedule(ctx context.Context, auctionID string) (domain.Auction, error) {
	r.scheduleMu.Lock()
	defer r.scheduleMu.Unlock()

	if m, ok := r.machine(auctionID); ok {
		return m.Snapshot(ctx)
	}

	auction, err := r.deps.AuctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrAuctionNotFound) {
			return domain.Auction{}, &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: auctionID, Cause: err}
		}
		return domain.Auction{}, fmt.Errorf("load auction %s: %w", auctionID, err)
	}

	fromDraft := auction.Status == domain.AuctionDraft
	switch {
	case fromDraft:
		if err := r.validate(auction); err != nil {
			return domain.Auction{}, err
		}
		auction.Status = domain.AuctionScheduled
		auction.UpdatedAt = r.deps.Clock.Now()
	case !auction.Status.IsLive():
		return domain.Auction{}, &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: auctionID, Status: auction.Status}
	}

	m, err := r.host(ctx, *auction)
	if err != nil {
		return domain.Auction{}, err
	}

	snapshot, err := m.Snapshot(ctx)
	if err != nil {
		return domain.Auction{}, err
	}

	if fromDraft {
		if err := r.deps.Persister.PersistAuctionState(ctx, &snapshot); err != nil {
			r.evict(auctionID)
			_ = m.Stop(ctx)
			return domain.Auction{}, fmt.Errorf("persist scheduled auction %s: %w", auctionID, err)
		}
		if r.deps.Scheduler != nil {
			if err := r.deps.Scheduler.ScheduleAuctionStart(ctx, auctionID, snapshot.StartTime); err != nil {
				r.log.Error("Failed to create start job", "auction_id", auctionID, "error", err)
			}
			if err := r.deps.Scheduler.ScheduleAuctionEnd(ctx, auctionID, snapshot.EndTime); err != nil {
				r.log.Error("Failed to create end job", "auction_id", auctionID, "error", err)
			}
		}
	}

	r.log.Info("Auction hosted", "auction_id", auctionID, "status", snapshot.Status,
		"start_time", snapshot.StartTime, "end_time", snapshot.EndTime)
	return snapshot, nil
}

// Recover hosts every live auction found in storage.
func (r *AuctionRegistry) Recover(ctx context.Context) error {
	auctions, err := r.deps.AuctionRepo.GetLiveAuctions(ctx)
	if err != nil {
		return fmt.Errorf("load live auctions: %w", err)
	}

	var errs error
	for _, a := range auctions {
		if _, err := r.Schedule(ctx, a.ID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("recover auction %s: %w", a.ID, err))
		}
	}
	r.log.Info("Recovered live auctions", "count", len(auctions), "hosted", r.Len())
	return errs
}

func (r *AuctionRegistry) validate(a *domain.Auction) error {
	switch {
	case !a.BasePrice.IsPositive():
		return fmt.Errorf("auction %s: base price must be positive: %w", a.ID, domain.ErrInvalidAuction)
	case !a.EndTime.After(a.StartTime):
		return fmt.Errorf("auction %s: end time must follow start time: %w", a.ID, domain.ErrInvalidAuction)
	case a.MinimumIncrement.IsNegative():
		return fmt.Errorf("auction %s: negative minimum increment: %w", a.ID, domain.ErrInvalidAuction)
	}
	return nil
}

func (r *AuctionRegistry) host(ctx context.Context, auction domain.Auction) (*AuctionMachine, error) {
	bids, err := r.deps.BidRepo.GetBids(ctx, auction.ID)
	if err != nil {
		return nil, fmt.Errorf("load bids for %s: %w", auction.ID, err)
	}

	m, err := NewAuctionMachine(auction, bids, r.settings, MachineDeps{
		Clock:       r.deps.Clock,
		Broadcaster: r.deps.Broadcaster,
		Persister:   r.deps.Persister,
		Observer:    r,
		Metrics:     r.deps.Metrics,
	}, r.log)
	if err != nil {
		return nil, fmt.Errorf("hydrate auction %s: %w", auction.ID, err)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, errors.New("registry is shut down")
	}
	r.machines[auction.ID] = m
	live := len(r.machines)
	r.mu.Unlock()

	m.Start()
	r.deps.Metrics.SetLiveAuctions(live)
	return m, nil
}

func (r *AuctionRegistry) machine(auctionID string) (*AuctionMachine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.machines[auctionID]
	return m, ok
}

func (r *AuctionRegistry) route(auctionID string) (*AuctionMachine, error) {
	m, ok := r.machine(auctionID)
	if !ok {
		return nil, &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: auctionID}
	}
	return m, nil
}

// PlaceBid routes a bid to the auction's machine.
func (r *AuctionRegistry) PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal, now time.Time) (domain.Bid, error) {
	m, err := r.route(auctionID)
	if err != nil {
		r.deps.Metrics.IncBidRejected(domain.RejectionReason(err))
		return domain.Bid{}, err
	}
	return m.SubmitBid(ctx, bidderID, amount, now)
}

func (r *AuctionRegistry) Activate(ctx context.Context, auctionID string, now time.Time) error {
	m, err := r.route(auctionID)
	if err != nil {
		return err
	}
	return m.Activate(ctx, now)
}

func (r *AuctionRegistry) Close(ctx context.Context, auctionID string, now time.Time) error {
	m, err := r.route(auctionID)
	if err != nil {
		return err
	}
	return m.Close(ctx, now)
}

// Cancel cancels a hosted auction through its machine. A Draft auction has
// no machine and is cancelled in storage directly.
func (r *AuctionRegistry) Cancel(ctx context.Context, auctionID, reason string) error {
	if m, ok := r.machine(auctionID); ok {
		return m.Cancel(ctx, reason)
	}

	auction, err := r.deps.AuctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrAuctionNotFound) {
			return &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: auctionID, Cause: err}
		}
		return fmt.Errorf("load auction %s: %w", auctionID, err)
	}

	switch {
	case auction.Status == domain.AuctionCancelled:
		return nil
	case auction.Status == domain.AuctionDraft:
		auction.Status = domain.AuctionCancelled
		auction.UpdatedAt = r.deps.Clock.Now()
		if err := r.deps.Persister.PersistAuctionState(ctx, auction); err != nil {
			return fmt.Errorf("cancel draft auction %s: %w", auctionID, err)
		}
		r.log.Info("Draft auction cancelled", "auction_id", auctionID, "reason", reason)
		return nil
	case auction.Status.IsTerminal():
		return &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: auctionID, Status: auction.Status}
	default:
		return &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: auctionID}
	}
}

func (r *AuctionRegistry) Subscribe(ctx context.Context, auctionID string) (*Subscription, error) {
	m, err := r.route(auctionID)
	if err != nil {
		return nil, err
	}
	return m.Subscribe(ctx)
}

// Snapshot reads a hosted auction from its machine and any other auction
// from storage.
func (r *AuctionRegistry) Snapshot(ctx context.Context, auctionID string) (domain.Auction, error) {
	if m, ok := r.machine(auctionID); ok {
		return m.Snapshot(ctx)
	}

	auction, err := r.deps.AuctionRepo.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrAuctionNotFound) {
			return domain.Auction{}, &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: auctionID, Cause: err}
		}
		return domain.Auction{}, err
	}
	return *auction, nil
}

// History yields the bids of an auction in sequence order, from memory when
// hosted and from storage otherwise.
func (r *AuctionRegistry) History(ctx context.Context, auctionID string) (iter.Seq[domain.Bid], error) {
	if m, ok := r.machine(auctionID); ok {
		return m.History(), nil
	}

	if _, err := r.Snapshot(ctx, auctionID); err != nil {
		return nil, err
	}
	bids, err := r.deps.BidRepo.GetBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("load bids for %s: %w", auctionID, err)
	}
	return slices.Values(bids), nil
}

// Live returns the ids of the hosted auctions.
func (r *AuctionRegistry) Live() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.machines))
	for id := range r.machines {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *AuctionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.machines)
}

func (r *AuctionRegistry) OnDeadlineExtended(auctionID string, endTime time.Time) {
	if r.deps.Scheduler == nil {
		return
	}
	if err := r.deps.Scheduler.RescheduleAuctionEnd(context.Background(), auctionID, endTime); err != nil {
		r.log.Error("Failed to reschedule end job", "auction_id", auctionID, "end_time", endTime, "error", err)
	}
}

// OnTerminal arms the reap timer. The grace period lets subscribers read the
// terminal event before their subscriptions close.
func (r *AuctionRegistry) OnTerminal(auctionID string, status domain.AuctionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if _, ok := r.reapTimers[auctionID]; ok {
		return
	}
	deadline := r.deps.Clock.Now().Add(r.settings.ReapGracePeriod)
	r.reapTimers[auctionID] = clock.At(r.deps.Clock, deadline, func() {
		r.reap(auctionID)
	})
	r.log.Debug("Reap scheduled", "auction_id", auctionID, "status", status, "grace", r.settings.ReapGracePeriod)
}

func (r *AuctionRegistry) reap(auctionID string) {
	m, ok := r.evict(auctionID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reapTimeout)
	defer cancel()

	final, err := m.Snapshot(ctx)
	err = multierr.Append(err, m.Stop(ctx))
	if err == nil {
		err = r.deps.Persister.PersistAuctionState(ctx, &final)
	}
	r.deps.Broadcaster.CloseAuction(auctionID)
	if r.deps.Scheduler != nil {
		err = multierr.Append(err, r.deps.Scheduler.CancelSchedule(ctx, auctionID))
	}

	if err != nil {
		r.log.Error("Reaped auction with errors", "auction_id", auctionID, "error", err)
		return
	}
	r.log.Info("Auction reaped", "auction_id", auctionID, "status", final.Status)
}

func (r *AuctionRegistry) evict(auctionID string) (*AuctionMachine, bool) {
	r.mu.Lock()
	m, ok := r.machines[auctionID]
	delete(r.machines, auctionID)
	delete(r.reapTimers, auctionID)
	live := len(r.machines)
	r.mu.Unlock()

	if ok {
		r.deps.Metrics.SetLiveAuctions(live)
	}
	return m, ok
}

// Shutdown stops every machine after its outbox drained.
func (r *AuctionRegistry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	machines := r.machines
	for _, t := range r.reapTimers {
		t.Stop()
	}
	r.machines = make(map[string]*AuctionMachine)
	r.reapTimers = make(map[string]clock.Timer)
	r.mu.Unlock()

	var errs error
	for id, m := range machines {
		if err := m.Stop(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("stop auction %s: %w", id, err))
		}
	}
	r.deps.Broadcaster.Close()
	r.deps.Metrics.SetLiveAuctions(0)

	r.log.Info("Auction registry stopped", "auctions", len(machines))
	return errs
}
