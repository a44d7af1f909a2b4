package services

import (
	"context"
	"errors"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"bidding-engine/internal/clock"
	"bidding-engine/internal/domain"
	"bidding-engine/internal/ledger"
	"bidding-engine/internal/metrics"
	"bidding-engine/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

// MachineObserver hears about lifecycle changes after they were delivered
// to the broadcaster. Calls come from the machine's outbox goroutine and
// must not wait on the machine itself.
type MachineObserver interface {
	OnDeadlineExtended(auctionID string, endTime time.Time)
	OnTerminal(auctionID string, status domain.AuctionStatus)
}

type MachineDeps struct {
	Clock       clock.Clock
	Broadcaster *EventBroadcaster
	Persister   domain.StatePersister
	Observer    MachineObserver
	Metrics     *metrics.EngineMetrics
}

// AuctionMachine owns one live auction. Every operation on it runs as a turn
// of a single mailbox goroutine, so price checks and ledger appends never
// interleave. Persistence and publication happen afterwards, in order, on
// the outbox goroutine.
type AuctionMachine struct {
	id       string
	settings Settings
	policy   AntiSnipingPolicy
	deps     MachineDeps
	log      logger.Logger

	mailbox    chan func()
	quit       chan struct{}
	done       chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once
	cancelling atomic.Int32
	halted     atomic.Bool
	outbox     *outbox

	// owned by the mailbox goroutine
	auction    domain.Auction
	ledger     *ledger.Ledger
	haltCause  error
	startTimer clock.Timer
	endTimer   clock.Timer
}

// maxEventsPerBid bounds the events one accepted bid emits: the acceptance
// and an optional deadline extension.
const maxEventsPerBid = 2

// NewAuctionMachine hydrates a machine from a persisted auction and its
// bids. The ledger is authoritative: a record that lags behind it is
// repaired.
func NewAuctionMachine(auction domain.Auction, bids []domain.Bid, settings Settings, deps MachineDeps, log logger.Logger) (*AuctionMachine, error) {
	l, err := ledger.Restore(auction.ID, bids)
	if err != nil {
		return nil, err
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Broadcaster == nil {
		deps.Broadcaster = NewEventBroadcaster(settings.SubscriberBuffer, deps.Metrics, log)
	}

	log = log.With("auction_id", auction.ID)

	if !auction.MinimumIncrement.IsPositive() {
		auction.MinimumIncrement = settings.MinimumIncrementDefault
	}
	if highest, ok := l.HighestBid(); ok {
		if !auction.CurrentPrice.Equal(highest.Amount) || auction.LeaderID != highest.BidderID ||
			auction.LastBidSequence != highest.Sequence {
			log.Warn("Auction record out of step with ledger, repairing",
				"record_sequence", auction.LastBidSequence, "ledger_sequence", highest.Sequence)
		}
		// Events of the missing bids were already published; skip past them.
		if highest.Sequence > auction.LastBidSequence {
			auction.EventSequence += (highest.Sequence - auction.LastBidSequence) * maxEventsPerBid
		}
		auction.CurrentPrice = highest.Amount
		auction.LeaderID = highest.BidderID
		auction.LastBidSequence = highest.Sequence
	} else {
		auction.CurrentPrice = auction.BasePrice
		auction.LeaderID = ""
		auction.LastBidSequence = 0
	}

	size := settings.MailboxSize
	if size <= 0 {
		size = DefaultSettings().MailboxSize
	}

	return &AuctionMachine{
		id:       auction.ID,
		settings: settings,
		policy:   NewAntiSnipingPolicy(settings.AntiSnipeWindow, settings.AntiSnipeExtension),
		deps:     deps,
		log:      log,
		mailbox:  make(chan func(), size),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		outbox:   newOutbox(),
		auction:  auction,
		ledger:   l,
	}, nil
}

func (m *AuctionMachine) ID() string {
	return m.id
}

// Start launches the mailbox goroutine and arms the lifecycle timers.
func (m *AuctionMachine) Start() {
	m.startOnce.Do(func() {
		go m.run()
		m.post(m.armTimers)
	})
}

// Stop ends the mailbox goroutine after the running turn and waits for the
// outbox to deliver what was already committed.
func (m *AuctionMachine) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() { close(m.quit) })
	m.startOnce.Do(func() { close(m.done) })

	select {
	case <-m.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return m.outbox.close(ctx)
}

func (m *AuctionMachine) run() {
	defer close(m.done)
	defer m.stopTimers()

	for {
		select {
		case turn := <-m.mailbox:
			turn()
		case <-m.quit:
			return
		}
	}
}

// post enqueues a turn nobody waits for, such as a timer callback.
func (m *AuctionMachine) post(turn func()) {
	select {
	case m.mailbox <- turn:
	case <-m.quit:
	}
}

// do runs turn on the mailbox goroutine and returns its result. ctx bounds
// only the wait for a mailbox slot; once queued, the turn always runs.
func (m *AuctionMachine) do(ctx context.Context, turn func() error) error {
	result := make(chan error, 1)
	select {
	case m.mailbox <- func() { result <- turn() }:
	case <-ctx.Done():
		return ctx.Err()
	case <-m.quit:
		return m.stoppedError()
	}

	select {
	case err := <-result:
		return err
	case <-m.done:
		select {
		case err := <-result:
			return err
		default:
			return m.stoppedError()
		}
	}
}

// SubmitBid validates and, if acceptable, records a bid placed at now.
// A ctx that ends while the bid waits for its turn withdraws the bid.
func (m *AuctionMachine) SubmitBid(ctx context.Context, bidderID string, amount decimal.Decimal, now time.Time) (domain.Bid, error) {
	if bidderID == "" || !amount.IsPositive() || !domain.FitsMoneyScale(amount) {
		err := &domain.BidError{Kind: domain.ErrInvalidBid, AuctionID: m.id, BidderID: bidderID, Amount: amount}
		m.deps.Metrics.IncBidRejected(domain.RejectionReason(err))
		return domain.Bid{}, err
	}

	var bid domain.Bid
	err := m.do(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		bid, err = m.submitBid(bidderID, amount, now)
		return err
	})
	if err != nil {
		var bidErr *domain.BidError
		if errors.As(err, &bidErr) {
			m.deps.Metrics.IncBidRejected(domain.RejectionReason(err))
		}
		return domain.Bid{}, err
	}
	m.deps.Metrics.IncBidAccepted()
	return bid, nil
}

func (m *AuctionMachine) submitBid(bidderID string, amount decimal.Decimal, now time.Time) (domain.Bid, error) {
	if m.haltCause != nil {
		return domain.Bid{}, m.haltedError()
	}

	a := &m.auction
	if m.cancelling.Load() > 0 || !a.Status.IsOpen() || !now.Before(a.EndTime) {
		status := a.Status
		if m.cancelling.Load() > 0 {
			status = domain.AuctionCancelled
		}
		return domain.Bid{}, &domain.BidError{
			Kind: domain.ErrAuctionNotOpen, AuctionID: m.id, BidderID: bidderID, Amount: amount, Status: status,
		}
	}

	minimum := a.MinimumNextBid()
	if amount.LessThan(minimum) {
		return domain.Bid{}, &domain.BidError{
			Kind: domain.ErrBidTooLow, AuctionID: m.id, BidderID: bidderID, Amount: amount, Minimum: minimum, Status: a.Status,
		}
	}
	if m.settings.SelfBidPolicy == SelfBidDeny && bidderID == a.LeaderID {
		return domain.Bid{}, &domain.BidError{
			Kind: domain.ErrSelfBid, AuctionID: m.id, BidderID: bidderID, Amount: amount, Status: a.Status,
		}
	}

	previous, hadPrevious := m.ledger.HighestBid()
	bid := domain.Bid{
		AuctionID:   m.id,
		BidderID:    bidderID,
		Amount:      amount,
		Sequence:    m.ledger.NextSequence(),
		SubmittedAt: now,
	}
	if err := m.ledger.Append(bid); err != nil {
		return domain.Bid{}, m.halt(err)
	}

	a.CurrentPrice = amount
	a.LeaderID = bidderID
	a.LastBidSequence = bid.Sequence
	a.UpdatedAt = now

	newEnd, extend := m.policy.Evaluate(now, a.EndTime)
	if extend {
		a.EndTime = newEnd
		a.Status = domain.AuctionExtended
		m.armEnd()
		m.deps.Metrics.IncExtension()
	} else {
		a.Status = domain.AuctionActive
	}

	accepted := m.newEvent(domain.EventBidAccepted, now)
	accepted.Bid = &bid
	if hadPrevious {
		accepted.PreviousBid = &previous
	}
	events := []domain.LifecycleEvent{accepted}
	if extend {
		events = append(events, m.newEvent(domain.EventDeadlineExtended, now))
	}
	m.commit(events, &bid)

	m.log.Info("Bid accepted", "bidder_id", bidderID, "amount", amount, "sequence", bid.Sequence,
		"extended", extend, "end_time", a.EndTime)
	return bid, nil
}

// Activate opens a scheduled auction once now reaches its start time. An
// auction whose end time has also passed is closed in the same turn.
func (m *AuctionMachine) Activate(ctx context.Context, now time.Time) error {
	return m.do(ctx, func() error { return m.activate(now) })
}

func (m *AuctionMachine) activate(now time.Time) error {
	if m.haltCause != nil {
		return m.haltedError()
	}

	a := &m.auction
	switch {
	case a.Status.IsOpen():
		return nil
	case a.Status != domain.AuctionScheduled, now.Before(a.StartTime):
		return &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: m.id, Status: a.Status}
	}

	a.Status = domain.AuctionActive
	a.UpdatedAt = now
	stopTimer(&m.startTimer)

	events := []domain.LifecycleEvent{m.newEvent(domain.EventStarted, now)}
	if now.Before(a.EndTime) {
		m.armEnd()
	} else {
		events = append(events, m.finish(now))
	}
	m.commit(events, nil)

	m.log.Info("Auction started", "end_time", a.EndTime, "status", a.Status)
	return nil
}

// Close ends an open auction whose end time has passed. A call that comes
// in before the end time, for instance from a timer armed before an
// extension, changes nothing.
func (m *AuctionMachine) Close(ctx context.Context, now time.Time) error {
	return m.do(ctx, func() error { return m.close(now) })
}

func (m *AuctionMachine) close(now time.Time) error {
	if m.haltCause != nil {
		return m.haltedError()
	}

	a := &m.auction
	switch {
	case a.Status == domain.AuctionClosed:
		return nil
	case !a.Status.IsOpen():
		return &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: m.id, Status: a.Status}
	case now.Before(a.EndTime):
		return nil
	}

	m.commit([]domain.LifecycleEvent{m.finish(now)}, nil)
	return nil
}

// finish moves the auction to Closed and builds the Closed event.
func (m *AuctionMachine) finish(now time.Time) domain.LifecycleEvent {
	m.auction.Status = domain.AuctionClosed
	m.auction.UpdatedAt = now
	m.stopTimers()

	closed := m.newEvent(domain.EventClosed, now)
	if winner, ok := m.ledger.HighestBid(); ok {
		closed.WinningBid = &winner
	}

	m.log.Info("Auction closed", "winner_id", m.auction.LeaderID, "price", m.auction.CurrentPrice,
		"bids", m.ledger.Len())
	return closed
}

// Cancel moves a non-terminal auction to Cancelled. It waits for the running
// turn to finish, but bids already queued behind it are rejected as soon as
// Cancel is called.
func (m *AuctionMachine) Cancel(ctx context.Context, reason string) error {
	m.cancelling.Add(1)
	queued := false
	err := m.do(ctx, func() error {
		queued = true
		err := m.cancel(reason, m.deps.Clock.Now())
		m.cancelling.Add(-1)
		return err
	})
	if !queued {
		m.cancelling.Add(-1)
	}
	return err
}

func (m *AuctionMachine) cancel(reason string, now time.Time) error {
	if m.haltCause != nil {
		return m.haltedError()
	}

	a := &m.auction
	switch a.Status {
	case domain.AuctionCancelled:
		return nil
	case domain.AuctionClosed:
		return &domain.BidError{Kind: domain.ErrAuctionNotOpen, AuctionID: m.id, Status: a.Status}
	}

	a.Status = domain.AuctionCancelled
	a.UpdatedAt = now
	m.stopTimers()

	cancelled := m.newEvent(domain.EventCancelled, now)
	cancelled.Reason = reason
	m.commit([]domain.LifecycleEvent{cancelled}, nil)

	m.log.Info("Auction cancelled", "reason", reason)
	return nil
}

// Subscribe returns a subscription whose first event is a snapshot of the
// current state, followed by every later event. A terminal auction yields
// only the snapshot.
func (m *AuctionMachine) Subscribe(ctx context.Context) (*Subscription, error) {
	var sub *Subscription
	err := m.do(ctx, func() error {
		snapshot := m.stateEvent(domain.EventSnapshot, m.auction.EventSequence, m.deps.Clock.Now())
		sub = m.deps.Broadcaster.prepare(m.id, snapshot)
		if m.auction.Status.IsTerminal() || !m.outbox.push(func() { m.deps.Broadcaster.attach(sub) }) {
			sub.drain()
		}
		return nil
	})
	return sub, err
}

// Snapshot returns a copy of the auction record. It keeps working on a
// halted machine.
func (m *AuctionMachine) Snapshot(ctx context.Context) (domain.Auction, error) {
	var snapshot domain.Auction
	err := m.do(ctx, func() error {
		snapshot = m.auction
		return nil
	})
	return snapshot, err
}

// History yields the accepted bids in sequence order as of the call.
func (m *AuctionMachine) History() iter.Seq[domain.Bid] {
	return m.ledger.History()
}

// Halted reports whether a ledger conflict stopped all mutation.
func (m *AuctionMachine) Halted() bool {
	return m.halted.Load()
}

// Flush waits until everything committed so far has been persisted and
// published.
func (m *AuctionMachine) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	err := m.do(ctx, func() error {
		if !m.outbox.push(func() { close(flushed) }) {
			close(flushed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *AuctionMachine) newEvent(eventType domain.EventType, now time.Time) domain.LifecycleEvent {
	m.auction.EventSequence++
	return m.stateEvent(eventType, m.auction.EventSequence, now)
}

func (m *AuctionMachine) stateEvent(eventType domain.EventType, sequence uint64, now time.Time) domain.LifecycleEvent {
	a := &m.auction
	return domain.LifecycleEvent{
		Type:             eventType,
		AuctionID:        m.id,
		Sequence:         sequence,
		Status:           a.Status,
		CurrentPrice:     a.CurrentPrice,
		MinimumIncrement: a.MinimumIncrement,
		LeaderID:         a.LeaderID,
		EndTime:          a.EndTime,
		OccurredAt:       now,
	}
}

// commit hands a batch of events, with the state they lead to, to the
// outbox.
func (m *AuctionMachine) commit(events []domain.LifecycleEvent, bid *domain.Bid) {
	state := m.auction
	if !m.outbox.push(func() { m.deliver(state, bid, events) }) {
		m.log.Error("Outbox closed, lifecycle events dropped", "event_sequence", state.EventSequence)
	}
}

func (m *AuctionMachine) deliver(state domain.Auction, bid *domain.Bid, events []domain.LifecycleEvent) {
	ctx := context.Background()

	if m.settings.DeliveryMode == DeliveryConfirmed {
		durable := m.persist(ctx, &state, bid)
		for i := range events {
			events[i].Durable = durable
			m.deps.Broadcaster.Publish(events[i])
		}
	} else {
		for i := range events {
			m.deps.Broadcaster.Publish(events[i])
		}
		m.persist(ctx, &state, bid)
	}

	if m.deps.Observer == nil {
		return
	}
	for _, event := range events {
		switch {
		case event.Type == domain.EventDeadlineExtended:
			m.deps.Observer.OnDeadlineExtended(m.id, event.EndTime)
		case event.IsTerminal():
			m.deps.Observer.OnTerminal(m.id, event.Status)
		}
	}
}

// persist writes the bid, then the auction state, with bounded retries. It
// reports whether both writes succeeded.
func (m *AuctionMachine) persist(ctx context.Context, state *domain.Auction, bid *domain.Bid) bool {
	if m.deps.Persister == nil {
		return false
	}

	op := func() error {
		if bid != nil {
			if err := m.deps.Persister.PersistBid(ctx, bid); err != nil {
				return err
			}
		}
		return m.deps.Persister.PersistAuctionState(ctx, state)
	}
	if err := backoff.Retry(op, retryPolicy(ctx, m.settings.PersistMaxRetries)); err != nil {
		m.deps.Metrics.IncPersistFailure()
		m.log.Error("Failed to persist auction state", "event_sequence", state.EventSequence, "error", err)
		return false
	}
	return true
}

func (m *AuctionMachine) halt(cause error) error {
	m.haltCause = cause
	m.halted.Store(true)
	m.stopTimers()
	m.log.Error("Ledger sequence conflict, auction halted", "error", cause)
	return m.haltedError()
}

func (m *AuctionMachine) haltedError() error {
	return &domain.BidError{Kind: domain.ErrAuctionHalted, AuctionID: m.id, Status: m.auction.Status, Cause: m.haltCause}
}

func (m *AuctionMachine) stoppedError() error {
	return &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: m.id}
}

func (m *AuctionMachine) armTimers() {
	switch {
	case m.haltCause != nil:
	case m.auction.Status == domain.AuctionScheduled:
		stopTimer(&m.startTimer)
		m.startTimer = clock.At(m.deps.Clock, m.auction.StartTime, func() {
			m.post(m.onStartTimer)
		})
	case m.auction.Status.IsOpen():
		m.armEnd()
	}
}

func (m *AuctionMachine) armEnd() {
	stopTimer(&m.endTimer)
	m.endTimer = clock.At(m.deps.Clock, m.auction.EndTime, func() {
		m.post(m.onEndTimer)
	})
}

func (m *AuctionMachine) onStartTimer() {
	if err := m.activate(m.deps.Clock.Now()); err != nil {
		m.log.Debug("Start timer ignored", "error", err)
	}
}

func (m *AuctionMachine) onEndTimer() {
	if err := m.close(m.deps.Clock.Now()); err != nil {
		m.log.Debug("End timer ignored", "error", err)
	}
}

func (m *AuctionMachine) stopTimers() {
	stopTimer(&m.startTimer)
	stopTimer(&m.endTimer)
}

func stopTimer(t *clock.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

// retryPolicy is a short exponential backoff capped at maxRetries retries.
func retryPolicy(ctx context.Context, maxRetries uint64) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx)
}
