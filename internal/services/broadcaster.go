package services

import (
	"sync"

	"bidding-engine/internal/domain"
	"bidding-engine/internal/metrics"
	"bidding-engine/pkg/logger"
)

// EventBroadcaster fans lifecycle events out to per-auction subscribers and
// to firehose taps. Publish never blocks: every subscriber has its own queue
// drained by its own goroutine.
type EventBroadcaster struct {
	bufferSize int
	metrics    *metrics.EngineMetrics
	log        logger.Logger

	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	taps   map[*Subscription]struct{}
	closed bool
}

func NewEventBroadcaster(bufferSize int, m *metrics.EngineMetrics, log logger.Logger) *EventBroadcaster {
	if bufferSize <= 0 {
		bufferSize = DefaultSettings().SubscriberBuffer
	}
	return &EventBroadcaster{
		bufferSize: bufferSize,
		metrics:    m,
		log:        log,
		subs:       make(map[string]map[*Subscription]struct{}),
		taps:       make(map[*Subscription]struct{}),
	}
}

// Publish delivers event to every subscriber of its auction and to every tap.
func (b *EventBroadcaster) Publish(event domain.LifecycleEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[event.AuctionID] {
		if sub.push(event) {
			b.metrics.IncBroadcastOverflow()
			b.log.Warn("Subscriber fell behind, collapsed queue into snapshot",
				"auction_id", event.AuctionID, "sequence", event.Sequence)
		}
	}
	for tap := range b.taps {
		tap.push(event)
	}
}

// Subscribe registers a subscriber for auctionID whose first event is
// snapshot.
func (b *EventBroadcaster) Subscribe(auctionID string, snapshot domain.LifecycleEvent) *Subscription {
	sub := b.prepare(auctionID, snapshot)
	b.attach(sub)
	return sub
}

// SubscribeAll registers a tap that receives the events of every auction.
// Taps are unbounded so that downstream sinks see every event.
func (b *EventBroadcaster) SubscribeAll() *Subscription {
	sub := newSubscription(b, "", 0)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.drain()
		return sub
	}
	b.taps[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// prepare builds a subscription primed with snapshot but not yet receiving
// live events. The owning machine attaches it from its outbox so that
// registration is ordered after every event the snapshot already covers.
func (b *EventBroadcaster) prepare(auctionID string, snapshot domain.LifecycleEvent) *Subscription {
	sub := newSubscription(b, auctionID, b.bufferSize)
	sub.push(snapshot)
	return sub
}

func (b *EventBroadcaster) attach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || sub.isClosed() {
		sub.drain()
		return
	}
	set, ok := b.subs[sub.auctionID]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[sub.auctionID] = set
	}
	set[sub] = struct{}{}
}

func (b *EventBroadcaster) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.auctionID == "" {
		delete(b.taps, sub)
		return
	}
	if set, ok := b.subs[sub.auctionID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.auctionID)
		}
	}
}

// CloseAuction detaches every subscriber of auctionID. Each one still
// receives what is already queued before its channel closes.
func (b *EventBroadcaster) CloseAuction(auctionID string) {
	b.mu.Lock()
	set := b.subs[auctionID]
	delete(b.subs, auctionID)
	b.mu.Unlock()

	for sub := range set {
		sub.drain()
	}
}

// SubscriberCount returns the number of live subscribers of auctionID.
func (b *EventBroadcaster) SubscriberCount(auctionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[auctionID])
}

// Close drains every subscriber and tap. Later subscriptions close right
// after their snapshot.
func (b *EventBroadcaster) Close() {
	b.mu.Lock()
	b.closed = true
	subs := b.subs
	taps := b.taps
	b.subs = make(map[string]map[*Subscription]struct{})
	b.taps = make(map[*Subscription]struct{})
	b.mu.Unlock()

	for _, set := range subs {
		for sub := range set {
			sub.drain()
		}
	}
	for tap := range taps {
		tap.drain()
	}
}

// Subscription is one consumer's ordered view of the event stream.
type Subscription struct {
	broadcaster *EventBroadcaster
	auctionID   string
	limit       int

	events chan domain.LifecycleEvent
	signal chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	queue    []domain.LifecycleEvent
	draining bool

	closeOnce sync.Once
}

func newSubscription(b *EventBroadcaster, auctionID string, limit int) *Subscription {
	s := &Subscription{
		broadcaster: b,
		auctionID:   auctionID,
		limit:       limit,
		events:      make(chan domain.LifecycleEvent),
		signal:      make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	go s.pump()
	return s
}

// Events is closed once the subscription ends.
func (s *Subscription) Events() <-chan domain.LifecycleEvent {
	return s.events
}

func (s *Subscription) AuctionID() string {
	return s.auctionID
}

// Close stops delivery immediately and removes the subscriber from the
// fan-out set. Queued events are discarded.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.broadcaster.remove(s)
}

func (s *Subscription) isClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// push queues event and reports whether the queue overflowed. An overflowing
// queue is replaced by a single snapshot of the newest state; terminal events
// are kept as they are since they already carry the final state.
func (s *Subscription) push(event domain.LifecycleEvent) bool {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return false
	}

	overflow := false
	if s.limit > 0 && len(s.queue) >= s.limit {
		collapsed := event
		if !event.IsTerminal() {
			collapsed = event.AsSnapshot()
		}
		clear(s.queue)
		s.queue = append(s.queue[:0], collapsed)
		overflow = true
	} else {
		s.queue = append(s.queue, event)
	}
	s.mu.Unlock()

	s.wake()
	return overflow
}

// drain stops accepting events and closes the channel after the queue
// empties.
func (s *Subscription) drain() {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()
	s.wake()
}

func (s *Subscription) wake() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	defer close(s.events)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			draining := s.draining
			s.mu.Unlock()
			if draining {
				return
			}
			select {
			case <-s.signal:
				continue
			case <-s.done:
				return
			}
		}
		next := s.queue[0]
		s.queue[0] = domain.LifecycleEvent{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.events <- next:
		case <-s.done:
			return
		}
	}
}

// AuctionView folds a subscription's events into the latest observed state.
// Events at or below the last applied sequence are ignored, which makes
// redelivery harmless.
type AuctionView struct {
	last        domain.LifecycleEvent
	initialized bool
}

// Apply reports whether event changed the view.
func (v *AuctionView) Apply(event domain.LifecycleEvent) bool {
	if v.initialized && event.Sequence <= v.last.Sequence {
		return false
	}
	v.last = event
	v.initialized = true
	return true
}

func (v *AuctionView) State() (domain.LifecycleEvent, bool) {
	return v.last, v.initialized
}

func (v *AuctionView) Sequence() uint64 {
	return v.last.Sequence
}
