// Package ledger holds the append-only record of accepted bids for one auction.
//
// Sequence numbers are contiguous starting at 1 and amounts strictly increase
// with the sequence. Entries are never removed or mutated.
package ledger

import (
	"fmt"
	"iter"
	"sync"

	"bidding-engine/internal/domain"
)

type Ledger struct {
	auctionID string

	mu   sync.RWMutex
	bids []domain.Bid
}

func New(auctionID string) *Ledger {
	return &Ledger{auctionID: auctionID}
}

// Restore rebuilds a ledger from persisted bids, which must already be in
// ascending sequence order.
func Restore(auctionID string, bids []domain.Bid) (*Ledger, error) {
	l := New(auctionID)
	for _, b := range bids {
		if err := l.Append(b); err != nil {
			return nil, fmt.Errorf("restore ledger: %w", err)
		}
	}
	return l, nil
}

func (l *Ledger) AuctionID() string {
	return l.auctionID
}

// Append records bid. It fails with domain.ErrSequenceConflict unless the
// sequence is exactly one past the last entry and the amount is higher than
// the last amount.
func (l *Ledger) Append(bid domain.Bid) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bid.AuctionID != l.auctionID {
		return fmt.Errorf("ledger %s: bid for auction %s: %w", l.auctionID, bid.AuctionID, domain.ErrSequenceConflict)
	}

	last := uint64(len(l.bids))
	if bid.Sequence != last+1 {
		return fmt.Errorf("ledger %s: sequence %d after %d: %w", l.auctionID, bid.Sequence, last, domain.ErrSequenceConflict)
	}
	if last > 0 {
		prev := l.bids[last-1]
		if !bid.Amount.GreaterThan(prev.Amount) {
			return fmt.Errorf("ledger %s: amount %s does not exceed %s: %w", l.auctionID, bid.Amount, prev.Amount, domain.ErrSequenceConflict)
		}
	}

	l.bids = append(l.bids, bid)
	return nil
}

func (l *Ledger) LastSequence() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return uint64(len(l.bids))
}

func (l *Ledger) NextSequence() uint64 {
	return l.LastSequence() + 1
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bids)
}

// HighestBid returns the last appended bid.
func (l *Ledger) HighestBid() (domain.Bid, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.bids) == 0 {
		return domain.Bid{}, false
	}
	return l.bids[len(l.bids)-1], true
}

// History yields the bids recorded so far in ascending sequence order. The
// sequence is fixed at call time and may be ranged over any number of times.
func (l *Ledger) History() iter.Seq[domain.Bid] {
	l.mu.RLock()
	view := l.bids[:len(l.bids):len(l.bids)]
	l.mu.RUnlock()

	return func(yield func(domain.Bid) bool) {
		for _, b := range view {
			if !yield(b) {
				return
			}
		}
	}
}
