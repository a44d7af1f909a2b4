package services

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"bidding-engine/internal/domain"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

const incrementRulesKey = "bid_increment_rules"

// BiddingRuleDaoImpl keeps the tiered default increments in Redis. The tier
// whose From is the highest one not above the base price applies.
type BiddingRuleDaoImpl struct {
	client           *redis.Client
	defaultIncrement decimal.Decimal

	mu    sync.RWMutex
	rules *domain.BidIncrementRules
}

func NewBiddingRuleDao(client *redis.Client, defaultIncrement decimal.Decimal) *BiddingRuleDaoImpl {
	return &BiddingRuleDaoImpl{
		client:           client,
		defaultIncrement: defaultIncrement,
	}
}

// DefaultIncrementRules scales the default increment up for pricier items.
func DefaultIncrementRules(base decimal.Decimal) domain.BidIncrementRules {
	return domain.BidIncrementRules{
		Tiers: []domain.IncrementTier{
			{From: decimal.Zero, Increment: base},
			{From: decimal.NewFromInt(100), Increment: base.Mul(decimal.NewFromInt(2))},
			{From: decimal.NewFromInt(500), Increment: base.Mul(decimal.NewFromInt(5))},
		},
	}
}

func (v *BiddingRuleDaoImpl) LoadRules(ctx context.Context) error {
	data, err := v.client.Get(ctx, incrementRulesKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			rules := DefaultIncrementRules(v.defaultIncrement)
			v.setRules(&rules)
			return v.saveRules(ctx, &rules)
		}
		return err
	}

	var rules domain.BidIncrementRules
	if err := json.Unmarshal([]byte(data), &rules); err != nil {
		return err
	}
	v.setRules(&rules)
	return nil
}

func (v *BiddingRuleDaoImpl) setRules(rules *domain.BidIncrementRules) {
	slices.SortFunc(rules.Tiers, func(a, b domain.IncrementTier) int {
		return a.From.Cmp(b.From)
	})

	v.mu.Lock()
	v.rules = rules
	v.mu.Unlock()
}

func (v *BiddingRuleDaoImpl) saveRules(ctx context.Context, rules *domain.BidIncrementRules) error {
	data, err := json.Marshal(rules)
	if err != nil {
		return err
	}

	return v.client.Set(ctx, incrementRulesKey, string(data), 0).Err()
}

func (v *BiddingRuleDaoImpl) GetIncrementRule(basePrice decimal.Decimal) decimal.Decimal {
	v.mu.RLock()
	defer v.mu.RUnlock()

	increment := v.defaultIncrement
	if v.rules == nil {
		return increment
	}
	for _, tier := range v.rules.Tiers {
		if basePrice.LessThan(tier.From) {
			break
		}
		if tier.Increment.IsPositive() {
			increment = tier.Increment
		}
	}
	return increment
}
