package services

import (
	"context"
	"encoding/json"
	"testing"

	"bidding-engine/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestBiddingRuleDao_SeedsDefaults(t *testing.T) {
	mr, client := newTestRedis(t)
	dao := NewBiddingRuleDao(client, dec(1))

	require.True(t, dao.GetIncrementRule(dec(1000)).Equal(dec(1)), "default before load")
	require.NoError(t, dao.LoadRules(context.Background()))

	tests := []struct {
		base int64
		want int64
	}{
		{base: 10, want: 1},
		{base: 100, want: 2},
		{base: 499, want: 2},
		{base: 500, want: 5},
		{base: 100000, want: 5},
	}
	for _, tc := range tests {
		require.True(t, dao.GetIncrementRule(dec(tc.base)).Equal(dec(tc.want)), "base %d", tc.base)
	}

	stored, err := mr.Get(incrementRulesKey)
	require.NoError(t, err)
	var rules domain.BidIncrementRules
	require.NoError(t, json.Unmarshal([]byte(stored), &rules))
	require.Len(t, rules.Tiers, 3)
}

func TestBiddingRuleDao_LoadsStoredRules(t *testing.T) {
	mr, client := newTestRedis(t)
	rules := domain.BidIncrementRules{Tiers: []domain.IncrementTier{
		{From: dec(1000), Increment: dec(100)},
		{From: dec(0), Increment: dec(10)},
	}}
	data, err := json.Marshal(rules)
	require.NoError(t, err)
	require.NoError(t, mr.Set(incrementRulesKey, string(data)))

	dao := NewBiddingRuleDao(client, dec(1))
	require.NoError(t, dao.LoadRules(context.Background()))

	require.True(t, dao.GetIncrementRule(dec(999)).Equal(dec(10)))
	require.True(t, dao.GetIncrementRule(dec(1000)).Equal(dec(100)))
}

func TestBiddingRuleDao_RejectsCorruptRules(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set(incrementRulesKey, "{not json"))

	dao := NewBiddingRuleDao(client, dec(1))
	require.Error(t, dao.LoadRules(context.Background()))
}
