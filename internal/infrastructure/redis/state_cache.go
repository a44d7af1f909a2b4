package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bidding-engine/internal/domain"

	"github.com/go-redis/redis/v8"
)

// setSnapshotScript keeps the newest snapshot: a write carrying an older
// event sequence than the stored one is dropped.
var setSnapshotScript = redis.NewScript(`
    local current = redis.call('HGET', KEYS[1], 'event_sequence')
    if current and tonumber(current) > tonumber(ARGV[1]) then
        return 0
    end
    redis.call('HSET', KEYS[1],
        'event_sequence', ARGV[1],
        'status', ARGV[2],
        'data', ARGV[3])
    return 1
`)

// RedisStateCache serves auction reads for the admin API without going to
// MySQL.
type RedisStateCache struct {
	client *redis.Client
}

func NewRedisStateCache(client *redis.Client) *RedisStateCache {
	return &RedisStateCache{client: client}
}

func snapshotKey(auctionID string) string {
	return fmt.Sprintf("auction:%s:state", auctionID)
}

func (r *RedisStateCache) SetSnapshot(ctx context.Context, auction *domain.Auction) error {
	data, err := json.Marshal(auction)
	if err != nil {
		return err
	}

	return setSnapshotScript.Run(ctx, r.client, []string{snapshotKey(auction.ID)},
		auction.EventSequence, auction.Status.String(), data).Err()
}

func (r *RedisStateCache) GetSnapshot(ctx context.Context, auctionID string) (*domain.Auction, error) {
	data, err := r.client.HGet(ctx, snapshotKey(auctionID), "data").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}

	var auction domain.Auction
	if err := json.Unmarshal([]byte(data), &auction); err != nil {
		return nil, err
	}
	return &auction, nil
}
