package leader

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newElection(t *testing.T) (*miniredis.Miniredis, *RedisLeaderElection) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisLeaderElection(client, "bidding_leader", time.Minute)
}

func TestRedisLeaderElection_SingleLeader(t *testing.T) {
	_, election := newElection(t)
	ctx := context.Background()

	won, err := election.BecomeLeader(ctx, "instance-a")
	require.NoError(t, err)
	require.True(t, won)

	won, err = election.BecomeLeader(ctx, "instance-b")
	require.NoError(t, err)
	require.False(t, won)

	isLeader, err := election.IsLeader(ctx, "instance-a")
	require.NoError(t, err)
	require.True(t, isLeader)

	isLeader, err = election.IsLeader(ctx, "instance-b")
	require.NoError(t, err)
	require.False(t, isLeader)
}

func TestRedisLeaderElection_ReleaseOnlyByHolder(t *testing.T) {
	mr, election := newElection(t)
	ctx := context.Background()

	_, err := election.BecomeLeader(ctx, "instance-a")
	require.NoError(t, err)

	require.NoError(t, election.ReleaseLeadership(ctx, "instance-b"))
	require.True(t, mr.Exists("bidding_leader"))

	require.NoError(t, election.ReleaseLeadership(ctx, "instance-a"))
	require.False(t, mr.Exists("bidding_leader"))

	won, err := election.BecomeLeader(ctx, "instance-b")
	require.NoError(t, err)
	require.True(t, won)
}

func TestRedisLeaderElection_LeaseExpires(t *testing.T) {
	mr, election := newElection(t)
	ctx := context.Background()

	_, err := election.BecomeLeader(ctx, "instance-a")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	isLeader, err := election.IsLeader(ctx, "instance-a")
	require.NoError(t, err)
	require.False(t, isLeader)
}

func TestRedisLeaderElection_Refresh(t *testing.T) {
	mr, election := newElection(t)
	ctx := context.Background()

	_, err := election.BecomeLeader(ctx, "instance-a")
	require.NoError(t, err)

	held, err := election.refresh(ctx, "instance-a")
	require.NoError(t, err)
	require.True(t, held)
	require.Equal(t, time.Minute, mr.TTL("bidding_leader"))

	held, err = election.refresh(ctx, "instance-b")
	require.NoError(t, err)
	require.False(t, held)
}
