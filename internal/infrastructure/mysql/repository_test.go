package mysql

import (
	"context"
	"database/sql"
	"io/fs"
	"regexp"
	"testing"
	"time"

	"bidding-engine/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func auctionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "seller_id", "base_price", "current_price",
		"minimum_increment", "leader_id", "start_time", "end_time", "status", "last_bid_sequence",
		"event_sequence", "created_at", "updated_at"})
}

func TestAuctionRepository_GetAuction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLAuctionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auctions WHERE id = ?")).
		WithArgs("auction-1").
		WillReturnRows(auctionRows().AddRow("auction-1", "Camera", "", "seller-1", "1000.00", "1200.00",
			"100.00", "bidder-a", created, created.Add(time.Hour), "extended", int64(2), int64(5), created, created))

	auction, err := repo.GetAuction(context.Background(), "auction-1")
	require.NoError(t, err)
	require.Equal(t, domain.AuctionExtended, auction.Status)
	require.True(t, auction.CurrentPrice.Equal(decimal.NewFromInt(1200)))
	require.True(t, auction.MinimumIncrement.Equal(decimal.NewFromInt(100)))
	require.Equal(t, "bidder-a", auction.LeaderID)
	require.Equal(t, uint64(2), auction.LastBidSequence)
	require.Equal(t, uint64(5), auction.EventSequence)
	require.Equal(t, created.Add(time.Hour), auction.EndTime)
}

func TestAuctionRepository_GetAuctionNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLAuctionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auctions WHERE id = ?")).
		WithArgs("missing").
		WillReturnRows(auctionRows())

	_, err := repo.GetAuction(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestAuctionRepository_RejectsUnknownStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLAuctionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM auctions WHERE id = ?")).
		WithArgs("auction-1").
		WillReturnRows(auctionRows().AddRow("auction-1", "Camera", "", "seller-1", "1000", "1000",
			"100", nil, created, created, "paused", int64(0), int64(0), created, created))

	_, err := repo.GetAuction(context.Background(), "auction-1")
	require.Error(t, err)
}

func TestAuctionRepository_SaveAuctionState(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLAuctionRepository(db)

	auction := &domain.Auction{
		ID:               "auction-1",
		CurrentPrice:     decimal.NewFromInt(1300),
		MinimumIncrement: decimal.NewFromInt(100),
		LeaderID:         "bidder-b",
		EndTime:          created.Add(time.Hour),
		Status:           domain.AuctionActive,
		LastBidSequence:  3,
		EventSequence:    6,
		UpdatedAt:        created,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE auctions")).
		WithArgs(auction.CurrentPrice, auction.MinimumIncrement, "bidder-b", auction.EndTime, "active",
			uint64(3), uint64(6), created, "auction-1", uint64(6)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveAuctionState(context.Background(), auction))
}

func TestAuctionRepository_GetLiveAuctions(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLAuctionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status IN (?, ?, ?)")).
		WithArgs("scheduled", "active", "extended").
		WillReturnRows(auctionRows().
			AddRow("auction-1", "Camera", "", "seller-1", "1000", "1000", "100", nil,
				created, created.Add(time.Hour), "scheduled", int64(0), int64(0), created, created).
			AddRow("auction-2", "Lens", "", "seller-2", "50", "75", "5", "bidder-c",
				created, created.Add(2*time.Hour), "active", int64(4), int64(6), created, created))

	auctions, err := repo.GetLiveAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, auctions, 2)
	require.Equal(t, domain.AuctionScheduled, auctions[0].Status)
	require.Empty(t, auctions[0].LeaderID)
	require.Equal(t, "bidder-c", auctions[1].LeaderID)
}

func TestBidRepository_SaveBidIsIdempotent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLBidRepository(db)

	bid := &domain.Bid{AuctionID: "auction-1", BidderID: "bidder-a", Amount: decimal.NewFromInt(1100), Sequence: 1, SubmittedAt: created}

	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
			WithArgs("auction-1", uint64(1), "bidder-a", bid.Amount, created).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, repo.SaveBid(context.Background(), bid))
	require.NoError(t, repo.SaveBid(context.Background(), bid))
}

func TestBidRepository_GetBidsInSequenceOrder(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLBidRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sequence ASC")).
		WithArgs("auction-1").
		WillReturnRows(sqlmock.NewRows([]string{"auction_id", "sequence", "bidder_id", "amount", "submitted_at"}).
			AddRow("auction-1", int64(1), "bidder-a", "1100", created).
			AddRow("auction-1", int64(2), "bidder-b", "1200", created.Add(time.Second)))

	bids, err := repo.GetBids(context.Background(), "auction-1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, uint64(2), bids[1].Sequence)
	require.True(t, bids[1].Amount.Equal(decimal.NewFromInt(1200)))
}

func TestSchedulerRepository_CancelJobsForAuction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLSchedulerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE scheduled_jobs SET status = ?")).
		WithArgs("cancelled", "auction-1", "end_auction", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CancelJobsForAuction(context.Background(), "auction-1", domain.JobEndAuction))
}

func TestSchedulerRepository_GetPendingJobs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLSchedulerRepository(db)

	now := created.Add(time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduled_jobs")).
		WithArgs("pending", now, pendingJobBatch).
		WillReturnRows(sqlmock.NewRows([]string{"id", "auction_id", "job_type", "run_at", "status", "created_at"}).
			AddRow("job-1", "auction-1", "start_auction", created, "pending", created))

	jobs, err := repo.GetPendingJobs(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, domain.JobStartAuction, jobs[0].JobType)
	require.Equal(t, domain.JobPending, jobs[0].Status)
}

func TestSchedulerRepository_UpdateJobStatusOnlyMovesPendingJobs(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLSchedulerRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE scheduled_jobs SET status = ? WHERE id = ? AND status = ?")).
		WithArgs("executed", "job-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateJobStatus(context.Background(), "job-1", domain.JobExecuted))
}

func TestNotificationRepository_SaveNotification(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLNotificationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WithArgs("notification-1", "bidder-a", "Outbid", "You were outbid", []byte(`{"auction_id":"auction-1"}`), false, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveNotification(context.Background(), &domain.Notification{
		ID:        "notification-1",
		UserID:    "bidder-a",
		Title:     "Outbid",
		Content:   "You were outbid",
		Data:      map[string]interface{}{"auction_id": "auction-1"},
		CreatedAt: created,
	}))
}

func TestEventArchive_SaveEvent(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLEventArchive(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO auction_events")).
		WithArgs("auction-1", uint64(3), "closed", "closed", sqlmock.AnyArg(), "bidder-a", sqlmock.AnyArg(), created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveEvent(context.Background(), &domain.LifecycleEvent{
		Type:         domain.EventClosed,
		AuctionID:    "auction-1",
		Sequence:     3,
		Status:       domain.AuctionClosed,
		CurrentPrice: decimal.NewFromInt(1200),
		LeaderID:     "bidder-a",
		OccurredAt:   created,
	}))
}

func TestMigrationsAreEmbedded(t *testing.T) {
	db, _ := newMock(t)

	provider, err := NewMigrator(db)
	require.NoError(t, err)

	sources := provider.ListSources()
	require.Len(t, sources, 1)
	require.Equal(t, int64(1), sources[0].Version)

	body, err := fs.ReadFile(migrations(), "00001_create_engine_tables.sql")
	require.NoError(t, err)
	for _, table := range []string{"auctions", "bids", "scheduled_jobs", "notifications", "auction_events"} {
		require.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" (")
		require.Contains(t, string(body), "DROP TABLE IF EXISTS "+table+";")
	}
}
