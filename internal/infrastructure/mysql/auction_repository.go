package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bidding-engine/internal/domain"
)

const auctionColumns = `id, title, description, seller_id, base_price, current_price, minimum_increment,
        leader_id, start_time, end_time, status, last_bid_sequence, event_sequence, created_at, updated_at`

type MySQLAuctionRepository struct {
	db *sql.DB
}

func NewMySQLAuctionRepository(db *sql.DB) *MySQLAuctionRepository {
	return &MySQLAuctionRepository{db: db}
}

func (r *MySQLAuctionRepository) CreateAuction(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (` + auctionColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.ID, auction.Title, auction.Description, auction.SellerID,
		auction.BasePrice, auction.CurrentPrice, auction.MinimumIncrement,
		auction.LeaderID, auction.StartTime, auction.EndTime, auction.Status.String(),
		auction.LastBidSequence, auction.EventSequence, auction.CreatedAt, auction.UpdatedAt)
	return err
}

func (r *MySQLAuctionRepository) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ?`

	auction, err := scanAuction(r.db.QueryRowContext(ctx, query, auctionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("auction %s: %w", auctionID, domain.ErrAuctionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return auction, nil
}

// SaveAuctionState writes the mutable part of the record. A write that
// carries an older event sequence than the stored row is ignored.
func (r *MySQLAuctionRepository) SaveAuctionState(ctx context.Context, auction *domain.Auction) error {
	query := `
        UPDATE auctions
        SET current_price = ?, minimum_increment = ?, leader_id = ?, end_time = ?, status = ?,
            last_bid_sequence = ?, event_sequence = ?, updated_at = ?
        WHERE id = ? AND event_sequence <= ?
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.CurrentPrice, auction.MinimumIncrement, auction.LeaderID, auction.EndTime,
		auction.Status.String(), auction.LastBidSequence, auction.EventSequence, auction.UpdatedAt,
		auction.ID, auction.EventSequence)
	return err
}

func (r *MySQLAuctionRepository) GetLiveAuctions(ctx context.Context) ([]*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE status IN (?, ?, ?) ORDER BY end_time ASC`

	rows, err := r.db.QueryContext(ctx, query,
		domain.AuctionScheduled.String(), domain.AuctionActive.String(), domain.AuctionExtended.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}

	return auctions, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAuction(row scanner) (*domain.Auction, error) {
	var auction domain.Auction
	var leaderID sql.NullString
	var status string

	err := row.Scan(&auction.ID, &auction.Title, &auction.Description, &auction.SellerID,
		&auction.BasePrice, &auction.CurrentPrice, &auction.MinimumIncrement,
		&leaderID, &auction.StartTime, &auction.EndTime, &status,
		&auction.LastBidSequence, &auction.EventSequence, &auction.CreatedAt, &auction.UpdatedAt)
	if err != nil {
		return nil, err
	}

	auction.LeaderID = leaderID.String
	if auction.Status, err = domain.ParseAuctionStatus(status); err != nil {
		return nil, fmt.Errorf("auction %s: %w", auction.ID, err)
	}
	return &auction, nil
}
