package mysql

import (
	"context"
	"database/sql"

	"bidding-engine/internal/domain"
)

type MySQLBidRepository struct {
	db *sql.DB
}

func NewMySQLBidRepository(db *sql.DB) *MySQLBidRepository {
	return &MySQLBidRepository{db: db}
}

// SaveBid is safe to repeat: the primary key is (auction_id, sequence).
func (r *MySQLBidRepository) SaveBid(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (auction_id, sequence, bidder_id, amount, submitted_at)
        VALUES (?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE auction_id = auction_id
    `
	_, err := r.db.ExecContext(ctx, query,
		bid.AuctionID, bid.Sequence, bid.BidderID, bid.Amount, bid.SubmittedAt)
	return err
}

func (r *MySQLBidRepository) GetBids(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	query := `
        SELECT auction_id, sequence, bidder_id, amount, submitted_at
        FROM bids
        WHERE auction_id = ?
        ORDER BY sequence ASC
    `

	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []domain.Bid
	for rows.Next() {
		var bid domain.Bid
		err := rows.Scan(&bid.AuctionID, &bid.Sequence, &bid.BidderID, &bid.Amount, &bid.SubmittedAt)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}

	return bids, rows.Err()
}
