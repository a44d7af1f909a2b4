package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"bidding-engine/internal/domain"
)

// MySQLEventArchive stores every lifecycle event for analytics. Redelivered
// events are ignored on the (auction_id, sequence) key.
type MySQLEventArchive struct {
	db *sql.DB
}

func NewMySQLEventArchive(db *sql.DB) *MySQLEventArchive {
	return &MySQLEventArchive{db: db}
}

func (r *MySQLEventArchive) SaveEvent(ctx context.Context, event *domain.LifecycleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO auction_events (auction_id, sequence, event_type, status, current_price, leader_id, payload, occurred_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE auction_id = auction_id
    `
	_, err = r.db.ExecContext(ctx, query,
		event.AuctionID, event.Sequence, string(event.Type), event.Status.String(),
		event.CurrentPrice, event.LeaderID, payload, event.OccurredAt)
	return err
}
