package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"bidding-engine/internal/domain"
)

type MySQLNotificationRepository struct {
	db *sql.DB
}

func NewMySQLNotificationRepository(db *sql.DB) *MySQLNotificationRepository {
	return &MySQLNotificationRepository{db: db}
}

func (r *MySQLNotificationRepository) SaveNotification(ctx context.Context, n *domain.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO notifications (id, user_id, title, content, data, is_read, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err = r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, data, n.Read, n.CreatedAt)
	return err
}
