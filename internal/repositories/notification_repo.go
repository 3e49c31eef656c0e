package repositories

import (
	"context"

	"stocktrack/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	Count(ctx context.Context, unreadOnly bool) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) (int64, error)
}

type notificationRepo struct {
	db DB
}

// NewNotificationRepo serves the notification read path. Rows are created
// only by the stock ledger inside its transaction.
func NewNotificationRepo(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	query := `
		SELECT id, type, title, message, metadata, read, created_at
		FROM notifications
	`
	if unreadOnly {
		query += ` WHERE read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		if err := rows.Scan(&notification.ID, &notification.Type, &notification.Title,
			&notification.Message, &notification.Metadata, &notification.Read,
			&notification.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) Count(ctx context.Context, unreadOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM notifications`
	if unreadOnly {
		query += ` WHERE read = FALSE`
	}
	var total int
	err := r.db.QueryRow(ctx, query).Scan(&total)
	return total, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
