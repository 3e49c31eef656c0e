package repositories

import (
	"context"

	"stocktrack/internal/models"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.UserActivity) error
}

type activityRepo struct {
	db DB
}

func NewActivityRepo(db DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *models.UserActivity) error {
	query := `
		INSERT INTO user_activity (id, user_id, action, timestamp)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, activity.ID, activity.UserID, activity.Action, activity.Timestamp)
	return err
}
