package services

import (
	"context"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/models"
	"stocktrack/internal/query"
	"stocktrack/internal/repositories"

	"github.com/google/uuid"
)

// NotificationService serves the dashboard's notification feed. Creation
// is not exposed: notifications only come out of the stock ledger.
type NotificationService interface {
	List(ctx context.Context, unreadOnly bool, params *query.ListParams) (*query.PaginatedResponse[*models.Notification], error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

var notificationSortFields = map[string]string{
	"created_at": "created_at",
}

func (s *notificationService) List(ctx context.Context, unreadOnly bool, params *query.ListParams) (*query.PaginatedResponse[*models.Notification], error) {
	params.Normalize(notificationSortFields, "created_at")

	notifications, err := s.notificationRepo.List(ctx, unreadOnly, params.PageSize, params.Offset())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	total, err := s.notificationRepo.Count(ctx, unreadOnly)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return query.NewPaginatedResponse(notifications, total, params), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	affected, err := s.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if affected == 0 {
		return apperrors.NotFound("Notification not found")
	}
	return nil
}
