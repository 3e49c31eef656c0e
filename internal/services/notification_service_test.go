package services

import (
	"context"
	"testing"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/models"
	"stocktrack/internal/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, unreadOnly, limit, offset)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Count(ctx context.Context, unreadOnly bool) (int, error) {
	args := m.Called(ctx, unreadOnly)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestNotificationList_UnreadOnly(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)

	repo.On("List", mock.Anything, true, 10, 0).
		Return([]*models.Notification{{ID: uuid.New(), Type: models.NotificationTypeLowStock, Read: false}}, nil)
	repo.On("Count", mock.Anything, true).Return(1, nil)

	resp, err := svc.List(context.Background(), true, &query.ListParams{})
	assert.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Meta.Total)
	repo.AssertExpectations(t)
}

func TestNotificationMarkRead_Success(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	id := uuid.New()

	repo.On("MarkRead", mock.Anything, id).Return(int64(1), nil)

	assert.NoError(t, svc.MarkRead(context.Background(), id))
}

func TestNotificationMarkRead_NotFound(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	id := uuid.New()

	repo.On("MarkRead", mock.Anything, id).Return(int64(0), nil)

	err := svc.MarkRead(context.Background(), id)
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
