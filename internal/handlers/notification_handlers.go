package handlers

import (
	"net/http"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/common"
	"stocktrack/internal/query"
	"stocktrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NotificationHandlers serves the dashboard notification feed
type NotificationHandlers struct {
	notificationService services.NotificationService
}

func NewNotificationHandlers(notificationService services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationService: notificationService}
}

// ListNotificationsRequest represents query parameters for the feed
type ListNotificationsRequest struct {
	Unread bool `query:"unread"`
	query.ListParams
}

func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	var req ListNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid query parameters", nil))
	}

	response, err := h.notificationService.List(c.Request().Context(), req.Unread, &req.ListParams)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendError(c, apperrors.Validation("Invalid notification id", map[string]string{"id": "not a valid id"}))
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
