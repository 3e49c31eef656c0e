package handlers

import (
	"net/http"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/query"
	"stocktrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ItemHandlers handles item-related HTTP requests
type ItemHandlers struct {
	itemService services.ItemService
}

func NewItemHandlers(itemService services.ItemService) *ItemHandlers {
	return &ItemHandlers{itemService: itemService}
}

// ListItems returns one page of items filtered and sorted per query params.
func (h *ItemHandlers) ListItems(c echo.Context) error {
	var params query.ListParams
	if err := c.Bind(&params); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid query parameters", nil))
	}

	response, err := h.itemService.List(c.Request().Context(), &params)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// GetItem returns one item with its images and recent movements.
func (h *ItemHandlers) GetItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendError(c, apperrors.Validation("Invalid item id", map[string]string{"id": "not a valid id"}))
	}

	item, err := h.itemService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// CreateItem creates a new item with its image attachment records.
func (h *ItemHandlers) CreateItem(c echo.Context) error {
	var input services.CreateItemInput
	if err := c.Bind(&input); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid request body", nil))
	}

	item, err := h.itemService.Create(c.Request().Context(), input)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// BatchRequest is the administrative bulk operation payload
type BatchRequest struct {
	Items  []uuid.UUID        `json:"items"`
	Action models.BatchAction `json:"action"`
}

// BatchItems applies delete/archive/restore to a set of items.
func (h *ItemHandlers) BatchItems(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid request body", nil))
	}

	affected, err := h.itemService.BatchAction(c.Request().Context(), req.Action, req.Items)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"affected": affected,
	})
}
