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

// MovementHandlers handles stock movement HTTP requests
type MovementHandlers struct {
	ledgerService services.LedgerService
}

func NewMovementHandlers(ledgerService services.LedgerService) *MovementHandlers {
	return &MovementHandlers{ledgerService: ledgerService}
}

// CreateMovement applies one stock movement through the ledger and returns
// the created movement together with the updated item.
func (h *MovementHandlers) CreateMovement(c echo.Context) error {
	var input services.ApplyMovementInput
	if err := c.Bind(&input); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid request body", nil))
	}

	movement, item, err := h.ledgerService.ApplyMovement(c.Request().Context(), input)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"movement": movement,
		"item":     item,
	})
}

// ListMovementsRequest represents query parameters for movement listings
type ListMovementsRequest struct {
	ItemID string `query:"item"`
	Type   string `query:"type"`
	query.ListParams
}

// ListMovements returns one page of the movement history.
func (h *MovementHandlers) ListMovements(c echo.Context) error {
	var req ListMovementsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid query parameters", nil))
	}

	var filter models.MovementFilter
	if req.ItemID != "" {
		id, err := uuid.Parse(req.ItemID)
		if err != nil {
			return common.SendError(c, apperrors.Validation("Invalid listing filter", map[string]string{"item": "not a valid id"}))
		}
		filter.ItemID = &id
	}
	if req.Type != "" {
		movementType := models.MovementType(req.Type)
		if !movementType.IsValid() {
			return common.SendError(c, apperrors.Validation("Invalid listing filter", map[string]string{"type": "unknown movement type"}))
		}
		filter.Type = &movementType
	}

	response, err := h.ledgerService.ListMovements(c.Request().Context(), filter, &req.ListParams)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}
