package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/query"
	"stocktrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ApplyMovement(ctx context.Context, input services.ApplyMovementInput) (*models.StockMovement, *models.Item, error) {
	args := m.Called(ctx, input)
	var movement *models.StockMovement
	var item *models.Item
	if args.Get(0) != nil {
		movement = args.Get(0).(*models.StockMovement)
	}
	if args.Get(1) != nil {
		item = args.Get(1).(*models.Item)
	}
	return movement, item, args.Error(2)
}

func (m *MockLedgerService) ListMovements(ctx context.Context, filter models.MovementFilter, params *query.ListParams) (*query.PaginatedResponse[*models.StockMovement], error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.PaginatedResponse[*models.StockMovement]), args.Error(1)
}

func postMovement(t *testing.T, h *MovementHandlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/stock-movements", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.CreateMovement(c))
	return rec
}

func TestCreateMovement_Success(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewMovementHandlers(svc)
	itemID := uuid.New()

	movement := &models.StockMovement{ID: uuid.New(), ItemID: itemID, Type: models.MovementTypeSale, Quantity: 5}
	item := &models.Item{ID: itemID, CurrentStock: 45}
	svc.On("ApplyMovement", mock.Anything, mock.Anything).Return(movement, item, nil)

	rec := postMovement(t, h, `{"item_id":"`+itemID.String()+`","type":"SALE","quantity":5,"unit_price":2}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "movement")
	assert.Contains(t, resp, "item")
}

func TestCreateMovement_InsufficientStockMapsTo400(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewMovementHandlers(svc)

	svc.On("ApplyMovement", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.InsufficientStock("Insufficient stock"))

	rec := postMovement(t, h, `{"item_id":"`+uuid.NewString()+`","type":"SALE","quantity":500,"unit_price":2}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.KindInsufficientStock), resp.Error.Code)
}

func TestCreateMovement_ItemNotFoundMapsTo404(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewMovementHandlers(svc)

	svc.On("ApplyMovement", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.NotFound("Item not found"))

	rec := postMovement(t, h, `{"item_id":"`+uuid.NewString()+`","type":"PURCHASE","quantity":1,"unit_price":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMovement_InternalErrorStaysOpaque(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewMovementHandlers(svc)

	svc.On("ApplyMovement", mock.Anything, mock.Anything).
		Return(nil, nil, apperrors.Internal(assert.AnError))

	rec := postMovement(t, h, `{"item_id":"`+uuid.NewString()+`","type":"PURCHASE","quantity":1,"unit_price":1}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestListMovements_InvalidTypeFilter(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewMovementHandlers(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/stock-movements?type=TELEPORT", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListMovements(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListMovements", mock.Anything, mock.Anything, mock.Anything)
}

func TestListMovements_PassesFilterThrough(t *testing.T) {
	svc := new(MockLedgerService)
	h := NewMovementHandlers(svc)
	itemID := uuid.New()

	svc.On("ListMovements", mock.Anything, mock.MatchedBy(func(f models.MovementFilter) bool {
		return f.ItemID != nil && *f.ItemID == itemID && f.Type != nil && *f.Type == models.MovementTypeSale
	}), mock.Anything).Return(&query.PaginatedResponse[*models.StockMovement]{
		Data: []*models.StockMovement{},
		Meta: query.Meta{Total: 0, Page: 1, PageSize: 10},
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/stock-movements?item="+itemID.String()+"&type=SALE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListMovements(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
