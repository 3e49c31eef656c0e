package handlers

import (
	"net/http"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/common"
	"stocktrack/internal/models"
	"stocktrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CatalogHandlers serves the category and supplier lookups the dashboard
// filter dropdowns are built from.
type CatalogHandlers struct {
	categoryRepo repositories.CategoryRepository
	supplierRepo repositories.SupplierRepository
}

func NewCatalogHandlers(categoryRepo repositories.CategoryRepository, supplierRepo repositories.SupplierRepository) *CatalogHandlers {
	return &CatalogHandlers{categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

type listRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (r *listRequest) normalize() {
	if r.Limit <= 0 {
		r.Limit = 50
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

func (h *CatalogHandlers) ListCategories(c echo.Context) error {
	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid query parameters", nil))
	}
	req.normalize()

	categories, err := h.categoryRepo.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, apperrors.Internal(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": categories})
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (h *CatalogHandlers) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid request body", nil))
	}
	if req.Name == "" {
		return common.SendError(c, apperrors.Validation("Invalid category", map[string]string{"name": "name is required"}))
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.categoryRepo.Create(c.Request().Context(), category); err != nil {
		return common.SendError(c, apperrors.Internal(err))
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandlers) ListSuppliers(c echo.Context) error {
	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid query parameters", nil))
	}
	req.normalize()

	suppliers, err := h.supplierRepo.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, apperrors.Internal(err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"suppliers": suppliers})
}

type createSupplierRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (h *CatalogHandlers) CreateSupplier(c echo.Context) error {
	var req createSupplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendError(c, apperrors.Validation("Invalid request body", nil))
	}
	if req.Name == "" {
		return common.SendError(c, apperrors.Validation("Invalid supplier", map[string]string{"name": "name is required"}))
	}

	supplier := &models.Supplier{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.supplierRepo.Create(c.Request().Context(), supplier); err != nil {
		return common.SendError(c, apperrors.Internal(err))
	}
	return c.JSON(http.StatusCreated, supplier)
}
