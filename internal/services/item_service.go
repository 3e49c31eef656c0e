package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/caching"
	"stocktrack/internal/models"
	"stocktrack/internal/query"
	"stocktrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Listing responses live in the cache for five minutes unless a mutation
// invalidates them first.
const listCacheTTL = 5 * time.Minute

const recentMovementCount = 10

var itemSortFields = map[string]string{
	"name":          "name",
	"sku":           "sku",
	"current_stock": "current_stock",
	"unit_price":    "unit_price",
	"created_at":    "created_at",
}

type CreateItemInput struct {
	Name         string       `json:"name"`
	SKU          string       `json:"sku"`
	Barcode      *string      `json:"barcode,omitempty"`
	Description  *string      `json:"description,omitempty"`
	CategoryID   uuid.UUID    `json:"category_id"`
	SupplierID   uuid.UUID    `json:"supplier_id"`
	LocationID   *uuid.UUID   `json:"location_id,omitempty"`
	CurrentStock int          `json:"current_stock"`
	MinimumStock int          `json:"minimum_stock"`
	MaximumStock *int         `json:"maximum_stock,omitempty"`
	ReorderPoint *int         `json:"reorder_point,omitempty"`
	UnitPrice    float64      `json:"unit_price"`
	CostPrice    float64      `json:"cost_price"`
	Metadata     models.JSONB `json:"metadata,omitempty"`
	// ImageKeys reference objects already placed in the image bucket by
	// the upload boundary; ordering is preserved, first key is primary.
	ImageKeys []string `json:"image_keys,omitempty"`
}

type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*models.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context, params *query.ListParams) (*query.PaginatedResponse[*models.Item], error)
	BatchAction(ctx context.Context, action models.BatchAction, ids []uuid.UUID) (int64, error)
}

type itemService struct {
	itemRepo     repositories.ItemRepository
	imageRepo    repositories.ItemImageRepository
	movementRepo repositories.MovementRepository
	categoryRepo repositories.CategoryRepository
	supplierRepo repositories.SupplierRepository
	imageSvc     ImageService
	cache        caching.Store
}

func NewItemService(itemRepo repositories.ItemRepository, imageRepo repositories.ItemImageRepository,
	movementRepo repositories.MovementRepository, categoryRepo repositories.CategoryRepository,
	supplierRepo repositories.SupplierRepository, imageSvc ImageService, cache caching.Store) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		imageRepo:    imageRepo,
		movementRepo: movementRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		imageSvc:     imageSvc,
		cache:        cache,
	}
}

func validateCreateItemInput(input CreateItemInput) map[string]string {
	details := map[string]string{}
	if len(input.Name) < 2 || len(input.Name) > 100 {
		details["name"] = "name must be between 2 and 100 characters"
	}
	if len(input.SKU) < 3 || len(input.SKU) > 50 {
		details["sku"] = "sku must be between 3 and 50 characters"
	}
	if input.CategoryID == uuid.Nil {
		details["categoryId"] = "category is required"
	}
	if input.SupplierID == uuid.Nil {
		details["supplierId"] = "supplier is required"
	}
	if input.CurrentStock < 0 {
		details["currentStock"] = "current stock cannot be negative"
	}
	if input.MinimumStock < 0 {
		details["minimumStock"] = "minimum stock cannot be negative"
	}
	if input.UnitPrice < 0 {
		details["unitPrice"] = "unit price cannot be negative"
	}
	if input.CostPrice < 0 {
		details["costPrice"] = "cost price cannot be negative"
	}
	return details
}

func (s *itemService) Create(ctx context.Context, input CreateItemInput) (*models.Item, error) {
	if details := validateCreateItemInput(input); len(details) > 0 {
		return nil, apperrors.Validation("Invalid item", details)
	}

	if _, err := s.itemRepo.GetBySKU(ctx, input.SKU); err == nil {
		return nil, apperrors.Conflict(fmt.Sprintf("SKU %s already exists", input.SKU))
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Internal(err)
	}
	if input.Barcode != nil && *input.Barcode != "" {
		if _, err := s.itemRepo.GetByBarcode(ctx, *input.Barcode); err == nil {
			return nil, apperrors.Conflict(fmt.Sprintf("barcode %s already exists", *input.Barcode))
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Internal(err)
		}
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Validation("Invalid item", map[string]string{"categoryId": "category not found"})
		}
		return nil, apperrors.Internal(err)
	}
	if _, err := s.supplierRepo.GetByID(ctx, input.SupplierID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Validation("Invalid item", map[string]string{"supplierId": "supplier not found"})
		}
		return nil, apperrors.Internal(err)
	}

	item := &models.Item{
		ID:           uuid.New(),
		Name:         input.Name,
		SKU:          input.SKU,
		Barcode:      input.Barcode,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		SupplierID:   input.SupplierID,
		LocationID:   input.LocationID,
		CurrentStock: input.CurrentStock,
		MinimumStock: input.MinimumStock,
		MaximumStock: input.MaximumStock,
		ReorderPoint: input.ReorderPoint,
		UnitPrice:    input.UnitPrice,
		CostPrice:    input.CostPrice,
		Status:       models.ItemStatusActive,
		Metadata:     input.Metadata,
	}

	var images []*models.ItemImage
	for i, key := range input.ImageKeys {
		images = append(images, &models.ItemImage{
			ID:        uuid.New(),
			ItemID:    item.ID,
			ObjectKey: key,
			IsPrimary: i == 0,
			Position:  i,
		})
	}

	if err := s.itemRepo.Create(ctx, item, images); err != nil {
		return nil, apperrors.Internal(err)
	}
	item.Images = images
	s.resolveImageURLs(ctx, images)

	// A new item changes the result set of every listing combination.
	if err := s.cache.DeletePattern(ctx, "items:list:"); err != nil {
		log.Printf("WARN: failed to invalidate item listing cache: %v", err)
	}

	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	key := fmt.Sprintf("items:%s", id)
	cached := &models.Item{}
	if found, err := caching.GetJSON(ctx, s.cache, key, cached); err != nil {
		log.Printf("WARN: item cache read failed for %s: %v", id, err)
	} else if found {
		return cached, nil
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Item not found")
		}
		return nil, apperrors.Internal(err)
	}

	images, err := s.imageRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.resolveImageURLs(ctx, images)
	item.Images = images

	movements, err := s.movementRepo.ListByItem(ctx, id, recentMovementCount)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	item.RecentMovements = movements

	if err := caching.SetJSON(ctx, s.cache, key, item, listCacheTTL); err != nil {
		log.Printf("WARN: failed to cache item %s: %v", id, err)
	}
	return item, nil
}

// List resolves a paginated item listing through the cache. A hit returns
// without touching the backing store; cache failures degrade to a miss.
func (s *itemService) List(ctx context.Context, params *query.ListParams) (*query.PaginatedResponse[*models.Item], error) {
	params.Normalize(itemSortFields, "created_at")

	filter, err := itemFilterFromParams(params)
	if err != nil {
		return nil, err
	}

	key := params.CacheKey("items:list")
	cached := &query.PaginatedResponse[*models.Item]{}
	if found, cacheErr := caching.GetJSON(ctx, s.cache, key, cached); cacheErr != nil {
		log.Printf("WARN: item listing cache read failed: %v", cacheErr)
	} else if found {
		return cached, nil
	}

	items, err := s.itemRepo.List(ctx, filter, params.OrderBy(itemSortFields), params.PageSize, params.Offset())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.attachImages(ctx, items)

	response := query.NewPaginatedResponse(items, total, params)
	if err := caching.SetJSON(ctx, s.cache, key, response, listCacheTTL); err != nil {
		log.Printf("WARN: failed to cache item listing: %v", err)
	}
	return response, nil
}

func itemFilterFromParams(params *query.ListParams) (repositories.ItemListFilter, error) {
	filter := repositories.ItemListFilter{
		Search: params.Search,
		Status: params.Status,
	}
	if params.CategoryID != "" {
		id, err := uuid.Parse(params.CategoryID)
		if err != nil {
			return filter, apperrors.Validation("Invalid listing filter", map[string]string{"category": "not a valid id"})
		}
		filter.CategoryID = &id
	}
	if params.SupplierID != "" {
		id, err := uuid.Parse(params.SupplierID)
		if err != nil {
			return filter, apperrors.Validation("Invalid listing filter", map[string]string{"supplier": "not a valid id"})
		}
		filter.SupplierID = &id
	}
	return filter, nil
}

// BatchAction applies one administrative bulk operation. Deletion removes
// stored image objects best-effort after the rows are gone.
func (s *itemService) BatchAction(ctx context.Context, action models.BatchAction, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.Validation("Invalid batch request", map[string]string{"items": "at least one item id is required"})
	}

	var affected int64
	var err error
	switch action {
	case models.BatchActionDelete:
		images, imgErr := s.imageRepo.ListByItems(ctx, ids)
		if imgErr != nil {
			return 0, apperrors.Internal(imgErr)
		}
		affected, err = s.itemRepo.DeleteBatch(ctx, ids)
		if err == nil {
			for _, image := range images {
				if removeErr := s.imageSvc.Remove(ctx, image.ObjectKey); removeErr != nil {
					log.Printf("WARN: failed to remove image object %s: %v", image.ObjectKey, removeErr)
				}
			}
		}
	case models.BatchActionArchive:
		affected, err = s.itemRepo.UpdateStatusBatch(ctx, ids, models.ItemStatusArchived)
	case models.BatchActionRestore:
		affected, err = s.itemRepo.UpdateStatusBatch(ctx, ids, models.ItemStatusActive)
	default:
		return 0, apperrors.Validation("Invalid batch request", map[string]string{"action": fmt.Sprintf("unknown action %q", action)})
	}
	if err != nil {
		return 0, apperrors.Internal(err)
	}

	for _, id := range ids {
		if cacheErr := s.cache.Delete(ctx, fmt.Sprintf("items:%s", id)); cacheErr != nil {
			log.Printf("WARN: failed to invalidate item cache for %s: %v", id, cacheErr)
		}
	}
	if cacheErr := s.cache.DeletePattern(ctx, "items:list:"); cacheErr != nil {
		log.Printf("WARN: failed to invalidate item listing cache: %v", cacheErr)
	}

	return affected, nil
}

func (s *itemService) attachImages(ctx context.Context, items []*models.Item) {
	if len(items) == 0 {
		return
	}
	ids := make([]uuid.UUID, 0, len(items))
	byItem := make(map[uuid.UUID]*models.Item, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		byItem[item.ID] = item
	}
	images, err := s.imageRepo.ListByItems(ctx, ids)
	if err != nil {
		log.Printf("WARN: failed to load item images: %v", err)
		return
	}
	s.resolveImageURLs(ctx, images)
	for _, image := range images {
		if item, ok := byItem[image.ItemID]; ok {
			item.Images = append(item.Images, image)
		}
	}
}

func (s *itemService) resolveImageURLs(ctx context.Context, images []*models.ItemImage) {
	for _, image := range images {
		url, err := s.imageSvc.PresignedURL(ctx, image.ObjectKey, time.Hour)
		if err != nil {
			log.Printf("WARN: failed to presign image %s: %v", image.ObjectKey, err)
			continue
		}
		image.URL = url
	}
}
