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

// ApplyMovementInput is a validated, already-parsed movement submission.
// Reference doubles as a client-supplied idempotency hint: it is persisted
// with the movement so a re-submitted request can be recognized.
type ApplyMovementInput struct {
	ItemID    uuid.UUID           `json:"item_id"`
	Type      models.MovementType `json:"type"`
	Quantity  int                 `json:"quantity"`
	UnitPrice float64             `json:"unit_price"`
	Reference *string             `json:"reference,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	Metadata  models.JSONB        `json:"metadata,omitempty"`
}

// LedgerService is the transactional core. ApplyMovement is the only write
// path for item stock levels and the only creator of notifications.
type LedgerService interface {
	ApplyMovement(ctx context.Context, input ApplyMovementInput) (*models.StockMovement, *models.Item, error)
	ListMovements(ctx context.Context, filter models.MovementFilter, params *query.ListParams) (*query.PaginatedResponse[*models.StockMovement], error)
}

type ledgerService struct {
	db           repositories.TxDB
	movementRepo repositories.MovementRepository
	cache        caching.Store
}

func NewLedgerService(db repositories.TxDB, movementRepo repositories.MovementRepository, cache caching.Store) LedgerService {
	return &ledgerService{
		db:           db,
		movementRepo: movementRepo,
		cache:        cache,
	}
}

func validateMovementInput(input ApplyMovementInput) error {
	details := map[string]string{}
	if input.ItemID == uuid.Nil {
		details["itemId"] = "item id is required"
	}
	if !input.Type.IsValid() {
		details["type"] = fmt.Sprintf("unknown movement type %q", input.Type)
	}
	if input.Quantity < 1 {
		details["quantity"] = "quantity must be at least 1"
	}
	if input.UnitPrice < 0 {
		details["unitPrice"] = "unit price cannot be negative"
	}
	if len(details) > 0 {
		return apperrors.Validation("Invalid stock movement", details)
	}
	return nil
}

// ApplyMovement validates and applies one stock movement as a single atomic
// unit: the balance check, the movement insert, the stock update and the
// low-stock notification all commit or roll back together. The item row is
// locked for the duration, so two concurrent outgoing movements on the same
// item cannot both pass the balance check against the same value.
//
// The transaction is never retried here: after a transport failure the
// backend may or may not have committed, and only the caller can decide to
// re-submit (carrying the same reference).
func (s *ledgerService) ApplyMovement(ctx context.Context, input ApplyMovementInput) (*models.StockMovement, *models.Item, error) {
	if err := validateMovementInput(input); err != nil {
		return nil, nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	defer tx.Rollback(ctx)

	item := &models.Item{}
	err = tx.QueryRow(ctx, `
		SELECT id, name, sku, current_stock, minimum_stock
		FROM items
		WHERE id = $1
		FOR UPDATE
	`, input.ItemID).Scan(&item.ID, &item.Name, &item.SKU, &item.CurrentStock, &item.MinimumStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NotFound("Item not found")
		}
		return nil, nil, apperrors.Internal(err)
	}

	outgoing := input.Type.Outgoing()
	if outgoing && item.CurrentStock < input.Quantity {
		return nil, nil, apperrors.InsufficientStock("Insufficient stock")
	}

	movement := &models.StockMovement{
		ID:         uuid.New(),
		ItemID:     input.ItemID,
		Type:       input.Type,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		TotalPrice: float64(input.Quantity) * input.UnitPrice,
		Reference:  input.Reference,
		Notes:      input.Notes,
		Metadata:   input.Metadata,
		Status:     models.MovementStatusCompleted,
		CreatedAt:  time.Now().UTC(),
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO stock_movements (id, item_id, type, quantity, unit_price, total_price, reference, notes, metadata, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, movement.ID, movement.ItemID, movement.Type, movement.Quantity, movement.UnitPrice,
		movement.TotalPrice, movement.Reference, movement.Notes, movement.Metadata,
		movement.Status, movement.CreatedAt)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	delta := input.Quantity
	if outgoing {
		delta = -input.Quantity
	}
	err = tx.QueryRow(ctx, `
		UPDATE items
		SET current_stock = current_stock + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING current_stock, updated_at
	`, delta, input.ItemID).Scan(&item.CurrentStock, &item.UpdatedAt)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	// Checked against the value just written, not a re-fetched one. Every
	// qualifying movement produces its own notification; there is no
	// dedup window.
	if item.CurrentStock <= item.MinimumStock {
		_, err = tx.Exec(ctx, `
		INSERT INTO notifications (id, type, title, message, metadata, read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
	`, uuid.New(), models.NotificationTypeLowStock, "Low Stock Alert",
			fmt.Sprintf("Item %s (%s) has reached low stock level", item.Name, item.SKU),
			models.JSONB{
				"itemId":       item.ID.String(),
				"currentStock": item.CurrentStock,
				"minimumStock": item.MinimumStock,
			})
		if err != nil {
			return nil, nil, apperrors.Internal(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	// Invalidate only after the commit is durable, so a racing read cannot
	// re-populate the cache from pre-commit state we just invalidated.
	s.invalidateAfterMovement(ctx, input.ItemID)

	return movement, item, nil
}

func (s *ledgerService) invalidateAfterMovement(ctx context.Context, itemID uuid.UUID) {
	if err := s.cache.Delete(ctx, fmt.Sprintf("items:%s", itemID)); err != nil {
		log.Printf("WARN: failed to invalidate item cache for %s: %v", itemID, err)
	}
	if err := s.cache.DeletePattern(ctx, "items:list:"); err != nil {
		log.Printf("WARN: failed to invalidate item listing cache: %v", err)
	}
	if err := s.cache.DeletePattern(ctx, "movements:list:"); err != nil {
		log.Printf("WARN: failed to invalidate movement listing cache: %v", err)
	}
}

var movementSortFields = map[string]string{
	"created_at": "created_at",
	"quantity":   "quantity",
	"type":       "type",
}

// ListMovements resolves a paginated movement listing through the cache,
// falling back to the store on miss or cache failure.
func (s *ledgerService) ListMovements(ctx context.Context, filter models.MovementFilter, params *query.ListParams) (*query.PaginatedResponse[*models.StockMovement], error) {
	params.Normalize(movementSortFields, "created_at")

	key := movementListCacheKey(filter, params)
	cached := &query.PaginatedResponse[*models.StockMovement]{}
	if found, err := caching.GetJSON(ctx, s.cache, key, cached); err != nil {
		log.Printf("WARN: movement listing cache read failed: %v", err)
	} else if found {
		return cached, nil
	}

	movements, err := s.movementRepo.List(ctx, filter, params.OrderBy(movementSortFields), params.PageSize, params.Offset())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	total, err := s.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	response := query.NewPaginatedResponse(movements, total, params)
	if err := caching.SetJSON(ctx, s.cache, key, response, listCacheTTL); err != nil {
		log.Printf("WARN: failed to cache movement listing: %v", err)
	}
	return response, nil
}

func movementListCacheKey(filter models.MovementFilter, params *query.ListParams) string {
	itemID := ""
	if filter.ItemID != nil {
		itemID = filter.ItemID.String()
	}
	movementType := ""
	if filter.Type != nil {
		movementType = string(*filter.Type)
	}
	return fmt.Sprintf("movements:list:item=%s|type=%s|page=%d|size=%d|sort=%s|order=%s",
		itemID, movementType, params.Page, params.PageSize, params.SortBy, params.SortOrder)
}
