package repositories

import (
	"context"
	"fmt"

	"stocktrack/internal/models"

	"github.com/google/uuid"
)

type MovementRepository interface {
	ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.StockMovement, error)
	List(ctx context.Context, filter models.MovementFilter, orderBy string, limit, offset int) ([]*models.StockMovement, error)
	Count(ctx context.Context, filter models.MovementFilter) (int, error)
}

type movementRepo struct {
	db DB
}

// NewMovementRepo serves the movement read path. Movements are written only
// by the stock ledger inside its transaction; there is no Create here.
func NewMovementRepo(db DB) MovementRepository {
	return &movementRepo{db: db}
}

const movementColumns = `id, item_id, type, quantity, unit_price, total_price, reference, notes, metadata, status, created_at`

func (r *movementRepo) ListByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]*models.StockMovement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stock_movements
		WHERE item_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, movementColumns)
	rows, err := r.db.Query(ctx, query, itemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		movement := &models.StockMovement{}
		if err := rows.Scan(&movement.ID, &movement.ItemID, &movement.Type, &movement.Quantity,
			&movement.UnitPrice, &movement.TotalPrice, &movement.Reference, &movement.Notes,
			&movement.Metadata, &movement.Status, &movement.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

func buildMovementFilter(filter models.MovementFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.ItemID != nil {
		args = append(args, *filter.ItemID)
		where += fmt.Sprintf(` AND item_id = $%d`, len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		where += fmt.Sprintf(` AND type = $%d`, len(args))
	}

	return where, args
}

// List returns one page of movements. orderBy must come from the
// allow-listed sort mapping, never from raw client input.
func (r *movementRepo) List(ctx context.Context, filter models.MovementFilter, orderBy string, limit, offset int) ([]*models.StockMovement, error) {
	where, args := buildMovementFilter(filter)

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`SELECT %s FROM stock_movements%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		movementColumns, where, orderBy, limitPos, offsetPos)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		movement := &models.StockMovement{}
		if err := rows.Scan(&movement.ID, &movement.ItemID, &movement.Type, &movement.Quantity,
			&movement.UnitPrice, &movement.TotalPrice, &movement.Reference, &movement.Notes,
			&movement.Metadata, &movement.Status, &movement.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

func (r *movementRepo) Count(ctx context.Context, filter models.MovementFilter) (int, error) {
	where, args := buildMovementFilter(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements`+where, args...).Scan(&total)
	return total, err
}
