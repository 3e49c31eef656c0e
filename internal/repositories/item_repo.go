package repositories

import (
	"context"
	"fmt"

	"stocktrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemListFilter is the normalized predicate for item listings. The page
// query and the count query must be built from the same filter.
type ItemListFilter struct {
	Search     string
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	Status     string
}

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item, images []*models.ItemImage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetBySKU(ctx context.Context, sku string) (*models.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*models.Item, error)
	List(ctx context.Context, filter ItemListFilter, orderBy string, limit, offset int) ([]*models.Item, error)
	Count(ctx context.Context, filter ItemListFilter) (int, error)
	ListBelowReorderPoint(ctx context.Context, limit int) ([]*models.Item, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error)
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status models.ItemStatus) (int64, error)
}

type itemRepo struct {
	db TxDB
}

func NewItemRepo(db TxDB) ItemRepository {
	return &itemRepo{db: db}
}

const itemColumns = `id, name, sku, barcode, description, category_id, supplier_id, location_id,
		current_stock, minimum_stock, maximum_stock, reorder_point,
		unit_price, cost_price, status, metadata, created_at, updated_at`

func scanItem(row pgx.Row) (*models.Item, error) {
	item := &models.Item{}
	err := row.Scan(&item.ID, &item.Name, &item.SKU, &item.Barcode, &item.Description,
		&item.CategoryID, &item.SupplierID, &item.LocationID,
		&item.CurrentStock, &item.MinimumStock, &item.MaximumStock, &item.ReorderPoint,
		&item.UnitPrice, &item.CostPrice, &item.Status, &item.Metadata,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create inserts the item and its image records in one transaction.
func (r *itemRepo) Create(ctx context.Context, item *models.Item, images []*models.ItemImage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO items (id, name, sku, barcode, description, category_id, supplier_id, location_id,
			current_stock, minimum_stock, maximum_stock, reorder_point,
			unit_price, cost_price, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
	`
	_, err = tx.Exec(ctx, query, item.ID, item.Name, item.SKU, item.Barcode, item.Description,
		item.CategoryID, item.SupplierID, item.LocationID,
		item.CurrentStock, item.MinimumStock, item.MaximumStock, item.ReorderPoint,
		item.UnitPrice, item.CostPrice, item.Status, item.Metadata)
	if err != nil {
		return err
	}

	for _, image := range images {
		_, err = tx.Exec(ctx, `
		INSERT INTO item_images (id, item_id, object_key, is_primary, position, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, image.ID, item.ID, image.ObjectKey, image.IsPrimary, image.Position)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE id = $1`, itemColumns)
	return scanItem(r.db.QueryRow(ctx, query, id))
}

func (r *itemRepo) GetBySKU(ctx context.Context, sku string) (*models.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE sku = $1`, itemColumns)
	return scanItem(r.db.QueryRow(ctx, query, sku))
}

func (r *itemRepo) GetByBarcode(ctx context.Context, barcode string) (*models.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE barcode = $1`, itemColumns)
	return scanItem(r.db.QueryRow(ctx, query, barcode))
}

// buildItemFilter renders the WHERE clause shared by List and Count so both
// queries always reflect the same predicate.
func buildItemFilter(filter ItemListFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d OR barcode ILIKE $%d)`, n, n, n)
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		where += fmt.Sprintf(` AND supplier_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	return where, args
}

// List returns one page of items. orderBy must come from the allow-listed
// sort mapping, never from raw client input.
func (r *itemRepo) List(ctx context.Context, filter ItemListFilter, orderBy string, limit, offset int) ([]*models.Item, error) {
	where, args := buildItemFilter(filter)

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`SELECT %s FROM items%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		itemColumns, where, orderBy, limitPos, offsetPos)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) Count(ctx context.Context, filter ItemListFilter) (int, error) {
	where, args := buildItemFilter(filter)
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`+where, args...).Scan(&total)
	return total, err
}

// ListBelowReorderPoint returns active items at or below their reorder
// point, most depleted first. Used by the periodic reorder scan.
func (r *itemRepo) ListBelowReorderPoint(ctx context.Context, limit int) ([]*models.Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM items
		WHERE status = 'ACTIVE' AND reorder_point IS NOT NULL AND current_stock <= reorder_point
		ORDER BY current_stock ASC
		LIMIT $1
	`, itemColumns)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) DeleteBatch(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *itemRepo) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, status models.ItemStatus) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE items SET status = $1, updated_at = NOW() WHERE id = ANY($2)`, status, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
