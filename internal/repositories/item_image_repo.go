package repositories

import (
	"context"

	"stocktrack/internal/models"

	"github.com/google/uuid"
)

type ItemImageRepository interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.ItemImage, error)
	ListByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*models.ItemImage, error)
}

type itemImageRepo struct {
	db DB
}

// NewItemImageRepo reads image attachment records. Rows are written by the
// item repository inside the item-create transaction.
func NewItemImageRepo(db DB) ItemImageRepository {
	return &itemImageRepo{db: db}
}

func (r *itemImageRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.ItemImage, error) {
	return r.ListByItems(ctx, []uuid.UUID{itemID})
}

func (r *itemImageRepo) ListByItems(ctx context.Context, itemIDs []uuid.UUID) ([]*models.ItemImage, error) {
	query := `
		SELECT id, item_id, object_key, is_primary, position, created_at
		FROM item_images
		WHERE item_id = ANY($1)
		ORDER BY item_id, position ASC
	`
	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ItemImage
	for rows.Next() {
		image := &models.ItemImage{}
		if err := rows.Scan(&image.ID, &image.ItemID, &image.ObjectKey, &image.IsPrimary,
			&image.Position, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
