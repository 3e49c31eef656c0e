package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"stocktrack/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var itemRowColumns = []string{
	"id", "name", "sku", "barcode", "description", "category_id", "supplier_id", "location_id",
	"current_stock", "minimum_stock", "maximum_stock", "reorder_point",
	"unit_price", "cost_price", "status", "metadata", "created_at", "updated_at",
}

type ItemRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       ItemRepository
	itemID     uuid.UUID
	categoryID uuid.UUID
	supplierID uuid.UUID
	context    context.Context
}

func (suite *ItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewItemRepo(mock)
	suite.itemID = uuid.New()
	suite.categoryID = uuid.New()
	suite.supplierID = uuid.New()
	suite.context = context.Background()
}

func (suite *ItemRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepoTestSuite))
}

func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func (suite *ItemRepoTestSuite) itemRow() *pgxmock.Rows {
	return pgxmock.NewRows(itemRowColumns).
		AddRow(suite.itemID, "Hex Bolt M8", "BOLT-M8", nil, nil, suite.categoryID, suite.supplierID, nil,
			100, 10, nil, nil, 0.25, 0.10, models.ItemStatusActive, models.JSONB(nil), time.Now(), time.Now())
}

func (suite *ItemRepoTestSuite) TestCreate_Success() {
	item := &models.Item{
		ID:           suite.itemID,
		Name:         "Hex Bolt M8",
		SKU:          "BOLT-M8",
		CategoryID:   suite.categoryID,
		SupplierID:   suite.supplierID,
		CurrentStock: 100,
		MinimumStock: 10,
		UnitPrice:    0.25,
		CostPrice:    0.10,
		Status:       models.ItemStatusActive,
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO items`).
		WithArgs(item.ID, item.Name, item.SKU, item.Barcode, item.Description,
			item.CategoryID, item.SupplierID, item.LocationID,
			item.CurrentStock, item.MinimumStock, item.MaximumStock, item.ReorderPoint,
			item.UnitPrice, item.CostPrice, item.Status, item.Metadata).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, item, nil)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestCreate_WithImages() {
	item := &models.Item{
		ID:         suite.itemID,
		Name:       "Hex Bolt M8",
		SKU:        "BOLT-M8",
		CategoryID: suite.categoryID,
		SupplierID: suite.supplierID,
		Status:     models.ItemStatusActive,
	}
	images := []*models.ItemImage{
		{ID: uuid.New(), ItemID: item.ID, ObjectKey: "items/a.jpg", IsPrimary: true, Position: 0},
		{ID: uuid.New(), ItemID: item.ID, ObjectKey: "items/b.jpg", IsPrimary: false, Position: 1},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO items`).
		WithArgs(anyArgs(16)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO item_images`).
		WithArgs(images[0].ID, item.ID, images[0].ObjectKey, true, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO item_images`).
		WithArgs(images[1].ID, item.ID, images[1].ObjectKey, false, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.Create(suite.context, item, images)
	assert.NoError(suite.T(), err)
}

func (suite *ItemRepoTestSuite) TestCreate_ImageInsertFailureRollsBack() {
	item := &models.Item{ID: suite.itemID, Name: "Hex Bolt M8", SKU: "BOLT-M8"}
	images := []*models.ItemImage{
		{ID: uuid.New(), ItemID: item.ID, ObjectKey: "items/a.jpg", IsPrimary: true, Position: 0},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO items`).
		WithArgs(anyArgs(16)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO item_images`).
		WithArgs(anyArgs(5)...).
		WillReturnError(errors.New("disk full"))
	suite.mock.ExpectRollback()

	err := suite.repo.Create(suite.context, item, images)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "disk full")
}

func (suite *ItemRepoTestSuite) TestGetByID_Success() {
	suite.mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1`).
		WithArgs(suite.itemID).
		WillReturnRows(suite.itemRow())

	item, err := suite.repo.GetByID(suite.context, suite.itemID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.itemID, item.ID)
	assert.Equal(suite.T(), "BOLT-M8", item.SKU)
	assert.Equal(suite.T(), 100, item.CurrentStock)
}

func (suite *ItemRepoTestSuite) TestGetBySKU_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM items WHERE sku = \$1`).
		WithArgs("MISSING").
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetBySKU(suite.context, "MISSING")
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), item)
}

func (suite *ItemRepoTestSuite) TestList_SearchFilterBindsOnce() {
	filter := ItemListFilter{Search: "bolt"}

	suite.mock.ExpectQuery(`SELECT .+ FROM items WHERE 1=1 AND \(name ILIKE \$1 OR sku ILIKE \$1 OR barcode ILIKE \$1\) ORDER BY name ASC LIMIT \$2 OFFSET \$3`).
		WithArgs("%bolt%", 10, 0).
		WillReturnRows(suite.itemRow())

	items, err := suite.repo.List(suite.context, filter, "name ASC", 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
}

func (suite *ItemRepoTestSuite) TestList_CombinedFilters() {
	filter := ItemListFilter{
		Search:     "bolt",
		CategoryID: &suite.categoryID,
		Status:     "ACTIVE",
	}

	suite.mock.ExpectQuery(`SELECT .+ FROM items WHERE 1=1 AND \(name ILIKE \$1 OR sku ILIKE \$1 OR barcode ILIKE \$1\) AND category_id = \$2 AND status = \$3 ORDER BY created_at DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("%bolt%", suite.categoryID, "ACTIVE", 20, 20).
		WillReturnRows(pgxmock.NewRows(itemRowColumns))

	items, err := suite.repo.List(suite.context, filter, "created_at DESC", 20, 20)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), items)
}

func (suite *ItemRepoTestSuite) TestCount_SharesFilterWithList() {
	filter := ItemListFilter{Status: "ACTIVE"}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items WHERE 1=1 AND status = \$1`).
		WithArgs("ACTIVE").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	total, err := suite.repo.Count(suite.context, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, total)
}

func (suite *ItemRepoTestSuite) TestListBelowReorderPoint() {
	suite.mock.ExpectQuery(`SELECT .+ FROM items WHERE status = 'ACTIVE' AND reorder_point IS NOT NULL AND current_stock <= reorder_point ORDER BY current_stock ASC LIMIT \$1`).
		WithArgs(500).
		WillReturnRows(suite.itemRow())

	items, err := suite.repo.ListBelowReorderPoint(suite.context, 500)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
}

func (suite *ItemRepoTestSuite) TestDeleteBatch() {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	suite.mock.ExpectExec(`DELETE FROM items WHERE id = ANY\(\$1\)`).
		WithArgs(ids).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	affected, err := suite.repo.DeleteBatch(suite.context, ids)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), affected)
}

func (suite *ItemRepoTestSuite) TestUpdateStatusBatch() {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	suite.mock.ExpectExec(`UPDATE items SET status = \$1, updated_at = NOW\(\) WHERE id = ANY\(\$2\)`).
		WithArgs(models.ItemStatusArchived, ids).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	affected, err := suite.repo.UpdateStatusBatch(suite.context, ids, models.ItemStatusArchived)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), affected)
}
