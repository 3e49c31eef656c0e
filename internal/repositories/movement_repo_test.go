package repositories

import (
	"context"
	"testing"
	"time"

	"stocktrack/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var movementRowColumns = []string{
	"id", "item_id", "type", "quantity", "unit_price", "total_price",
	"reference", "notes", "metadata", "status", "created_at",
}

type MovementRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    MovementRepository
	itemID  uuid.UUID
	context context.Context
}

func (suite *MovementRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewMovementRepo(mock)
	suite.itemID = uuid.New()
	suite.context = context.Background()
}

func (suite *MovementRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMovementRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MovementRepoTestSuite))
}

func (suite *MovementRepoTestSuite) movementRow(movementType models.MovementType, quantity int) *pgxmock.Rows {
	return pgxmock.NewRows(movementRowColumns).
		AddRow(uuid.New(), suite.itemID, movementType, quantity, 2.0, 2.0*float64(quantity),
			nil, nil, models.JSONB(nil), models.MovementStatusCompleted, time.Now())
}

func (suite *MovementRepoTestSuite) TestListByItem() {
	suite.mock.ExpectQuery(`SELECT .+ FROM stock_movements WHERE item_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs(suite.itemID, 10).
		WillReturnRows(suite.movementRow(models.MovementTypeSale, 5))

	movements, err := suite.repo.ListByItem(suite.context, suite.itemID, 10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), movements, 1)
	assert.Equal(suite.T(), models.MovementTypeSale, movements[0].Type)
	assert.Equal(suite.T(), 10.0, movements[0].TotalPrice)
}

func (suite *MovementRepoTestSuite) TestList_NoFilter() {
	suite.mock.ExpectQuery(`SELECT .+ FROM stock_movements WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(suite.movementRow(models.MovementTypePurchase, 20))

	movements, err := suite.repo.List(suite.context, models.MovementFilter{}, "created_at DESC", 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), movements, 1)
}

func (suite *MovementRepoTestSuite) TestList_ItemAndTypeFilter() {
	movementType := models.MovementTypeSale
	filter := models.MovementFilter{ItemID: &suite.itemID, Type: &movementType}

	suite.mock.ExpectQuery(`SELECT .+ FROM stock_movements WHERE 1=1 AND item_id = \$1 AND type = \$2 ORDER BY quantity DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(suite.itemID, movementType, 25, 50).
		WillReturnRows(pgxmock.NewRows(movementRowColumns))

	movements, err := suite.repo.List(suite.context, filter, "quantity DESC", 25, 50)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), movements)
}

func (suite *MovementRepoTestSuite) TestCount_WithTypeFilter() {
	movementType := models.MovementTypeWriteOff
	filter := models.MovementFilter{Type: &movementType}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM stock_movements WHERE 1=1 AND type = \$1`).
		WithArgs(movementType).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	total, err := suite.repo.Count(suite.context, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, total)
}
