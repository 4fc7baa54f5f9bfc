package contractrepo_test

import (
	"context"
	"testing"
	"time"

	"kitchen/internal/adapters/out/postgres/contractrepo"
	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// ContractRepositoryIntegrationTestSuite provides integration tests for
// ContractRepository using PostgreSQL containers.
type ContractRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *contractrepo.GormContractRepository
	tracker    *MockAggregateTracker
}

func (suite *ContractRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&contractrepo.ContractDTO{}, &contractrepo.ContractItemDTO{}))
}

func (suite *ContractRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE contracts CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = contractrepo.NewGormContractRepository(suite.db, suite.tracker)
}

func (suite *ContractRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ContractRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAllFields() {
	original := suite.createTestContract("order-rt", 1)

	err := suite.repository.Add(context.Background(), original)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(context.Background(), original.ID())
	suite.Require().NoError(err)

	suite.True(original.IsEqual(loaded))
	suite.Equal(original.TenantID(), loaded.TenantID())
	suite.Equal(original.OrderID(), loaded.OrderID())
	suite.Equal(original.Priority(), loaded.Priority())
	suite.Equal(original.SpecialInstructions(), loaded.SpecialInstructions())
	suite.Equal(original.Version(), loaded.Version())
	suite.WithinDuration(original.EstimatedCompletion(), loaded.EstimatedCompletion(), time.Second)

	suite.Require().Len(loaded.Items(), len(original.Items()))
	for i, item := range original.Items() {
		suite.Equal(item.ID(), loaded.Items()[i].ID())
		suite.Equal(item.RecipeID(), loaded.Items()[i].RecipeID())
		suite.Equal(item.RecipeVersion(), loaded.Items()[i].RecipeVersion())
		suite.Equal(item.Quantity(), loaded.Items()[i].Quantity())
		suite.Equal(item.Modifications(), loaded.Items()[i].Modifications())
		suite.Equal(item.Allergens(), loaded.Items()[i].Allergens())
	}
}

func (suite *ContractRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderVersion_Fails() {
	first := suite.createTestContract("order-dup", 2)
	second := suite.createTestContract("order-dup-second", 2)

	suite.Require().NoError(suite.repository.Add(context.Background(), first))

	// Same (order, version) pair under a different contract id must be
	// rejected by the unique index.
	err := suite.repository.Add(context.Background(), suite.recreateForOrder(second, first.OrderID()))
	suite.Require().Error(err)
}

func (suite *ContractRepositoryIntegrationTestSuite) TestGet_NonExistentContract_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ContractRepositoryIntegrationTestSuite) TestGetByOrderAndVersion_Existing_ReturnsContract() {
	original := suite.createTestContract("order-lookup", 3)
	suite.Require().NoError(suite.repository.Add(context.Background(), original))

	loaded, err := suite.repository.GetByOrderAndVersion(context.Background(), original.OrderID(), 3)
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded)
	suite.True(original.IsEqual(loaded))
}

func (suite *ContractRepositoryIntegrationTestSuite) TestGetByOrderAndVersion_Missing_ReturnsNil() {
	original := suite.createTestContract("order-miss", 1)
	suite.Require().NoError(suite.repository.Add(context.Background(), original))

	loaded, err := suite.repository.GetByOrderAndVersion(context.Background(), original.OrderID(), 2)
	suite.Require().NoError(err)
	suite.Nil(loaded)
}

func (suite *ContractRepositoryIntegrationTestSuite) createTestContract(orderKey string, version int) *contract.Contract {
	contractID := kernel.NewDeterministicUUID("it/contract/" + orderKey)
	orderID := kernel.NewDeterministicUUID("it/order/" + orderKey)

	item, err := contract.NewItem(
		kernel.NewDeterministicUUID("it/item/"+orderKey),
		kernel.NewUUID(),
		version,
		kernel.NewUUID(),
		2,
		[]string{"no onions"},
		[]string{"gluten"},
		[]string{"gluten"},
	)
	suite.Require().NoError(err)

	c, err := contract.NewContract(
		contractID,
		kernel.NewUUID(),
		orderID,
		[]contract.Item{item},
		contract.PriorityHigh,
		"table 7",
		time.Now().UTC().Add(30*time.Minute),
		time.Now().UTC(),
		version,
	)
	suite.Require().NoError(err)
	return c
}

// recreateForOrder rebuilds a contract against another order id, keeping
// everything else, so unique-index collisions can be provoked deliberately.
func (suite *ContractRepositoryIntegrationTestSuite) recreateForOrder(c *contract.Contract, orderID kernel.UUID) *contract.Contract {
	rebuilt, err := contract.NewContract(
		c.ID(),
		c.TenantID(),
		orderID,
		c.Items(),
		c.Priority(),
		c.SpecialInstructions(),
		c.EstimatedCompletion(),
		c.CreatedAt(),
		c.Version(),
	)
	suite.Require().NoError(err)
	return rebuilt
}

func TestContractRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ContractRepositoryIntegrationTestSuite))
}
