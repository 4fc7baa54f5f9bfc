package postgres_test

import (
	"context"
	"testing"
	"time"

	"kitchen/internal/adapters/out/postgres"
	"kitchen/internal/adapters/out/postgres/contractrepo"
	"kitchen/internal/adapters/out/postgres/kitchenorderrepo"
	"kitchen/internal/adapters/out/postgres/stationrepo"
	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that contract and kitchen order
// writes share one transaction: they become visible together on commit and
// vanish together on rollback.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&contractrepo.ContractDTO{},
		&contractrepo.ContractItemDTO{},
		&kitchenorderrepo.KitchenOrderDTO{},
		&kitchenorderrepo.KitchenItemDTO{},
		&kitchenorderrepo.StatusChangeDTO{},
		&stationrepo.StationDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE contracts, kitchen_orders, stations CASCADE").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsContractAndKitchenOrderTogether() {
	ctx := context.Background()
	c, ko := suite.createProductionPair("commit")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ContractRepository().Add(ctx, c))
	suite.Require().NoError(uow.KitchenOrderRepository().Add(ctx, ko))
	suite.Require().NoError(uow.Commit(ctx))

	verification := suite.factory.Create()
	loadedContract, err := verification.ContractRepository().Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.True(c.IsEqual(loadedContract))

	loadedOrder, err := verification.KitchenOrderRepository().Get(ctx, ko.ID())
	suite.Require().NoError(err)
	suite.True(ko.IsEqual(loadedOrder))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()
	c, ko := suite.createProductionPair("rollback")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ContractRepository().Add(ctx, c))
	suite.Require().NoError(uow.KitchenOrderRepository().Add(ctx, ko))
	suite.Require().NoError(uow.Rollback(ctx))

	verification := suite.factory.Create()
	_, err := verification.ContractRepository().Get(ctx, c.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = verification.KitchenOrderRepository().Get(ctx, ko.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(context.Background()))
	suite.Require().Error(uow.Rollback(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStationRepository_WorksOutsideTransaction() {
	ctx := context.Background()

	s, err := station.NewStation(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Grill 1",
		station.TypeGrill,
		2,
		[]string{"grill"},
		[]string{"grill"},
		[]string{"Dana"},
		10,
	)
	suite.Require().NoError(err)

	// Without Begin, repository calls run against the base connection.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.StationRepository().Add(ctx, s))

	loaded, err := suite.factory.Create().StationRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.True(s.IsEqual(loaded))
}

func (suite *UnitOfWorkIntegrationTestSuite) createProductionPair(key string) (*contract.Contract, *kitchenorder.KitchenOrder) {
	recipeID := kernel.NewDeterministicUUID("uow/recipe/" + key)
	productID := kernel.NewDeterministicUUID("uow/product/" + key)

	contractItem, err := contract.NewItem(
		kernel.NewDeterministicUUID("uow/contract-item/"+key),
		recipeID,
		1,
		productID,
		1,
		nil,
		nil,
		nil,
	)
	suite.Require().NoError(err)

	c, err := contract.NewContract(
		kernel.NewDeterministicUUID("uow/contract/"+key),
		kernel.NewUUID(),
		kernel.NewDeterministicUUID("uow/order/"+key),
		[]contract.Item{contractItem},
		contract.PriorityMedium,
		"",
		time.Now().UTC().Add(20*time.Minute),
		time.Now().UTC(),
		1,
	)
	suite.Require().NoError(err)

	kitchenItem, err := kitchenorder.NewItem(
		kernel.NewDeterministicUUID("uow/kitchen-item/"+key),
		contractItem.ID(),
		recipeID,
		1,
		productID,
		1,
		nil,
		nil,
		station.TypeGrill,
		nil,
		nil,
		10,
	)
	suite.Require().NoError(err)

	ko, err := kitchenorder.NewKitchenOrder(
		kernel.NewDeterministicUUID("uow/kitchen-order/"+key),
		c,
		[]*kitchenorder.Item{kitchenItem},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	return c, ko
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
