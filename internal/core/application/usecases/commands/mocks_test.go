package commands_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

type MockContractRepository struct{ mock.Mock }

func (m *MockContractRepository) Add(ctx context.Context, c *contract.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContractRepository) Get(ctx context.Context, id kernel.UUID) (*contract.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

func (m *MockContractRepository) GetByOrderAndVersion(ctx context.Context, orderID kernel.UUID, version int) (*contract.Contract, error) {
	args := m.Called(ctx, orderID, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Contract), args.Error(1)
}

type MockKitchenOrderRepository struct{ mock.Mock }

func (m *MockKitchenOrderRepository) Add(ctx context.Context, o *kitchenorder.KitchenOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockKitchenOrderRepository) Update(ctx context.Context, o *kitchenorder.KitchenOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockKitchenOrderRepository) Get(ctx context.Context, id kernel.UUID) (*kitchenorder.KitchenOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchenorder.KitchenOrder), args.Error(1)
}

func (m *MockKitchenOrderRepository) GetByContract(ctx context.Context, contractID kernel.UUID) (*kitchenorder.KitchenOrder, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchenorder.KitchenOrder), args.Error(1)
}

func (m *MockKitchenOrderRepository) GetAllActive(ctx context.Context, tenantID kernel.UUID) ([]*kitchenorder.KitchenOrder, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchenorder.KitchenOrder), args.Error(1)
}

type MockStationRepository struct{ mock.Mock }

func (m *MockStationRepository) Add(ctx context.Context, s *station.Station) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStationRepository) Update(ctx context.Context, s *station.Station) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStationRepository) Get(ctx context.Context, id kernel.UUID) (*station.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*station.Station), args.Error(1)
}

func (m *MockStationRepository) GetAllByTenant(ctx context.Context, tenantID kernel.UUID) ([]*station.Station, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*station.Station), args.Error(1)
}

type MockCreationUoW struct{ mock.Mock }

func (m *MockCreationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreationUoW) ContractRepository() ports.ContractRepository {
	args := m.Called()
	return args.Get(0).(ports.ContractRepository)
}

func (m *MockCreationUoW) KitchenOrderRepository() ports.KitchenOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.KitchenOrderRepository)
}

type MockCreationUoWFactory struct{ mock.Mock }

func (m *MockCreationUoWFactory) Create() commands.CreationUoW {
	args := m.Called()
	return args.Get(0).(commands.CreationUoW)
}

type MockAssignmentUoW struct{ mock.Mock }

func (m *MockAssignmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignmentUoW) KitchenOrderRepository() ports.KitchenOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.KitchenOrderRepository)
}

func (m *MockAssignmentUoW) StationRepository() ports.StationRepository {
	args := m.Called()
	return args.Get(0).(ports.StationRepository)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockKitchenOrderUoW struct{ mock.Mock }

func (m *MockKitchenOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockKitchenOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockKitchenOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockKitchenOrderUoW) KitchenOrderRepository() ports.KitchenOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.KitchenOrderRepository)
}

type MockKitchenOrderUoWFactory struct{ mock.Mock }

func (m *MockKitchenOrderUoWFactory) Create() commands.KitchenOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.KitchenOrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, payload any) error {
	args := m.Called(ctx, subject, payload)
	return args.Error(0)
}

// stubRecipes resolves recipes from a fixed map, mimicking the Recipe
// collaborator.
type stubRecipes struct {
	byRef map[string]recipe.Recipe
}

func (s *stubRecipes) ResolveRecipe(_ context.Context, recipeID kernel.UUID, version int) (recipe.Recipe, error) {
	rec, ok := s.byRef[fmt.Sprintf("%s/%d", recipeID, version)]
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("recipe %s v%d not found", recipeID, version)
	}
	return rec, nil
}

type stubInventory struct {
	stock []recipe.StockLevel
}

func (s *stubInventory) StockLevels(context.Context, kernel.UUID, []kernel.UUID) ([]recipe.StockLevel, error) {
	return s.stock, nil
}

type stubSources struct {
	source *services.SourceOrder
}

func (s *stubSources) SourceOrder(context.Context, kernel.UUID) (*services.SourceOrder, error) {
	return s.source, nil
}

// orderFixture builds a single-item kitchen order with its recipe registered
// in the returned resolver.
type orderFixture struct {
	recipes  *stubRecipes
	recipe   recipe.Recipe
	contract *contract.Contract
	order    *kitchenorder.KitchenOrder
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	now := time.Now().UTC()

	rec := recipe.Recipe{
		ID:          kernel.NewUUID(),
		Version:     1,
		ProductID:   kernel.NewUUID(),
		Name:        "Fries",
		PrepMinutes: 2,
		CookMinutes: 6,
		StationType: station.TypeFry,
		Ingredients: []recipe.Ingredient{
			{ID: kernel.NewUUID(), Name: "potatoes", QuantityPer: 0.3, Unit: "kg"},
		},
	}

	contractItem, err := contract.NewItem(kernel.NewUUID(), rec.ID, rec.Version, rec.ProductID, 1, nil, nil, nil)
	require.NoError(t, err)

	c, err := contract.NewContract(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]contract.Item{contractItem}, contract.PriorityMedium, "",
		now.Add(20*time.Minute), now, 1,
	)
	require.NoError(t, err)

	item, err := kitchenorder.NewItem(
		kernel.NewUUID(), contractItem.ID(), rec.ID, rec.Version, rec.ProductID,
		1, nil, nil, station.TypeFry, nil, nil, 8,
	)
	require.NoError(t, err)

	order, err := kitchenorder.NewKitchenOrder(kernel.NewUUID(), c, []*kitchenorder.Item{item}, now)
	require.NoError(t, err)

	return &orderFixture{
		recipes: &stubRecipes{byRef: map[string]recipe.Recipe{
			fmt.Sprintf("%s/%d", rec.ID, rec.Version): rec,
		}},
		recipe:   rec,
		contract: c,
		order:    order,
	}
}
