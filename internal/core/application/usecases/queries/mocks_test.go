package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/recipe"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/domain/services"
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

// stubRecipes resolves recipes from a fixed map.
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

// auditFixture builds a single-item kitchen order together with its contract,
// recipe resolver, and matching source order snapshot.
type auditFixture struct {
	recipes  *stubRecipes
	recipe   recipe.Recipe
	contract *contract.Contract
	order    *kitchenorder.KitchenOrder
	source   *services.SourceOrder
}

func newAuditFixture(t *testing.T) *auditFixture {
	t.Helper()
	now := time.Now().UTC()

	rec := recipe.Recipe{
		ID:          kernel.NewUUID(),
		Version:     1,
		ProductID:   kernel.NewUUID(),
		Name:        "Caesar Salad",
		PrepMinutes: 4,
		CookMinutes: 3,
		StationType: station.TypeSalad,
		Ingredients: []recipe.Ingredient{
			{ID: kernel.NewUUID(), Name: "romaine", QuantityPer: 0.2, Unit: "kg"},
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
		1, nil, nil, station.TypeSalad, nil, nil, 7,
	)
	require.NoError(t, err)

	order, err := kitchenorder.NewKitchenOrder(kernel.NewUUID(), c, []*kitchenorder.Item{item}, now)
	require.NoError(t, err)

	return &auditFixture{
		recipes: &stubRecipes{byRef: map[string]recipe.Recipe{
			fmt.Sprintf("%s/%d", rec.ID, rec.Version): rec,
		}},
		recipe:   rec,
		contract: c,
		order:    order,
		source: &services.SourceOrder{
			ID:       c.OrderID(),
			TenantID: c.TenantID(),
			Status:   "confirmed",
			Lines: []services.SourceLine{
				{ProductID: rec.ProductID, Quantity: 1},
			},
		},
	}
}
