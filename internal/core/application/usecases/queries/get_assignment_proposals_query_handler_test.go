package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/domain/services"
)

func newProposalsHandler(orders *MockKitchenOrderRepository, stations *MockStationRepository) queries.GetAssignmentProposalsQueryHandler {
	assigner := services.NewStationAssigner(
		services.NewWeightedScoring(services.DefaultScoringWeights()),
		services.DefaultOverloadThresholds(),
	)
	return queries.NewGetAssignmentProposalsQueryHandler(orders, stations, assigner)
}

func saladStation(t *testing.T, tenantID kernel.UUID) *station.Station {
	t.Helper()
	s, err := station.NewStation(
		kernel.NewUUID(), tenantID, "Salad 1", station.TypeSalad,
		2, []string{"salad"}, nil, []string{"Noor"}, 6,
	)
	require.NoError(t, err)
	return s
}

func TestGetAssignmentProposalsQueryHandler_SuggestsStationsForPendingItems(t *testing.T) {
	f := newAuditFixture(t)
	tenantID := f.order.TenantID()

	orders := new(MockKitchenOrderRepository)
	stations := new(MockStationRepository)
	target := saladStation(t, tenantID)

	orders.On("GetAllActive", t.Context(), tenantID).
		Return([]*kitchenorder.KitchenOrder{f.order}, nil).Once()
	stations.On("GetAllByTenant", t.Context(), tenantID).
		Return([]*station.Station{target}, nil).Once()

	query, err := queries.NewGetAssignmentProposalsQuery(tenantID)
	require.NoError(t, err)

	resp, err := newProposalsHandler(orders, stations).Handle(t.Context(), query)
	require.NoError(t, err)

	require.Len(t, resp.Result.Suggestions, 1)
	suggestion := resp.Result.Suggestions[0]
	assert.Equal(t, f.order.Items()[0].ID(), suggestion.ItemID)
	assert.Equal(t, target.ID(), suggestion.StationID)
	assert.Empty(t, resp.Result.ManualItems)

	// The proposal must route back to its kitchen order.
	assert.Equal(t, f.order.ID(), resp.ItemOrders[suggestion.ItemID.String()])

	// Advisory pass: the station's real workload is untouched.
	assert.Equal(t, 0, target.Workload())
	assert.False(t, resp.GeneratedAt.IsZero())

	orders.AssertExpectations(t)
	stations.AssertExpectations(t)
}

func TestGetAssignmentProposalsQueryHandler_NoPendingItems_ReturnsEmptyResult(t *testing.T) {
	tenantID := kernel.NewUUID()

	orders := new(MockKitchenOrderRepository)
	stations := new(MockStationRepository)

	orders.On("GetAllActive", t.Context(), tenantID).
		Return([]*kitchenorder.KitchenOrder{}, nil).Once()
	stations.On("GetAllByTenant", t.Context(), tenantID).
		Return([]*station.Station{saladStation(t, tenantID)}, nil).Once()

	query, err := queries.NewGetAssignmentProposalsQuery(tenantID)
	require.NoError(t, err)

	resp, err := newProposalsHandler(orders, stations).Handle(t.Context(), query)
	require.NoError(t, err)

	assert.Empty(t, resp.Result.Suggestions)
	assert.Empty(t, resp.Result.ManualItems)
	assert.Empty(t, resp.ItemOrders)
}

func TestGetAssignmentProposalsQueryHandler_UnconstructedQuery_Fails(t *testing.T) {
	handler := newProposalsHandler(new(MockKitchenOrderRepository), new(MockStationRepository))

	_, err := handler.Handle(t.Context(), queries.GetAssignmentProposalsQuery{})

	require.ErrorIs(t, err, queries.ErrGetAssignmentProposalsQueryIsNotConstructed)
}
