package queries_test

import (
	"context"
	"time"

	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
)

// The tenant listing reads the same kitchen_orders projection, so its tests
// run inside the active orders suite.

func (suite *GetActiveKitchenOrdersQueryHandlerTestSuite) TestActiveTenants_ListsOnlyTenantsWithWorkInFlight() {
	activeTenant := kernel.NewDeterministicUUID("q/tenant/active")
	doneTenant := kernel.NewDeterministicUUID("q/tenant/done")

	suite.seedOrder("tenants-active", activeTenant, 30*time.Minute)

	cancelled := suite.seedOrder("tenants-done", doneTenant, 30*time.Minute)
	suite.Require().NoError(cancelled.TransitionTo(kitchenorder.StatusCancelled, "manager:lee", nil, time.Now().UTC()))
	suite.Require().NoError(suite.repo.Update(context.Background(), cancelled))

	handler := queries.NewGetActiveTenantsQueryHandler(suite.db)
	tenants, err := handler.Handle(context.Background(), queries.NewGetActiveTenantsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(tenants, 1)
	suite.Assert().True(tenants[0].IsEqual(activeTenant))
}

func (suite *GetActiveKitchenOrdersQueryHandlerTestSuite) TestActiveTenants_DeduplicatesTenants() {
	tenantID := kernel.NewDeterministicUUID("q/tenant/busy")

	suite.seedOrder("tenants-first", tenantID, 15*time.Minute)
	suite.seedOrder("tenants-second", tenantID, 45*time.Minute)

	handler := queries.NewGetActiveTenantsQueryHandler(suite.db)
	tenants, err := handler.Handle(context.Background(), queries.NewGetActiveTenantsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(tenants, 1)
	suite.Assert().True(tenants[0].IsEqual(tenantID))
}

func (suite *GetActiveKitchenOrdersQueryHandlerTestSuite) TestActiveTenants_UnconstructedQuery_ReturnsError() {
	handler := queries.NewGetActiveTenantsQueryHandler(suite.db)

	_, err := handler.Handle(context.Background(), queries.GetActiveTenantsQuery{})

	suite.Assert().ErrorIs(err, queries.ErrGetActiveTenantsQueryIsNotConstructed)
}
