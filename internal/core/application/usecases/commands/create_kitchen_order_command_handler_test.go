package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/errs"
)

func confirmedFact(f *orderFixture) events.OrderConfirmed {
	return events.OrderConfirmed{
		OrderID:  f.contract.OrderID().String(),
		TenantID: f.contract.TenantID().String(),
		Version:  1,
		Priority: "medium",
		Lines: []events.OrderLine{
			{
				ProductID:     f.recipe.ProductID.String(),
				RecipeID:      f.recipe.ID.String(),
				RecipeVersion: f.recipe.Version,
				Quantity:      1,
			},
		},
		OccurredAt: time.Now().UTC(),
	}
}

func TestCreateKitchenOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture(t)
	cmd, err := commands.NewCreateKitchenOrderCommand(confirmedFact(f))
	require.NoError(t, err)

	contractRepo := new(MockContractRepository)
	orderRepo := new(MockKitchenOrderRepository)
	uow := new(MockCreationUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ContractRepository").Return(contractRepo).Once(),
		contractRepo.On("GetByOrderAndVersion", ctx, f.contract.OrderID(), 1).
			Return(nil, errs.ErrObjectNotFound).Once(),
		contractRepo.On("Add", ctx, mock.AnythingOfType("*contract.Contract")).Return(nil).Once(),
		uow.On("KitchenOrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*kitchenorder.KitchenOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("Publish", ctx, events.SubjectContractCreated, mock.AnythingOfType("events.ProductionContractCreated")).Return(nil).Once()
	publisher.On("Publish", ctx, events.SubjectKitchenOrderCreated, mock.AnythingOfType("events.KitchenOrderCreated")).Return(nil).Once()

	factory := new(MockCreationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateKitchenOrderCommandHandler(
		factory,
		services.NewContractGenerator(f.recipes, services.DefaultGeneratorConfig()),
		publisher,
	)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	contractRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateKitchenOrderCommandHandler_Handle_IdempotentOnRedelivery(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture(t)
	cmd, err := commands.NewCreateKitchenOrderCommand(confirmedFact(f))
	require.NoError(t, err)

	contractRepo := new(MockContractRepository)
	uow := new(MockCreationUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ContractRepository").Return(contractRepo).Once(),
		contractRepo.On("GetByOrderAndVersion", ctx, f.contract.OrderID(), 1).
			Return(f.contract, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateKitchenOrderCommandHandler(
		factory,
		services.NewContractGenerator(f.recipes, services.DefaultGeneratorConfig()),
		publisher,
	)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	contractRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateKitchenOrderCommandHandler_Handle_UnresolvedRecipeFailsAtomically(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture(t)
	fact := confirmedFact(f)
	fact.Lines[0].RecipeVersion = 99
	cmd, err := commands.NewCreateKitchenOrderCommand(fact)
	require.NoError(t, err)

	contractRepo := new(MockContractRepository)
	uow := new(MockCreationUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ContractRepository").Return(contractRepo).Once(),
		contractRepo.On("GetByOrderAndVersion", ctx, f.contract.OrderID(), 1).
			Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateKitchenOrderCommandHandler(
		factory,
		services.NewContractGenerator(f.recipes, services.DefaultGeneratorConfig()),
		publisher,
	)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrRecipeNotResolved)
	contractRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateKitchenOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewCreateKitchenOrderCommand(events.OrderConfirmed{})
	require.ErrorIs(t, err, commands.ErrOrderIDIsRequired)
	require.ErrorIs(t, err, commands.ErrTenantIDIsRequired)
	require.ErrorIs(t, err, commands.ErrOrderVersionIsInvalid)
	require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)

	var notConstructed commands.CreateKitchenOrderCommand
	require.ErrorIs(t, notConstructed.Validate(), commands.ErrCreateKitchenOrderCommandIsNotConstructed)
}
