package cmd

import (
	"kitchen/internal/adapters/out/postgres"
	"kitchen/internal/adapters/out/postgres/refdatarepo"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	refData    *refdatarepo.GormReferenceData
	publisher  ports.EventPublisher
	locks      *commands.OrderLocks
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		refData:    refdatarepo.NewGormReferenceData(gormDB),
		publisher:  publisher,
		locks:      commands.NewOrderLocks(),
	}
}

func (c *CompositionRoot) CreateCreateKitchenOrderCommandHandler() commands.CreateKitchenOrderCommandHandler {
	var f commands.CreationUoWFactory = FuncCreationUoWFactory(func() commands.CreationUoW {
		return c.uowFactory.Create()
	})
	generator := services.NewContractGenerator(c.refData, services.DefaultGeneratorConfig())
	return commands.NewCreateKitchenOrderCommandHandler(f, generator, c.publisher)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptAssignmentCommandHandler(f, c.refData, c.refData, c.refData, c.publisher, c.locks)
}

func (c *CompositionRoot) CreateChangeKitchenStatusCommandHandler() commands.ChangeKitchenStatusCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeKitchenStatusCommandHandler(f, c.refData, c.publisher, c.locks)
}

func (c *CompositionRoot) CreateChangeItemStatusCommandHandler() commands.ChangeItemStatusCommandHandler {
	var f commands.KitchenOrderUoWFactory = FuncKitchenOrderUoWFactory(func() commands.KitchenOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeItemStatusCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateReportQualityIssueCommandHandler() commands.ReportQualityIssueCommandHandler {
	var f commands.KitchenOrderUoWFactory = FuncKitchenOrderUoWFactory(func() commands.KitchenOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportQualityIssueCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetActiveKitchenOrdersQueryHandler() queries.GetActiveKitchenOrdersQueryHandler {
	return queries.NewGetActiveKitchenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStationWorkloadsQueryHandler() queries.GetStationWorkloadsQueryHandler {
	return queries.NewGetStationWorkloadsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveTenantsQueryHandler() queries.GetActiveTenantsQueryHandler {
	return queries.NewGetActiveTenantsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentProposalsQueryHandler() queries.GetAssignmentProposalsQueryHandler {
	uow := c.uowFactory.Create()
	assigner := services.NewStationAssigner(
		services.NewWeightedScoring(services.DefaultScoringWeights()),
		services.DefaultOverloadThresholds(),
	)
	return queries.NewGetAssignmentProposalsQueryHandler(
		uow.KitchenOrderRepository(),
		uow.StationRepository(),
		assigner,
	)
}

func (c *CompositionRoot) CreateGetAuditReportQueryHandler() queries.GetAuditReportQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetAuditReportQueryHandler(
		uow.KitchenOrderRepository(),
		uow.ContractRepository(),
		uow.StationRepository(),
		c.refData,
		c.refData,
		c.refData,
	)
}

type FuncCreationUoWFactory func() commands.CreationUoW

func (f FuncCreationUoWFactory) Create() commands.CreationUoW {
	return f()
}

type FuncKitchenOrderUoWFactory func() commands.KitchenOrderUoW

func (f FuncKitchenOrderUoWFactory) Create() commands.KitchenOrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
