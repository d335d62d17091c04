package cmd

import (
	"log/slog"
	"os"

	adapterhttp "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/temporalrun"
	"orderflow/internal/core/application/orchestration"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/jobs"
	"orderflow/internal/workflows"

	temporalclient "go.temporal.io/sdk/client"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	workflow   *temporalrun.Client
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, temporalClient temporalclient.Client) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		workflow:   temporalrun.NewClient(temporalClient, config.TemporalNamespace),
		clock:      kernel.SystemClock{},
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateInitializeOrderCommandHandler() commands.InitializeOrderCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInitializeOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateMarkOrderPendingCommandHandler() commands.MarkOrderPendingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderPendingCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessPaymentCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderStockUoWFactory = FuncOrderStockUoWFactory(func() commands.OrderStockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateReserveStockCommandHandler() commands.ReserveStockCommandHandler {
	var f commands.OrderStockUoWFactory = FuncOrderStockUoWFactory(func() commands.OrderStockUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReserveStockCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateEarnLoyaltyCommandHandler() commands.EarnLoyaltyCommandHandler {
	var f commands.OrderLoyaltyUoWFactory = FuncOrderLoyaltyUoWFactory(func() commands.OrderLoyaltyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEarnLoyaltyCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateBurnLoyaltyCommandHandler() commands.BurnLoyaltyCommandHandler {
	var f commands.OrderLoyaltyUoWFactory = FuncOrderLoyaltyUoWFactory(func() commands.OrderLoyaltyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBurnLoyaltyCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrchestrator() *orchestration.Orchestrator {
	var f orchestration.OrderUoWFactory = FuncOrchestrationUoWFactory(func() orchestration.OrderUoW {
		return c.uowFactory.Create()
	})
	return orchestration.NewOrchestrator(c.workflow, f, c.clock, c.logger)
}

func (c *CompositionRoot) CreateActivities() *workflows.Activities {
	return workflows.NewActivities(
		c.CreateMarkOrderPendingCommandHandler(),
		c.CreateProcessPaymentCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
	)
}

func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateInitializeOrderCommandHandler(),
		c.CreateReserveStockCommandHandler(),
		c.CreateEarnLoyaltyCommandHandler(),
		c.CreateBurnLoyaltyCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateOrchestrator(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateOrchestrator(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncOrderLoyaltyUoWFactory func() commands.OrderLoyaltyUoW

func (f FuncOrderLoyaltyUoWFactory) Create() commands.OrderLoyaltyUoW {
	return f()
}

type FuncOrderStockUoWFactory func() commands.OrderStockUoW

func (f FuncOrderStockUoWFactory) Create() commands.OrderStockUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncOrchestrationUoWFactory func() orchestration.OrderUoW

func (f FuncOrchestrationUoWFactory) Create() orchestration.OrderUoW {
	return f()
}
