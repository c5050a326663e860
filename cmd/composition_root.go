package cmd

import (
	"log/slog"

	httpin "purchases/internal/adapters/in/http"
	"purchases/internal/adapters/out/catalog"
	"purchases/internal/adapters/out/directory"
	"purchases/internal/adapters/out/postgres"
	"purchases/internal/adapters/out/stock"
	"purchases/internal/core/application/usecases/commands"
	"purchases/internal/core/application/usecases/queries"
	"purchases/internal/core/domain/services"
	"purchases/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the application's infrastructure into the command
// and query handlers. Handlers are created per call; the wired adapters are
// shared.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  *directory.Client
	catalog    *catalog.Client
	reservator *stock.ReservationCoordinator
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	catalogClient := catalog.NewClient(config.ProductCatalogURL)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:  directory.NewClient(config.CustomerDirectoryURL),
		catalog:    catalogClient,
		reservator: stock.NewReservationCoordinator(catalogClient, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreatePurchaseCommandHandler() commands.CreatePurchaseCommandHandler {
	return commands.NewCreatePurchaseCommandHandler(
		c.createUoWFactory(), c.directory, c.catalog, c.reservator, c.logger)
}

func (c *CompositionRoot) CreatePayPurchaseCommandHandler() commands.PayPurchaseCommandHandler {
	return commands.NewPayPurchaseCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCancelPurchaseCommandHandler() commands.CancelPurchaseCommandHandler {
	return commands.NewCancelPurchaseCommandHandler(c.createUoWFactory(), c.reservator, c.logger)
}

func (c *CompositionRoot) CreateDispatchPurchasesCommandHandler() commands.DispatchPurchasesCommandHandler {
	grouper := services.NewDeliveryGrouper(services.NewGroupIDGenerator())
	return commands.NewDispatchPurchasesCommandHandler(c.createUoWFactory(), grouper)
}

func (c *CompositionRoot) CreateDeliverPurchaseCommandHandler() commands.DeliverPurchaseCommandHandler {
	return commands.NewDeliverPurchaseCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetPurchaseByIDQueryHandler() queries.GetPurchaseByIDQueryHandler {
	return queries.NewGetPurchaseByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPurchasesByStatusQueryHandler() queries.GetPurchasesByStatusQueryHandler {
	return queries.NewGetPurchasesByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPurchaseHistoryQueryHandler() queries.GetPurchaseHistoryQueryHandler {
	return queries.NewGetPurchaseHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreatePurchaseCommandHandler(),
		c.CreatePayPurchaseCommandHandler(),
		c.CreateCancelPurchaseCommandHandler(),
		c.CreateDispatchPurchasesCommandHandler(),
		c.CreateDeliverPurchaseCommandHandler(),
		c.CreateGetPurchaseByIDQueryHandler(),
		c.CreateGetPurchasesByStatusQueryHandler(),
		c.CreateGetPurchaseHistoryQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.catalog, c.config.PriceFilePath, c.config.PriceCronSpec, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
