package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"pizzeria/api"
	httpin "pizzeria/internal/adapters/in/http"
	"pizzeria/internal/adapters/out/masking"
	"pizzeria/internal/adapters/out/memory"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/core/application/usecases"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived objects of the process: repositories, services and
// the metrics registry. Build it once in main.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  kernel.Clock
	ids    kernel.IDGenerator
	gormDB *gorm.DB

	pizzaRepo    ports.PizzaRepository
	toppingRepo  ports.ToppingRepository
	customerRepo ports.CustomerRepository
	orderRepo    ports.OrderRepository

	pizzas    *usecases.PizzaService
	customers *usecases.CustomerService
	orders    *usecases.OrderService

	registry *prometheus.Registry
}

// NewCompositionRoot opens the configured storage, migrates it when it is PostgreSQL and
// seeds the sample catalog when enabled.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		clock:    kernel.NewSystemClock(),
		ids:      kernel.NewRandomIDGenerator(),
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	masker := masking.NewMarkerMasker()
	switch cfg.StorageDriver {
	case StoragePostgres:
		db, err := postgres.Open(cfg.Postgres())
		if err != nil {
			return nil, err
		}
		if err = postgres.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		repos := postgres.NewRepositories(db, masker)
		c.gormDB = db
		c.pizzaRepo = repos.Pizzas
		c.toppingRepo = repos.Toppings
		c.customerRepo = repos.Customers
		c.orderRepo = repos.Orders
	default:
		c.pizzaRepo = memory.NewPizzaRepository()
		c.toppingRepo = memory.NewToppingRepository()
		c.customerRepo = memory.NewCustomerRepository(masker)
		c.orderRepo = memory.NewOrderRepository()
	}
	logger.InfoContext(ctx, "storage ready", "driver", cfg.StorageDriver)

	c.pizzas = usecases.NewPizzaService(c.pizzaRepo, c.toppingRepo, c.ids, c.clock, logger)
	c.customers = usecases.NewCustomerService(c.customerRepo, c.ids, c.clock, logger)
	c.orders = usecases.NewOrderService(c.orderRepo, c.pizzaRepo, c.customerRepo, c.ids, c.clock, logger)

	if cfg.SeedCatalog {
		err := usecases.SeedCatalog(ctx, c.pizzaRepo, c.toppingRepo, c.ids, c.clock, logger.With("component", "seed"))
		if err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	return c, nil
}

func (c *CompositionRoot) PizzaService() *usecases.PizzaService       { return c.pizzas }
func (c *CompositionRoot) CustomerService() *usecases.CustomerService { return c.customers }
func (c *CompositionRoot) OrderService() *usecases.OrderService       { return c.orders }

// CreateRouter builds the HTTP router over the services.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	cfg := httpin.RouterConfig{
		Logger:   c.logger.With("component", "http"),
		Gatherer: c.registry,
	}
	if c.cfg.OpenAPIValidation {
		doc, err := api.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load openapi document: %w", err)
		}
		cfg.Doc = doc
	}

	server := httpin.NewServer(c.pizzas, c.orders, c.customers, httpin.NewMetrics(c.registry), c.clock)
	return httpin.NewRouter(server, cfg)
}

// CreateJobManager registers the scheduled jobs that are configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	jm := jobs.NewJobManager(c.logger)
	if c.cfg.PriceRefreshSchedule != "" {
		jm.Register("price refresh", jobs.NewPriceRefreshJob(c.orders, c.cfg.PriceRefreshSchedule, c.logger))
	}
	return jm
}

// Close releases the database connection, if any.
func (c *CompositionRoot) Close() error {
	if c.gormDB == nil {
		return nil
	}
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
