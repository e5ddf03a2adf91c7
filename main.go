package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"gudang/internal/config"
	"gudang/internal/handlers"
	"gudang/internal/logging"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/internal/storage"
	"gudang/pkg/rabbitmq"
)

// backend groups the repositories of one storage driver with its cleanup.
type backend struct {
	products repositories.ProductRepository
	sales    repositories.SaleRepository
	users    repositories.UserRepository
	reports  repositories.ReportRepository
	close    func() error
}

// openBackend opens the repositories selected by cfg.StorageDriver. Relational
// drivers have their schema created or verified before use.
func openBackend(cfg *config.Config, log logrus.FieldLogger) (*backend, error) {
	if cfg.StorageDriver == config.DriverMemory {
		store := repositories.NewMemoryStore()
		return &backend{
			products: store.Products(),
			sales:    store.Sales(),
			users:    store.Users(),
			reports:  store.Reports(),
			close:    func() error { return nil },
		}, nil
	}

	gw, err := storage.Open(storage.Config{
		Driver: cfg.StorageDriver,
		DSN:    cfg.DatabaseDSN,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}
	if err := gw.EnsureSchema(); err != nil {
		gw.Close()
		return nil, err
	}

	db := gw.DB()
	return &backend{
		products: repositories.NewGORMProductRepository(db),
		sales:    repositories.NewGORMSaleRepository(db),
		users:    repositories.NewGORMUserRepository(db),
		reports:  repositories.NewGORMReportRepository(db),
		close:    gw.Close,
	}, nil
}

// buildApp wires services and handlers on top of b. publisher may be nil.
func buildApp(cfg *config.Config, log *logrus.Logger, b *backend, publisher services.SaleEventPublisher) (*fiber.App, error) {
	authService := services.NewAuthService(b.users, cfg.JWTSecret, cfg.TokenTTL, log)
	if cfg.SeedAdminPassword != "" {
		if err := authService.EnsureUser(cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
			return nil, fmt.Errorf("failed to seed %s account: %w", cfg.SeedAdminUsername, err)
		}
	}

	return handlers.NewApp(handlers.Dependencies{
		Auth:          authService,
		Products:      services.NewProductService(b.products, log),
		Sales:         services.NewSaleService(b.sales, b.products, publisher, log),
		Reports:       services.NewReportService(b.reports),
		Log:           log,
		StorageDriver: cfg.StorageDriver,
		EventsEnabled: publisher != nil,
	}), nil
}

// startEvents connects the sale event publisher and the low-stock consumer
// when RABBITMQ_URL is set. The returned publisher is nil when events are
// disabled; closeFn is always safe to call.
func startEvents(cfg *config.Config, log logrus.FieldLogger) (publisher services.SaleEventPublisher, closeFn func() error, err error) {
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set, sale events disabled")
		return nil, func() error { return nil }, nil
	}

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:   cfg.RabbitMQURL,
		Queue: cfg.RabbitMQQueue,
		Log:   log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
	}

	monitor := services.NewLowStockMonitor(cfg.LowStockThreshold, log)
	err = mqClient.ConsumeSaleEvents(func(msg amqp.Delivery) error {
		return monitor.HandleSaleEvent(msg.Body)
	})
	if err != nil {
		mqClient.Close()
		return nil, nil, fmt.Errorf("failed to start RabbitMQ consumer: %w", err)
	}
	return mqClient, mqClient.Close, nil
}

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("gudang stopped")
	}
}

// run wires the application and serves until a signal arrives or the
// listener fails. Every resource it opens is closed before it returns.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	b, err := openBackend(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer b.close()

	publisher, closeEvents, err := startEvents(cfg, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	app, err := buildApp(cfg, log, b, publisher)
	if err != nil {
		return err
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.AppPort, "storage": cfg.StorageDriver}).Info("Starting server")
		serverErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
	return nil
}
