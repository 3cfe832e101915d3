package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/logger"
	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// --- Repositories ---
	var (
		productRepo repositories.ProductRepository
		userRepo    repositories.UserRepository
	)
	if cfg.DBDriver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Open(database.Config{
			Driver:          cfg.DBDriver,
			DSN:             cfg.DatabaseDSN,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			zlog.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
		}
		defer func() {
			if err := database.Close(db); err != nil {
				zlog.Warn("failed to close database", zap.Error(err))
			}
		}()
		productRepo = repositories.NewGORMProductRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// --- Services ---
	opts := []services.ProductServiceOption{
		services.WithLogger(zlog.Named("products")),
		services.WithMetrics(metrics.New(registry)),
	}

	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, zlog)
		if err != nil {
			zlog.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				zlog.Warn("failed to close RabbitMQ client", zap.Error(err))
			}
		}()
		opts = append(opts, services.WithEventPublisher(mqClient))

		audit := zlog.Named("audit")
		if err := mqClient.ConsumeProductEvents(func(event models.ProductEvent) error {
			audit.Info("product event",
				zap.String("event_id", event.ID),
				zap.String("type", event.Type),
				zap.Uint("product_id", event.ProductID),
				zap.Time("occurred_at", event.OccurredAt),
			)
			return nil
		}); err != nil {
			zlog.Error("failed to start product event consumer", zap.Error(err))
		}
	}

	productService := services.NewProductService(productRepo, opts...)

	var authService *services.AuthService
	if cfg.AuthEnabled {
		authService = services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	}

	if cfg.SeedProducts {
		seedProducts(context.Background(), productService, zlog)
	}

	app := newApp(appDeps{
		logger:         zlog,
		productService: productService,
		authService:    authService,
		gatherer:       registry,
		eventsEnabled:  cfg.EventsEnabled(),
		accessLog:      true,
	})

	// --- Start HTTP Server ---
	zlog.Info("starting server",
		zap.String("addr", cfg.AppPort),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("auth", cfg.AuthEnabled),
		zap.Bool("events", cfg.EventsEnabled()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("error during fiber shutdown", zap.Error(err))
	}
	zlog.Info("server gracefully stopped")
}

// seedProducts populates the catalog with demo data through the service.
func seedProducts(ctx context.Context, service *services.ProductService, zlog *zap.Logger) {
	inputs := []struct {
		name, description, price, category string
		stock                               int
	}{
		{"Laptop", "High performance laptop", "1200.00", "Electronics", 10},
		{"Keyboard", "Mechanical keyboard", "75.00", "Accessories", 25},
		{"Mouse", "Ergonomic wireless mouse", "25.00", "Accessories", 50},
	}

	for _, in := range inputs {
		price := decimal.RequireFromString(in.price)
		product, err := service.CreateProduct(ctx, models.ProductInput{
			Name:          &in.name,
			Description:   &in.description,
			Price:         &price,
			StockQuantity: &in.stock,
			Category:      &in.category,
		})
		if err != nil {
			zlog.Warn("failed to seed product", zap.String("name", in.name), zap.Error(err))
			continue
		}
		zlog.Info("seeded product", zap.String("name", product.Name), zap.Uint("id", product.ID))
	}
}
