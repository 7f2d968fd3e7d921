package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rafaelleal24/inventory/docs"
	"github.com/rafaelleal24/inventory/internal/adapters/config"
	"github.com/rafaelleal24/inventory/internal/adapters/http"
	"github.com/rafaelleal24/inventory/internal/adapters/http/controllers"
	"github.com/rafaelleal24/inventory/internal/adapters/mongo"
	"github.com/rafaelleal24/inventory/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/inventory/internal/adapters/outbox"
	"github.com/rafaelleal24/inventory/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/inventory/internal/adapters/redis"
	"github.com/rafaelleal24/inventory/internal/adapters/security"
	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/logger"
	"github.com/rafaelleal24/inventory/internal/core/service"
)

// @title       Inventory API
// @version     1.0
// @description Inventory ledger: catalog, stock movements and CSV transfer

// @host     localhost:8000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		Environment:       cfg.Logger.Environment,
		Level:             logger.ParseLevel(cfg.Logger.Level),
		IsProduction:      cfg.Logger.IsProduction,
	})
	if err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database connection
	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer publisher.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// initialize database and repos
	database := mongoClient.Database(cfg.Mongo.Database)
	productRepository := repository.NewProductRepository(database)
	userRepository := repository.NewUserRepository(database)
	outboxRepository := repository.NewOutboxRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)
	if err := userRepository.EnsureIndexes(ctx); err != nil {
		logger.Fatal(ctx, "Failed to create user indexes", err, nil)
	}

	// caches and rate limiter
	productCache := redis.NewVersionedCache[domain.Product](redisClient, "product-cache")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Product]](redisClient, "idempotency-cache")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// events are recorded with the mutation and relayed to the broker
	events := outbox.NewRecorder(outboxRepository)
	relay := outbox.NewRelay(outboxRepository, publisher, cfg.Outbox)
	go relay.Start(ctx)
	logger.Info(ctx, "Outbox relay started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	idempotencyService := service.NewIdempotencyService(idempotencyCache, cfg.Idempotency.TTL, cfg.Idempotency.PollInterval, cfg.Idempotency.PollTimeout)
	catalogService := service.NewCatalogService(productRepository, events, txManager, productCache)
	ledgerService := service.NewLedgerService(productRepository, events, txManager, productCache, idempotencyService)
	transferService := service.NewTransferService(catalogService)
	authService := service.NewAuthService(
		userRepository,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	)
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal(ctx, "Failed to seed admin user", err, nil)
	}

	// controllers
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return publisher.HealthCheck() }},
	})

	// router
	router := http.NewRouter(
		http.Controllers{
			Health:   healthController,
			Auth:     controllers.NewAuthController(authService),
			Product:  controllers.NewProductController(catalogService),
			Stock:    controllers.NewStockController(ledgerService),
			Transfer: controllers.NewTransferController(transferService, cfg.Import.MaxUploadBytes),
		},
		authService,
		rateLimiter,
		cfg.RateLimit,
	)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
