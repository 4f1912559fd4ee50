package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"sportsbook/cache"
	"sportsbook/config"
	"sportsbook/database"
	"sportsbook/domain/interfaces"
	"sportsbook/domain/services"
	"sportsbook/httpapi"
	"sportsbook/infrastructure"
	"sportsbook/metrics"
	"sportsbook/repository"
	"sportsbook/sportsdata"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting sportsbook backend...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Initialize event publishing
	publisher := infrastructure.NewNoopPublisher()
	if cfg.KafkaBrokers != "" {
		log.Printf("Connecting to Kafka at %s...", cfg.KafkaBrokers)
		writer := infrastructure.NewKafkaWriter(cfg.KafkaBrokers, cfg.WagerEventTopic)
		kafkaPublisher := infrastructure.NewKafkaEventPublisher(writer)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Initialize balance cache
	var balanceCache interfaces.BalanceCache
	if cfg.RedisAddr != "" {
		log.Printf("Connecting to Redis at %s...", cfg.RedisAddr)
		rdb, err := cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		balanceCache = cache.NewBalanceCache(rdb)
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(publisher)
	})

	// Initialize the sports-data collaborator
	provider := sportsdata.New(cfg.SportsDataURL)

	// Initialize services
	wagerRepo := repository.NewWagerRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	lifecycle := services.NewLifecycleService(uowFactory)
	settlement := services.NewSettlementService(wagerRepo, provider, lifecycle)
	wagerService := services.NewWagerService(uowFactory, lifecycle, settlement, wagerRepo, ledgerRepo, provider, provider, balanceCache)

	// Start the metrics server on its own port
	metricsSrv := metrics.StartServer(cfg.MetricsPort, func(ctx context.Context) error {
		return db.Ping(ctx)
	})
	defer metricsSrv.Close()

	// Start the API server
	api := httpapi.NewServer(wagerService, httpapi.NewStaticAuthorizer(cfg.APIToken))
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("API listening on :%s in %s mode...", cfg.HTTPPort, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("API server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down API server: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}
