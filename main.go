package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lapak/internal/config"
	"lapak/internal/database"
	"lapak/internal/logger"
	"lapak/internal/metrics"
	"lapak/internal/repositories"
	"lapak/internal/server"
	"lapak/internal/services"
	"lapak/pkg/imageopt"
	"lapak/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Server.Env, cfg.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	// --- Database ---
	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	store := repositories.NewGORMStore(db)
	if cfg.DB.SeedReference {
		if err := database.SeedReferenceData(context.Background(), store); err != nil {
			return err
		}
	}

	m := metrics.New(cfg.Metrics.Prefix)

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue}, zlog)
		if err != nil {
			zlog.Warn("RabbitMQ unavailable, product events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			publisher = mqClient
			consumeEvents(mqClient, zlog)
		}
	}

	// --- Services ---
	notifications := services.NewNotificationService(store.Notifications(), publisher, m, zlog)
	app := server.New(server.Deps{
		Config:        cfg,
		Log:           zlog,
		Metrics:       m,
		Products:      services.NewProductService(store, notifications, m, zlog),
		Catalog:       services.NewCatalogService(store.Catalog()),
		Notifications: notifications,
		Uploads:       services.NewUploadService(cfg.Upload.Dir, imageopt.Resizer{}, zlog),
	})

	// --- Start HTTP Server ---
	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Server.Port))
		serverErr <- app.Listen(cfg.Server.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		zlog.Info("shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.Shutdown(); err != nil {
		zlog.Error("error during Fiber shutdown", zap.Error(err))
	}
	zlog.Info("server gracefully stopped")
	return nil
}

// consumeEvents logs every product event that reaches the queue.
func consumeEvents(client *rabbitmq.Client, zlog *zap.Logger) {
	handler := func(msg amqp.Delivery) error {
		zlog.Info("product event received",
			zap.String("type", msg.Type),
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.ByteString("body", msg.Body))
		return nil
	}
	if err := client.Consume(handler); err != nil {
		zlog.Warn("failed to start RabbitMQ consumer", zap.Error(err))
	}
}
