package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quantbase/equitypricing/internal/pricing/application"
	"github.com/quantbase/equitypricing/internal/pricing/domain"
	"github.com/quantbase/equitypricing/internal/pricing/infrastructure/messaging"
	"github.com/quantbase/equitypricing/internal/pricing/infrastructure/persistence/mysql"
	httphandler "github.com/quantbase/equitypricing/internal/pricing/interfaces/http"
	"github.com/quantbase/equitypricing/pkg/config"
	"github.com/quantbase/equitypricing/pkg/db"
	"github.com/quantbase/equitypricing/pkg/logger"
	"github.com/quantbase/equitypricing/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("load config failed: %v", err))
	}

	// 2. Logger
	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		panic(fmt.Sprintf("init logger failed: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Database
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "connect database failed", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(&domain.PricingResult{}, &messaging.OutboxMessage{}); err != nil {
		logger.Fatal(ctx, "migrate database failed", "error", err)
	}

	// 4. Infrastructure
	repo := mysql.NewPricingRepository(database.DB)
	publisher := messaging.NewOutboxPublisher(database.DB, cfg.Kafka.Topic)

	// Kafka 未配置时事件仅留在 Outbox 表中
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "create kafka producer failed", "error", err)
		}
		defer producer.Close()

		relay := messaging.NewOutboxRelay(
			database.DB,
			producer,
			time.Duration(cfg.Pricing.OutboxRelayInterval)*time.Second,
			cfg.Pricing.OutboxBatchSize,
		)
		go relay.Start(ctx)
	}

	// 5. Application
	svc := application.NewPricingService(repo, publisher, cfg.Pricing.DefaultLatticeSteps)

	// 6. Interfaces
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	handler := httphandler.NewPricingHandler(svc.PricingCommandService, svc.PricingQueryService)
	handler.RegisterRoutes(&engine.RouterGroup)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"version":   cfg.Version,
			"timestamp": time.Now().Unix(),
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	// 7. Start
	go func() {
		logger.Info(ctx, "starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "server shutdown failed", "error", err)
	}
	logger.Info(ctx, "server exiting")
}
