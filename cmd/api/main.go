package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avadra/storefront-service/config"
	"github.com/avadra/storefront-service/internal/order"
	"github.com/avadra/storefront-service/internal/order/events"
	"github.com/avadra/storefront-service/internal/server"
	"github.com/avadra/storefront-service/pkg/broker"
	"github.com/avadra/storefront-service/pkg/cache"
	"github.com/avadra/storefront-service/pkg/database"
	"github.com/avadra/storefront-service/pkg/logger"
	"github.com/avadra/storefront-service/pkg/search"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv != "production",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("schema migration failed", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()
	var publisher order.EventPublisher = events.NewKafkaPublisher(producer, appLogger)

	// Search is an enhancement. When the cluster is unreachable the product
	// listing falls back to SQL.
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("elasticsearch unavailable, search falls back to postgres", zap.Error(err))
		esClient = nil
	}

	srv := server.New(cfg, appLogger, db, redisClient, esClient, publisher)

	go func() {
		appLogger.Info("http server starting", zap.String("addr", cfg.Server.HTTPPort))
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		appLogger.Error("shutdown failed", zap.Error(err))
	}
}
