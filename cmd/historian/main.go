// cmd/historian is an asynchronous archive service that pops match events from the Redis list
// the server publishes to and persists them to PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/pairup/internal/config"
	"github.com/jason-s-yu/pairup/internal/database"
	"github.com/jason-s-yu/pairup/internal/events"
	"github.com/jason-s-yu/pairup/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.ConnectDB(ctx, cfg.PostgresURL())
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalf("schema: %v", err)
	}

	rdb, err := events.ConnectRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	svc := historian.NewService(
		historian.RedisSource{Client: rdb, Queue: cfg.MatchEventQueue},
		historian.PostgresSink{Pool: pool},
		cfg.HistorianBatchSize,
		cfg.HistorianFlush,
		logger.WithField("component", "historian"),
	)
	if err := svc.Run(ctx); err != nil {
		logger.Errorf("historian exited: %v", err)
	}
	logger.Info("Historian shutdown complete.")
}
