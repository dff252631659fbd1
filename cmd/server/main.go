package main

import (
	"context"
	"log"
	"time"

	"github.com/godilite/valuation-server/internal/app"
	"github.com/godilite/valuation-server/internal/config"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const startupTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.LoadFromEnv()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("valuation server configured",
		zap.String("env", cfg.AppEnv),
		zap.String("db_driver", cfg.DBDriver),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Duration("calculation_timeout", cfg.CalculationTimeout),
		zap.Duration("status_display_delay", cfg.StatusDisplayDelay),
	)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	application, err := app.NewApp(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	if err := application.Run(); err != nil {
		logger.Fatal("Application exited with error", zap.Error(err))
	}
}
