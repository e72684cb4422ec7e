package main

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/search"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// search-setup creates the product index with its mapping. Run it once
// against a fresh cluster before starting the API.
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	client, err := search.NewClient(cfg.Search.Addresses, cfg.Search.Index, log)
	if err != nil {
		log.Fatal("Failed to create search client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.EnsureIndex(ctx); err != nil {
		log.Fatal("Failed to create search index", zap.Error(err))
	}

	log.Info("Search index ready", zap.String("index", cfg.Search.Index))
}
