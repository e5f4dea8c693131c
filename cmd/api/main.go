package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/DeFadhiliEmpire/Backend-bootcamp/core"
)

func main() {
	cfg := core.Load()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := core.ApplyFile(&cfg, path); err != nil {
			log.Fatalf("failed to load config file %s: %v", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := core.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	// Redis-backed listing cache when configured, process-local otherwise.
	var cache core.ListCache
	if cfg.RedisURL != "" {
		redisClient, err := core.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer redisClient.Close()
		cache = core.NewRedisListCache(redisClient, cfg.CacheTTL)
	} else {
		cache = core.NewMemoryListCache(cfg.CacheTTL)
	}

	tokens, err := core.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("failed to build token service: %v", err)
	}

	userRepo := core.NewPgUserRepository(db)
	taskRepo := core.NewPgTaskRepository(db)
	authService := core.NewAuthService(userRepo)

	router := core.NewRouter(cfg, authService, tokens, taskRepo, cache)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
