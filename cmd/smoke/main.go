package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marketplace/internal/smoke"
	"marketplace/pkg/client"
	"marketplace/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.JSON,
		Service: "smoke",
	})

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting smoke run", "base_url", baseURL)
	if _, err := smoke.Run(ctx, client.NewClient(baseURL), smoke.Options{
		UserID: os.Getenv("SMOKE_USER_ID"),
	}, log); err != nil {
		log.Error("Smoke run failed", "error", err)
		os.Exit(1)
	}
}
