package main

import (
	"marketplace/internal/server"
	"marketplace/internal/store"
	"marketplace/pkg/config"
)

func main() {
	cfg := config.Load(server.ServiceName)
	cfg.Log.Info("Starting marketplace service")

	dataStore := store.New(store.Options{
		Latency:     cfg.SimulatedLatency,
		FailureRate: cfg.FailureRate,
		Log:         cfg.Log,
	})
	publisher, metrics := server.NewPublisher(cfg)

	server.New(cfg, dataStore, publisher, metrics).Run()
}
