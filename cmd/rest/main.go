package main

import (
	"context"
	"log"
	"time"

	"helpdesk-rag-be/internal/bootstrap"
	"helpdesk-rag-be/internal/config"
	"helpdesk-rag-be/internal/server"
	"helpdesk-rag-be/internal/tracer"
	"helpdesk-rag-be/pkg/database"
)

func main() {
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer()
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async QA indexing consumer
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start indexing consumer: %v", err)
	}

	// Hourly conversation-history sweep
	go container.HistorySweeper.Run(ctx)

	// Hourly request-stats flush
	go container.StatsRecorder.Run(ctx, time.Hour)

	srv := server.New(cfg, container)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
