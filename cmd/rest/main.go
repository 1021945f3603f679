package main

import (
	"context"
	"log"

	"loremaker-codex-be/internal/bootstrap"
	"loremaker-codex-be/internal/config"
	"loremaker-codex-be/internal/server"
	"loremaker-codex-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Warm the roster so the first request is served from cache
	go func() {
		if _, err := container.LibraryService.Load(context.Background(), false); err != nil {
			log.Printf("Background: Initial roster load failed: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
