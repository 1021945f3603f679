package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"loremaker-codex-be/internal/config"
	"loremaker-codex-be/internal/pkg/logger"
	"loremaker-codex-be/internal/service"
	"loremaker-codex-be/pkg/query"
)

// Fetches the configured sheet once and dumps the canonical roster,
// handy when a new spreadsheet column refuses to map.
func main() {
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	cache := gocache.New(gocache.NoExpiration, 30*time.Minute)
	client := &http.Client{Timeout: 15 * time.Second}

	library := service.NewLibraryService(&cfg.Sheet, client, cache, nil, sysLogger)

	snapshot, err := library.Load(context.Background(), true)
	if err != nil {
		log.Fatalf("Error: roster load failed: %v", err)
	}

	fmt.Printf("Source: %s  Characters: %d  Loaded: %s\n\n",
		snapshot.Source, len(snapshot.Characters), snapshot.LoadedAt.Format(time.RFC3339))

	for _, c := range snapshot.Characters {
		fmt.Printf("%-28s slug=%-28s score=%-5d art=%v\n", c.Name, c.Slug, query.Score(c), c.HasArt())
		for _, p := range c.Powers {
			fmt.Printf("    %s: %d\n", p.Name, p.Level)
		}
	}
}
