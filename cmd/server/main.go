package main

import (
	"log"
	"os"

	"github.com/david/foundation-fit/internal/analyze"
	"github.com/david/foundation-fit/internal/api"
	"github.com/david/foundation-fit/internal/cache"
	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/news"
	"github.com/david/foundation-fit/internal/propublica"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := cache.New()
	registry := propublica.New(cfg.ProPublica, cfg.Cache, store)
	scraper := news.NewScraper(cfg.News)
	service := analyze.NewService(registry, scraper, cfg)

	srv := api.NewServer(registry, service, store, cfg)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
