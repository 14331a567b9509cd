package main

import (
	"log"
	"net/http"

	"linkgate/internal/bot"
	"linkgate/internal/links"
	"linkgate/internal/web"
	"linkgate/pkg/store"
)

// linkgate-web runs the web server alone: join pages and the group-link
// API, no bot and no webhook registration.
func main() {
	cfg := bot.LoadConfig()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}
	cache, err := openCache(cfg)
	if err != nil {
		log.Fatalf("cache init error: %v", err)
	}

	srv := web.NewServer(cfg.TelegramToken, st, cache, nil)
	log.Printf("linkgate-web listening on %s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), srv); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg *bot.Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		return store.NewMemoryStore(), nil
	}
	return links.NewPostgresStore(cfg.DatabaseURL)
}

func openCache(cfg *bot.Config) (*links.Cache, error) {
	if cfg.RedisURL == "" {
		return links.NewCache(links.NewInMemoryRedisClient()), nil
	}
	client, err := links.NewRealRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return links.NewCache(client), nil
}
