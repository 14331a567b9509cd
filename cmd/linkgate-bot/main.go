package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"linkgate/internal/bot"
	"linkgate/internal/links"
	"linkgate/internal/web"
	"linkgate/pkg/store"
)

func main() {
	cfg := bot.LoadConfig()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}
	cache, err := openCache(cfg)
	if err != nil {
		log.Fatalf("cache init error: %v", err)
	}

	app, err := bot.NewBotApp(cfg, st, cache)
	if err != nil {
		log.Fatalf("telegram bot init error: %v", err)
	}

	// one-shot registration; a failure is logged and startup continues
	if cfg.TelegramMode == "polling" {
		if err := bot.DeleteWebhook(cfg); err != nil {
			log.Printf("deleteWebhook failed: %v", err)
		}
	} else {
		if err := bot.RegisterWebhook(cfg); err != nil {
			log.Printf("setWebhook failed: %v", err)
		}
	}

	srv := web.NewServer(cfg.TelegramToken, st, cache, app)
	go func() {
		log.Printf("web server listening on %s", cfg.Addr())
		if err := http.ListenAndServe(cfg.Addr(), srv); err != nil {
			log.Fatalf("web server error: %v", err)
		}
	}()

	fmt.Println("Starting Telegram bot in", cfg.TelegramMode, "mode")
	if cfg.TelegramMode == "polling" {
		if err := app.StartPolling(); err != nil {
			log.Fatalf("polling error: %v", err)
		}
		return
	}

	// webhook mode: updates arrive through the web server, so the
	// foreground just waits for a terminal signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
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
