package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/chamseddine-glitch/sha/internal/config"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/remote"
)

// Seeds fresh remote bins: default settings and an empty order list. Safe to
// skip bins that already hold a document.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := remote.NewClient(cfg.Remote)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if raw, err := client.Get(ctx, cfg.Remote.SettingsBin); err != nil {
		log.Fatalf("settings bin: %v", err)
	} else if raw == nil {
		if err := client.Put(ctx, cfg.Remote.SettingsBin, settings.Defaults()); err != nil {
			log.Fatalf("seed settings bin: %v", err)
		}
		log.Println("settings bin seeded with defaults")
	} else {
		log.Println("settings bin already has a document, skipping")
	}

	if raw, err := client.Get(ctx, cfg.Remote.OrdersBin); err != nil {
		log.Fatalf("orders bin: %v", err)
	} else if raw == nil {
		if err := client.Put(ctx, cfg.Remote.OrdersBin, []any{}); err != nil {
			log.Fatalf("seed orders bin: %v", err)
		}
		log.Println("orders bin seeded with an empty list")
	} else {
		log.Println("orders bin already has a document, skipping")
	}
}
