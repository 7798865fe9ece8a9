package main

import (
	"context"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/chamseddine-glitch/sha/internal/config"
	apphttp "github.com/chamseddine-glitch/sha/internal/http"
	"github.com/chamseddine-glitch/sha/internal/mailer"
	"github.com/chamseddine-glitch/sha/internal/storage"
)

func main() {
	// .env is optional; prod uses real env vars
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var mail mailer.Service
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	}

	uploads, err := storage.FromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("upload storage ready", "driver", uploads.Driver)

	r := apphttp.NewRouter(apphttp.Deps{
		Cfg:     cfg,
		DB:      db,
		Log:     logger,
		Mailer:  mail,
		Uploads: uploads.Storage,
	})
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
