package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"inventory-backend/internal/admin"
	"inventory-backend/internal/cache"
	"inventory-backend/internal/config"
	"inventory-backend/internal/database"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/notify"
	"inventory-backend/internal/report"
	"inventory-backend/internal/server"
	"inventory-backend/internal/store"
)

func main() {
	cfg := config.Load()
	config.SetLogLevel(cfg.LogLevel)
	logger := config.GetLogger()

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		logger.Fatalf("invalid REPORT_TIMEZONE %q: %v", cfg.ReportTimezone, err)
	}

	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal(err)
	}

	ctx := context.Background()
	rdb, err := database.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword, logger)
	if err != nil {
		// the cache is optional
		config.LogError(logger, "main", "main", "redis unavailable, read cache disabled", nil, err)
	}

	notifier, err := notify.New(cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	st := store.New(db)
	c := cache.New(rdb, cfg.CacheTTL, logger)

	app := server.NewApp(server.Deps{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		AccessLog:   true,
		Users:       st,
		Branches:    admin.NewBranchService(st, c),
		Items:       inventory.NewItemService(st, c),
		Reports:     report.NewService(st, notifier, cfg.ReportRecipient, loc, logger),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			config.LogError(logger, "main", "shutdown", "http", nil, err)
		}
	}()

	logger.WithField("port", cfg.HTTPPort).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Fatal(err)
	}

	if err := notifier.Close(); err != nil {
		config.LogError(logger, "main", "shutdown", "notifier", nil, err)
	}
	_ = database.CloseRedis(rdb)
	_ = database.Close(db)
}
