package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"productsapi/internal/config"
	"productsapi/internal/http/handlers"
	applog "productsapi/internal/log"
	"productsapi/internal/repos"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[warn] no .env file loaded: %v", err)
	}
	cfg := config.Load()

	logger, err := applog.New(applog.Options{
		Development: !cfg.Production(),
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		File:        cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()
	applog.Set(logger)

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("could not open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()
	if !strings.Contains(cfg.DBDSN, ":memory:") {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	logger.Info("database ready", zap.String("driver", cfg.DBDriver))

	if cfg.SeedDemo {
		if err := repos.SeedIfEmpty(context.Background(), db); err != nil {
			logger.Fatal("seed demo catalog", zap.Error(err))
		}
	}

	app := handlers.NewApp(db, cfg)

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
