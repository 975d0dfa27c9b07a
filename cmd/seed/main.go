// Command seed wipes the catalog tables and loads the demo categories and
// products.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"productsapi/internal/config"
	applog "productsapi/internal/log"
	"productsapi/internal/repos"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := applog.New(applog.Options{Development: !cfg.Production(), Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	if err := repos.CleanAndSeed(context.Background(), db); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("catalog seeded", zap.String("driver", cfg.DBDriver), zap.String("sql_driver", db.DriverName()))
}
