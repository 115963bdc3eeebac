// Command migrate copies habit and check-in data from the legacy mobile
// backend's MongoDB into Postgres and rebuilds user progress from the
// imported history. One-shot cutover tool; run against an empty target.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tom73737/non-zero-days-app-jkqfrv/config"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database"
	"github.com/tom73737/non-zero-days-app-jkqfrv/logger"
	"github.com/tom73737/non-zero-days-app-jkqfrv/migration"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to config file")
		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "legacy MongoDB connection URI")
		mongoName  = flag.String("mongo-db", "nonzero_legacy", "legacy MongoDB database name")
		batchSize  = flag.Int("batch", 500, "insert batch size")
	)
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler("NonZero-Migrate", slog.LevelInfo)))

	if err := run(*configPath, *mongoURI, *mongoName, *batchSize); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Migration completed successfully")
}

func run(configPath, mongoURI, mongoName string, batchSize int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer db.Close()

	if err := db.InitTables(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	importer := migration.NewImporter(db.BunDB(), client.Database(mongoName))
	importer.SetBatchSize(batchSize)

	return importer.Run(ctx)
}
