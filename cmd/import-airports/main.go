package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/flighttime-data/internal/airports"
	"github.com/flighttime-data/internal/common/config"
	"github.com/flighttime-data/internal/common/db"
	"github.com/flighttime-data/internal/common/logger"
)

// import-airports loads an airports data file into Postgres so the
// service can run with AIRPORTS_SOURCE=postgres.
func main() {
	filePath := flag.String("file", "", "path to the airports data file (defaults to AIRPORTS_FILE)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic("Failed to load .env file: " + err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(
		logger.ParseLevel(cfg.Logging.Level),
		logger.ConsoleWriter(),
	)

	path := *filePath
	if path == "" {
		path = cfg.Airports.FilePath
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal("Failed to open airports data file", "path", path, "error", err)
	}
	defer f.Close()

	list, err := airports.NewParser(log).Parse(f)
	if err != nil {
		log.Fatal("Failed to parse airports data file", "path", path, "error", err)
	}

	database, err := db.New(cfg.Database.ConnectionString(), log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close()

	store := airports.NewStore(database)
	if err := store.ReplaceAll(context.Background(), list, filepath.Base(path)); err != nil {
		log.Fatal("Failed to import airports", "error", err)
	}

	log.Info("Airports imported", "airports", len(list), "source", path)
}
