package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/flighttime-data/internal/airports"
	"github.com/flighttime-data/internal/common/config"
	"github.com/flighttime-data/internal/common/db"
	"github.com/flighttime-data/internal/common/discord"
	"github.com/flighttime-data/internal/common/logger"
	"github.com/flighttime-data/internal/handlers"
	"github.com/flighttime-data/internal/itinerary"
	"github.com/flighttime-data/internal/metrics"
	"github.com/flighttime-data/internal/timezone"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic("Failed to load .env file: " + err.Error())
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(
		logger.ParseLevel(cfg.Logging.Level),
		logger.ConsoleWriter(),
		logger.FileWriter(cfg.Logging.FilePath),
	)

	log.Info("Flight Time Data Service starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"airports_source", cfg.Airports.Source,
		"leg_timeout", cfg.Timezone.LegTimeout,
	)

	if err := cfg.Airports.Validate(); err != nil {
		log.Fatal("Invalid airports configuration", "error", err)
	}

	if cfg.Timezone.APIKey == "" {
		log.Warn("TIMEZONE_API_KEY is not set, offset lookups will fail")
	}

	metrics.Register()

	// Load the airport directory
	directory, err := loadDirectory(cfg, log)
	if err != nil {
		log.Fatal("Failed to load airport directory", "error", err)
	}
	metrics.SetAirportsLoaded(directory.Len())
	log.Info("Airport directory loaded", "airports", directory.Len())

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start the directory refresher (if a source URL is configured)
	if cfg.Airports.RefreshURL != "" {
		refresher := airports.NewRefresher(airports.RefresherConfig{
			URL:           cfg.Airports.RefreshURL,
			CheckInterval: cfg.Airports.RefreshInterval,
		}, directory, log)
		wg.Add(1)
		go func(r *airports.Refresher) {
			defer wg.Done()
			if err := r.Start(ctx); err != nil {
				log.Error("Airport directory refresher error", "error", err)
			}
		}(refresher)
	}

	// Wire the calculation engine
	resolver := timezone.NewHTTPResolver(cfg.Timezone.BaseURL, cfg.Timezone.APIKey, log)
	calculator := itinerary.NewCalculator(directory, resolver, log, cfg.Timezone.LegTimeout)
	alerts := discord.NewClient(cfg.Alerts.DiscordURL)

	handler := handlers.NewHandler(directory, calculator, alerts, log)
	router := handlers.NewRouter(handler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	// Cancel context to stop the refresher
	cancel()
	wg.Wait()

	log.Info("Flight Time Data Service stopped")
}

func loadDirectory(cfg *config.Config, log logger.Logger) (*airports.Directory, error) {
	switch cfg.Airports.Source {
	case "postgres":
		database, err := db.New(cfg.Database.ConnectionString(), log)
		if err != nil {
			return nil, err
		}
		defer database.Close()

		list, err := airports.NewStore(database).LoadAll(context.Background())
		if err != nil {
			return nil, err
		}
		return airports.NewDirectory(list), nil

	default:
		f, err := os.Open(cfg.Airports.FilePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		list, err := airports.NewParser(log).Parse(f)
		if err != nil {
			return nil, err
		}
		return airports.NewDirectory(list), nil
	}
}
