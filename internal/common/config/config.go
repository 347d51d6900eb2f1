package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Airports AirportsConfig
	Timezone TimezoneConfig
	Logging  LoggingConfig
	Alerts   AlertsConfig
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// AirportsConfig controls where the airport directory is loaded from.
// Source is either "file" or "postgres". When RefreshURL is set the
// directory is periodically re-downloaded and swapped in place.
type AirportsConfig struct {
	Source          string
	FilePath        string
	RefreshURL      string
	RefreshInterval time.Duration
}

// TimezoneConfig for the timezone-by-coordinate lookup API
type TimezoneConfig struct {
	BaseURL    string
	APIKey     string
	LegTimeout time.Duration
}

type LoggingConfig struct {
	Level    string
	FilePath string
}

type AlertsConfig struct {
	DiscordURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            getEnv("HTTP_PORT", "8080"),
			ShutdownTimeout: getDurationEnv("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "flighttime"),
		},
		Airports: AirportsConfig{
			Source:          getEnv("AIRPORTS_SOURCE", "file"),
			FilePath:        getEnv("AIRPORTS_FILE", "airports-data.txt"),
			RefreshURL:      getEnv("AIRPORTS_REFRESH_URL", ""),
			RefreshInterval: getDurationEnv("AIRPORTS_REFRESH_INTERVAL", 24*time.Hour),
		},
		Timezone: TimezoneConfig{
			BaseURL:    getEnv("TIMEZONE_API_URL", "https://maps.googleapis.com/maps/api/timezone/json"),
			APIKey:     getEnv("TIMEZONE_API_KEY", ""),
			LegTimeout: getDurationEnv("LEG_TIMEOUT", 5*time.Second),
		},
		Logging: LoggingConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", "flighttime.log"),
		},
		Alerts: AlertsConfig{
			DiscordURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

func (c *AirportsConfig) Validate() error {
	switch c.Source {
	case "file":
		if c.FilePath == "" {
			return fmt.Errorf("AIRPORTS_FILE must be set when AIRPORTS_SOURCE=file")
		}
	case "postgres":
	default:
		return fmt.Errorf("unknown AIRPORTS_SOURCE %q (want file or postgres)", c.Source)
	}
	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
