package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Catalog
	CatalogBaseURL   string
	CatalogAPIKey    string
	CatalogTimeout   time.Duration
	CatalogRateLimit float64 // Requests per second sent to the catalog

	// Browsing
	SearchDebounce   time.Duration // Settling delay applied to search keystrokes
	GenreRefreshCron string        // Cron spec for the genre list refresh
	GenreCacheTTL    time.Duration

	// Server
	ServerPort string

	// Paths
	ConfigDir    string
	DatabaseFile string // $CONFIG_DIR/cinedeck.db

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("CATALOG_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("CATALOG_TIMEOUT_SECONDS", 10)
	viper.SetDefault("CATALOG_RATE_LIMIT", 40)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 500)
	viper.SetDefault("GENRE_REFRESH_CRON", "0 */6 * * *")
	viper.SetDefault("GENRE_CACHE_TTL_HOURS", 12)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")

	configDir, err := resolveConfigDir(viper.GetString("CONFIG_DIR"))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		CatalogBaseURL:   viper.GetString("CATALOG_BASE_URL"),
		CatalogAPIKey:    viper.GetString("CATALOG_API_KEY"),
		CatalogTimeout:   time.Duration(viper.GetInt("CATALOG_TIMEOUT_SECONDS")) * time.Second,
		CatalogRateLimit: viper.GetFloat64("CATALOG_RATE_LIMIT"),

		SearchDebounce:   time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		GenreRefreshCron: viper.GetString("GENRE_REFRESH_CRON"),
		GenreCacheTTL:    time.Duration(viper.GetInt("GENRE_CACHE_TTL_HOURS")) * time.Hour,

		ServerPort: viper.GetString("SERVER_PORT"),

		ConfigDir:    configDir,
		DatabaseFile: filepath.Join(configDir, "cinedeck.db"),

		LogLevel:  viper.GetString("LOG_LEVEL"),
		LogFormat: viper.GetString("LOG_FORMAT"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.CatalogBaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}
	if c.CatalogAPIKey == "" {
		return fmt.Errorf("CATALOG_API_KEY is required")
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT_SECONDS must be positive")
	}
	if c.CatalogRateLimit <= 0 {
		return fmt.Errorf("CATALOG_RATE_LIMIT must be positive")
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must not be negative")
	}
	return nil
}

func resolveConfigDir(configDir string) (string, error) {
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", "cinedeck"), nil
	}

	// Convert relative path to absolute path
	absPath, err := filepath.Abs(configDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
	}
	return absPath, nil
}
