package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	JWTSecret          string
	EnableDevEndpoints bool
	RateLimit          string
	CORSAllowOrigins   []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("ENABLE_DEV_ENDPOINTS", false)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		EnableDevEndpoints: viper.GetBool("ENABLE_DEV_ENDPOINTS"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowOrigins:   viper.GetStringSlice("CORS_ALLOW_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if !cfg.IsProduction && cfg.EnableDevEndpoints {
		log.Println("Dev endpoints are enabled.")
	}
	if cfg.IsProduction && cfg.EnableDevEndpoints {
		// Dev endpoints never run in production.
		log.Println("Warning: ENABLE_DEV_ENDPOINTS ignored because IS_PRODUCTION is set.")
		cfg.EnableDevEndpoints = false
	}

	return cfg, nil
}
