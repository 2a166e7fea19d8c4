package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	JWTSecret      string
	JWTIssuer      string
	RedisURL       string
	RateLimit      string
	MigrationsPath string

	CORSAllowedOrigins []string

	// Ledger behaviour
	StrictDeliveryTransitions bool
	IdentifierMaxAttempts     int
	LedgerAuditInterval       time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("STRICT_DELIVERY_TRANSITIONS", false)
	viper.SetDefault("IDENTIFIER_MAX_ATTEMPTS", 5)
	viper.SetDefault("LEDGER_AUDIT_INTERVAL", "0s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IdentifierMaxAttempts = viper.GetInt("IDENTIFIER_MAX_ATTEMPTS")
	if cfg.IdentifierMaxAttempts <= 0 {
		log.Printf("Warning: Invalid IDENTIFIER_MAX_ATTEMPTS (%d). Defaulting to 5.\n", cfg.IdentifierMaxAttempts)
		cfg.IdentifierMaxAttempts = 5
	}

	auditIntervalStr := viper.GetString("LEDGER_AUDIT_INTERVAL")
	auditInterval, err := time.ParseDuration(auditIntervalStr)
	if err != nil || auditInterval < 0 {
		log.Printf("Warning: Invalid value for LEDGER_AUDIT_INTERVAL ('%s'). Scheduled audits are disabled.\n", auditIntervalStr)
		auditInterval = 0
	}
	cfg.LedgerAuditInterval = auditInterval

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = strings.ToLower(viper.GetString("LOG_LEVEL"))
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.StrictDeliveryTransitions = viper.GetBool("STRICT_DELIVERY_TRANSITIONS")

	return cfg, nil
}
