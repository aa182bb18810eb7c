package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all process-wide settings, loaded once at startup and passed
// down explicitly.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

// Load reads configuration from .env (if present) and the environment.
// It fails when a production deployment is missing its signing key.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		JWTSecret:  os.Getenv("JWT_SECRET_KEY"),
		DBHost:     getEnv("POSTGRES_HOST", "localhost"),
		DBPort:     getEnv("POSTGRES_PORT", "5432"),
		DBUser:     getEnv("POSTGRES_USER", "postgres"),
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
		DBName:     getEnv("POSTGRES_DB", "shop"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return Config{}, fmt.Errorf("JWT_SECRET_KEY must be set in production")
		}
		log.Println("Warning: JWT_SECRET_KEY not set, using insecure default")
		cfg.JWTSecret = defaultJWTSecret
	}

	minutes, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "60"))
	if err != nil || minutes <= 0 {
		return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	}
	cfg.TokenTTL = time.Duration(minutes) * time.Minute

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
