package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database
	DBPath      string // sqlite file, used when DatabaseURL is empty
	DatabaseURL string // postgres DSN, takes precedence over DBPath

	// Security
	JWTSecret        string
	JWTSecretFromEnv bool
	TokenTTL         time.Duration
	CORSOrigins      string

	// Spatial
	NearbyDefaultKm float64

	// Server
	Port string
}

var cfg *Config

// Get returns the global configuration
func Get() *Config {
	if cfg == nil {
		cfg = Load()
	}
	return cfg
}

func generateRandomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	jwtSecret := os.Getenv("VOLS_JWT_SECRET")
	jwtFromEnv := jwtSecret != ""
	if !jwtFromEnv {
		// no env secret: generate one, existing tokens die on restart
		jwtSecret = generateRandomSecret()
	}

	return &Config{
		DBPath:           getEnv("VOLS_DB_PATH", "vols_gis.db"),
		DatabaseURL:      getEnv("VOLS_DATABASE_URL", ""),
		JWTSecret:        jwtSecret,
		JWTSecretFromEnv: jwtFromEnv,
		TokenTTL:         getDurationEnv("VOLS_TOKEN_TTL", 24*time.Hour),
		CORSOrigins:      getEnv("VOLS_CORS_ORIGINS", "*"),
		NearbyDefaultKm:  getFloatEnv("VOLS_NEARBY_DEFAULT_KM", 5),
		Port:             getEnv("VOLS_PORT", "6543"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
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
