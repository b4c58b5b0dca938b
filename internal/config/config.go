package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DataDir       string
	StorageDriver string
	BoltPath      string
	DatabaseDSN   string
	Bootstrap     bool
	JWTSecret     string
	SessionTTL    time.Duration
	CORSOrigins   []string
	GeminiAPIKey  string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads the process environment, after merging a .env file when one is
// present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getenv("DATA_DIR", "Data")
	cfg := &Config{
		Addr:          getenv("APP_ADDR", ":8080"),
		DataDir:       dataDir,
		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", "file")),
		BoltPath:      getenv("BOLT_PATH", filepath.Join(dataDir, "quizroom.db")),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		SessionTTL:    24 * time.Hour,
	}

	if v := os.Getenv("STORAGE_BOOTSTRAP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("STORAGE_BOOTSTRAP must be a boolean")
		}
		cfg.Bootstrap = b
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errors.New("SESSION_TTL must be a positive duration")
		}
		cfg.SessionTTL = d
	}

	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
