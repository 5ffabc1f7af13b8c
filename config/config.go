package config

import (
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	UploadDir  string
	JwtSecret  string
	FirCsvPath string
	// MaxUpload is passed to the body limit middleware, e.g. "32M".
	MaxUpload string
	// UploadTTL is how long uploaded files are kept before the cleaner
	// removes them. Zero disables cleanup.
	UploadTTL time.Duration
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance.
func GetConfig() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		config = &Config{
			Addr:       getEnv("ADDR", ":8000"),
			UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
			JwtSecret:  getEnv("JWT_SECRET", "super-secret-demo-key"),
			FirCsvPath: getEnv("FIR_CSV", "fir_data.csv"),
			MaxUpload:  getEnv("MAX_UPLOAD", "32M"),
			UploadTTL:  getDuration("UPLOAD_TTL", 2*time.Hour),
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
