package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the loaded configuration
type Config struct {
	Env            string
	APIURL         string
	Profile        string
	Storage        string
	StateFile      string
	RedisURL       string
	RedisTTL       time.Duration
	DynamoTable    string
	RequestTimeout time.Duration
	LogoutDelay    time.Duration
}

// Load reads configuration from the environment, optionally seeded by a .env file
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Env:            getEnv("APP_ENV", "development"),
		APIURL:         getEnv("STOREFRONT_API_URL", "http://localhost:5000"),
		Profile:        getEnv("STOREFRONT_PROFILE", "default"),
		Storage:        getEnv("STOREFRONT_STORAGE", "file"),
		StateFile:      getEnv("STOREFRONT_STATE_FILE", defaultStateFile()),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		RedisTTL:       getDuration("STOREFRONT_REDIS_TTL", 0),
		DynamoTable:    getEnv("STOREFRONT_DYNAMO_TABLE", "storefront-state"),
		RequestTimeout: getDuration("STOREFRONT_REQUEST_TIMEOUT", 0),
		LogoutDelay:    getDuration("STOREFRONT_LOGOUT_DELAY", time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid duration for %s=%q, using %s", key, raw, defaultVal)
		return defaultVal
	}
	return d
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront-state.json"
	}
	return filepath.Join(home, ".storefront", "state.json")
}
