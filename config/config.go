package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	MongoURI    string
	MongoDB     string
	RedisURL    string
	NoticeDelay time.Duration
}

// Load reads configuration from the environment, falling back to
// defaults suitable for local development. A .env file is honored
// when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "5000"),
		Env:         getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "demoshop"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		NoticeDelay: getDuration("CHECKOUT_NOTICE_DELAY_MS", 3000),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultMillis int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defaultMillis) * time.Millisecond
}
