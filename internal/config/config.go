package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	RedisURL   string
	ServerPort string
	Mode       string
	CORSOrigin string
	CacheTTL   int
	StatsTTL   int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "storefront"),
		DBPort:     getEnv("DB_PORT", "5432"),
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Mode:       getEnv("APP_MODE", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		CacheTTL:   getEnvAsInt("CACHE_TTL", 300),
		StatsTTL:   getEnvAsInt("STATS_CACHE_TTL", 60),
	}
}

// DatabaseDSN assembles the postgres connection string from the split
// host/user/password/database/port settings.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
