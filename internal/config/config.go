package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all process-wide configuration, read from environment
// variables (optionally seeded from a .env file).
type Config struct {
	AppPort       string
	DBDriver      string // "postgres" or "sqlite"
	DBDSN         string
	JWTSecret     string
	TokenDuration time.Duration
	RedisAddr     string // empty disables the Redis cache
	RedisPassword string
	RedisDB       int
	HomeCacheTTL  time.Duration
	RabbitMQURL   string // empty disables event publishing
}

// Load reads configuration from the environment with sane defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "mangashelf.db")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("HOME_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv() // Load environment variables

	return &Config{
		AppPort:       viper.GetString("APP_PORT"),
		DBDriver:      viper.GetString("DB_DRIVER"),
		DBDSN:         viper.GetString("DB_DSN"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		TokenDuration: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		RedisDB:       viper.GetInt("REDIS_DB"),
		HomeCacheTTL:  time.Duration(viper.GetInt("HOME_CACHE_TTL_SECONDS")) * time.Second,
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
	}
}
