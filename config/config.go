package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration: one DB for the summary mirror, one for the
	// background task queue.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Scheduling knobs.
	SaveBatchTimeoutSec     int `mapstructure:"SAVE_BATCH_TIMEOUT_SEC"`
	PropagationHorizonWeeks int `mapstructure:"PROPAGATION_HORIZON_WEEKS"`
	SummaryCacheTTLMin      int `mapstructure:"SUMMARY_CACHE_TTL_MIN"`
	BookingRequestTTLHours  int `mapstructure:"BOOKING_REQUEST_TTL_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "slotwise")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SAVE_BATCH_TIMEOUT_SEC", 30)
	viper.SetDefault("PROPAGATION_HORIZON_WEEKS", 52)
	viper.SetDefault("SUMMARY_CACHE_TTL_MIN", 15)
	viper.SetDefault("BOOKING_REQUEST_TTL_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SaveBatchTimeout bounds how long a week-save batch may run.
func SaveBatchTimeout() time.Duration {
	return time.Duration(AppConfig.SaveBatchTimeoutSec) * time.Second
}

// SummaryCacheTTL bounds how long the Redis summary mirror stays fresh.
func SummaryCacheTTL() time.Duration {
	return time.Duration(AppConfig.SummaryCacheTTLMin) * time.Minute
}

// BookingRequestTTL is the advisory urgency window stamped on a
// booking_request notification.
func BookingRequestTTL() time.Duration {
	return time.Duration(AppConfig.BookingRequestTTLHours) * time.Hour
}
