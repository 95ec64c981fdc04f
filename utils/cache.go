// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"slotwise/config"
)

// SummaryCacheClient mirrors provider availability summaries for fast
// external reads. The Mongo profile document stays authoritative; this cache
// only has to tolerate staleness.
var SummaryCacheClient *redis.Client

// InitSummaryCache initializes the Redis client for the availability summary mirror.
func InitSummaryCache() {
	SummaryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SummaryCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Summary Cache): %v", err)
	}
}

// GetSummaryCacheClient returns the summary mirror client.
func GetSummaryCacheClient() *redis.Client {
	if SummaryCacheClient == nil {
		InitSummaryCache()
	}
	return SummaryCacheClient
}
