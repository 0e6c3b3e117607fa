package config

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// InitRedis connects the filter-response cache. An empty addr means the
// cache is disabled; handlers treat a nil client as "no cache".
func InitRedis(addr, password string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, filter cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Failed to connect to Redis at %s, filter cache disabled: %v", addr, err)
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
