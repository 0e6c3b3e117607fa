package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	filterCachePrefix = "filter:"
	filterCacheTTL    = 10 * time.Minute
)

// filterCacheKey hashes the canonicalized query string so the cache key is
// insensitive to parameter order.
func filterCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return filterCachePrefix + hex.EncodeToString(sum[:])
}

// FlushFilterCache drops every cached filter response. Runs after any
// property write, including bulk imports; a nil client makes it a no-op.
func FlushFilterCache(client *redis.Client) {
	if client == nil {
		return
	}

	ctx := context.Background()
	const scanCount = 100
	scanPattern := filterCachePrefix + "*"

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = client.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := client.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error deleting %d filter cache keys: %v", len(keysToDelete), err)
		return
	}
	log.Printf("Filter cache invalidated, deleted %d keys", len(keysToDelete))
}

func (a *App) invalidateFilterCache() {
	FlushFilterCache(a.Cache)
}
