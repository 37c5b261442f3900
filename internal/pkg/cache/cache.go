package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ManuelReschke/ShopFox/internal/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Sessions live in their own database so flushing the cache keeps users logged in.
const (
	CacheDB   = 0
	SessionDB = 1
)

// SetupCache connects to the Redis/Dragonfly server. A failed ping is only
// logged; in that case it returns nil and callers fall back to in-memory state.
func SetupCache(cfg config.CacheConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       CacheDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("[cache] warning: could not connect to cache: %v", err)
		_ = client.Close()
		return nil
	}
	log.Printf("[cache] connected: %s", pong)
	return client
}
