package session

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/ShopFox/internal/pkg/cache"
	"github.com/ManuelReschke/ShopFox/internal/pkg/config"
)

// NewRedisStorage creates Redis-backed session storage on the dedicated sessions database.
func NewRedisStorage(cfg config.CacheConfig) fiber.Storage {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		port = 6379
	}
	return redis.New(redis.Config{
		Host:     cfg.Host,
		Port:     port,
		Password: cfg.Password,
		Database: cache.SessionDB,
		Reset:    false,
	})
}

// NewSessionStore creates the cookie session store. A nil storage keeps
// sessions in process memory, which is what tests use.
func NewSessionStore(storage fiber.Storage, secure bool) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
		Expiration:     time.Hour * 1,
		KeyLookup:      "cookie:session_id",
	})
}
