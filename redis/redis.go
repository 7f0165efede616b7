package redis

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Client stays nil until InitRedis runs; the token allowlist and the stats
// cache treat a nil client as "redis disabled", which is how tests run.
var (
	Client *redis.Client
	Ctx    = context.Background()
)

// InitRedis connects the shared client used for the refresh-token allowlist
// and the public stats cache.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := Client.Ping(Ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis at %s: %v", addr, err)
	}
	log.Println("✅ Connected to Redis")
}
