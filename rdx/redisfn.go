package rdx

import (
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"wayfare/globals"
)

var Conn *redis.Client

// Init connects to Redis. The cache is an accelerator for the public
// lookup path; the service works without it, so a dead Redis only logs.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v (lookup cache disabled)", addr, err)
	}
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) (int64, error) {
	return Conn.Del(globals.Ctx, key).Result()
}
