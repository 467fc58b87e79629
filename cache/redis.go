package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sara-kerr/Ecommerce-MERN/config"
)

var redisClient *redis.Client

const (
	// Cache key patterns for the product catalog
	ProductListPattern   = "products:*"
	ProductDetailPattern = "product:%s"

	// TTLs for the two kinds of product cache entries
	ListTTL   = 5 * time.Minute
	DetailTTL = 30 * time.Minute
)

// Init creates the Redis client and verifies the connection. The client
// is usable even when the ping fails; callers treat cache errors as
// misses, so a down Redis degrades to uncached reads.
func Init(cfg config.RedisConfig) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := redisClient.Ping(ctx).Result()
	return err
}

// Set stores data in the cache as JSON
func Set(ctx context.Context, key string, data interface{}, expiration time.Duration) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, key, dataJSON, expiration).Err()
}

// Get retrieves cached JSON data into dest
func Get(ctx context.Context, key string, dest interface{}) error {
	val, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Delete removes a single cache entry
func Delete(ctx context.Context, key string) error {
	return redisClient.Del(ctx, key).Err()
}

// DeleteByPattern deletes all keys matching a pattern
func DeleteByPattern(ctx context.Context, pattern string) error {
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
