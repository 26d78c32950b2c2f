package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/borderhop/pkg/config"
)

var Client *redis.Client

// Connect opens the shared client. Redis is optional, so an empty address
// leaves Client nil.
func Connect(redisConfig config.RedisConfig) error {
	if redisConfig.Address == "" {
		return nil
	}

	if redisConfig.Password == "" {
		Client = redis.NewClient(&redis.Options{
			Addr: redisConfig.Address,
			DB:   redisConfig.Database,
		})
	} else {
		Client = redis.NewClient(&redis.Options{
			Addr:     redisConfig.Address,
			Password: redisConfig.Password,
			DB:       redisConfig.Database,
		})
	}

	statusCmd := Client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		Client = nil
		return err
	}

	return nil
}
