package infra_redis_init

import (
	"fmt"
	"log"

	"github.com/go-redis/redis"
	"github.com/reelmatch/core/internal/config"
)

// MustEstablishConn dials redis and exits the process when it is
// unreachable. Room code reservation has no degraded mode to fall into at
// startup.
func MustEstablishConn(cfg config.RedisCache) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
	})

	if err := client.Ping().Err(); err != nil {
		log.Fatalf("failed to reach redis at %s:%s : %v", cfg.Host, cfg.Port, err)
	}

	return client
}
