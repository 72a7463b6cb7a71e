package app

import (
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/coursebridge-backend/internal/clients/redis"
	"github.com/yungbote/coursebridge-backend/internal/platform/logger"
)

type Clients struct {
	Redis *goredis.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var rdb *goredis.Client
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		c, err := redis.NewClient(redis.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis client: %w", err)
		}
		rdb = c
	} else {
		log.Info("REDIS_ADDR not set; course cache disabled")
	}

	return Clients{Redis: rdb}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
