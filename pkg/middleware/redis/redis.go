package redis

import (
	"context"
	"fmt"

	r "github.com/redis/go-redis/v9"

	"github.com/agrosilo/silosys/pkg/middleware/logger"
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

var redisClient *r.Client

func InitRedis(ctx context.Context, conf *Config) {
	client := r.NewClient(&r.Options{
		Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf(ctx, "redis unreachable at init: %+v", err)
	}
	redisClient = client
}

func CloseRedis(_ context.Context) {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

func GetClient() *r.Client {
	return redisClient
}
