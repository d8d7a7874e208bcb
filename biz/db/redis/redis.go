package redis

import (
	"context"
	"fmt"
	"time"

	"pwh_admin/be/biz/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

func Init() {
	conf := config.GetRedisConf()
	addr := conf.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", conf.IP, conf.Port)
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Errorf("redis connect failed: %w", err))
	}
	hlog.Infof("redis connected: %s", addr)
}

func GetRedisClient() *redis.Client {
	return client
}
