package redis

import (
	"context"

	"cliphive.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	goredis "github.com/redis/go-redis/v9"
)

var rdb *goredis.Client

func Load() {
	c := config.ConfigInfo.Redis
	rdb = goredis.NewClient(&goredis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		hlog.Warnf("redis ping failed: %v", err)
	}
}
