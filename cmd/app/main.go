package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"cliphive.com/cmd/app/dal/db"
	"cliphive.com/cmd/app/infras/redis"
	"cliphive.com/cmd/app/service"
	"cliphive.com/config"
	"cliphive.com/pkg/mq"
	"cliphive.com/pkg/oss"
	"cliphive.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

func Init() {
	config.Init()
	if err := utils.InitSnowflake(config.ConfigInfo.Snowflake.WorkerID, config.ConfigInfo.Snowflake.DatacenterID); err != nil {
		panic(err)
	}
	db.Init()
	redis.Load()
	if err := oss.Init(); err != nil {
		// Uploads are unavailable without object storage; everything else works.
		hlog.Warnf("object storage init failed: %v", err)
	}
}

func main() {
	Init()

	c := config.ConfigInfo.RabbitMq
	amqpURL := fmt.Sprintf("amqp://%s:%s@%s/", c.Username, c.Password, c.Addr)

	producer, err := mq.NewProducer(amqpURL)
	if err != nil {
		hlog.Warnf("view event producer unavailable: %v", err)
		producer = nil
	} else {
		defer producer.Close()
	}

	app := service.NewApp(producer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if producer != nil {
		consumer, err := mq.NewConsumer(amqpURL, service.NewBusViewSink(app.Bus))
		if err != nil {
			hlog.Warnf("view event consumer unavailable: %v", err)
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.Run(ctx); err != nil && err != context.Canceled {
					hlog.Errorf("view consumer stopped: %v", err)
				}
			}()
		}
	}

	hlog.Info("cliphive app started")
	<-ctx.Done()
	hlog.Info("cliphive app shutting down")
}
