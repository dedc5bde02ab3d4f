package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VidHub.com/cmd/message/dal/db"
	"VidHub.com/cmd/message/service"
	"VidHub.com/config"
	"VidHub.com/pkg/database"
	"VidHub.com/pkg/mq"
	"VidHub.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// message 服务消费互动事件并写入通知表
func main() {
	config.Init()

	conn, err := database.Open(utils.GetMysqlDsn(), database.DefaultPool)
	if err != nil {
		panic(err)
	}
	defer database.Close(conn)
	if err = database.Migrate(conn); err != nil {
		panic(err)
	}
	db.Init(conn)

	url := config.RabbitMqURL()
	if url == "" {
		hlog.Fatal("rabbitmq.addr is not configured")
	}
	consumer, err := mq.NewConsumer(url)
	if err != nil {
		panic(err)
	}
	defer consumer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = consumer.ConsumeEngagementEvents(ctx, service.NewNotificationService(ctx)); err != nil {
		panic(err)
	}
	hlog.Info("Message consumer started")

	<-ctx.Done()
	hlog.Info("Message consumer stopped")
}
