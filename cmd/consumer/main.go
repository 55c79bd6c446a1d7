package main

import (
	"Lyra_Vid/internal/repository"
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"Lyra_Vid/pkg/rabbitmq"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：从MQ接播放事件，把只增的views计数持久化进MySQL。
// 播放数晚一点落库没关系，重复落库也只是多加几次观看，不破坏任何集合语义
func main() {
	_ = godotenv.Load()
	logger.InitLogger()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/lyra_vid?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}

	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	videoRepo := repository.NewVideoRepository(db, nil)
	consumeViews(rabbitMQConn, videoRepo)
}

// 播放事件消费者：1、建channel并注册消费者 2、循环读消息 3、views原子自增 4、按结果ack/nack
func consumeViews(conn *amqp.Connection, videoRepo repository.VideoRepository) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 队列声明是幂等的，消费者先启动也不会挂
	_, err = ch.QueueDeclare(service.QueueView, true, false, false, false, nil)
	if err != nil {
		logger.Log.Fatalf("无法声明播放事件队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueView, // queue
		"",                // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册播放事件消费者: %v", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条播放事件")

			var msg service.ViewMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 解析不了的坏消息没有重试价值，直接丢弃
				d.Nack(false, false)
				continue
			}

			if err := videoRepo.IncrementViews(msg.VideoID); err != nil {
				logCtx.WithError(err).Error("播放数落库失败，将进行重试")
				d.Nack(false, true)
			} else {
				d.Ack(false)
			}
		}
	}()

	logger.Log.Info(" [*] 等待播放事件中. 按 CTRL+C 退出")
	<-forever
}
