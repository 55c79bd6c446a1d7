package service

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueView = "lyra.view.queue"
)

// ViewMessage 播放事件，消费者收到后把views计数持久化进MySQL
type ViewMessage struct {
	VideoID uint64 `json:"video_id"`
}

// ViewEventPublisher 把“有人看了这个视频”发到MQ。
// 播放数是只增的，晚一点写进去没关系，所以走异步
type ViewEventPublisher interface {
	PublishView(videoID uint64) error
}

type viewEventPublisher struct {
	rabbitMQConn *amqp.Connection
}

func NewViewEventPublisher(conn *amqp.Connection) ViewEventPublisher {
	ch, err := conn.Channel()
	if err != nil {
		panic("Failed to open a channel")
	}
	defer ch.Close()
	// 队列声明是幂等的，有就不会重复创建
	_, err = ch.QueueDeclare(
		QueueView, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		panic("Failed to declare a queue")
	}

	return &viewEventPublisher{rabbitMQConn: conn}
}

func (p *viewEventPublisher) PublishView(videoID uint64) error {
	// 每条消息用独立的channel，互不影响
	ch, err := p.rabbitMQConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(ViewMessage{VideoID: videoID})
	if err != nil {
		return err
	}

	return ch.Publish(
		"",        // exchange
		QueueView, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
}
