package main

import (
	"context"
	"errors"
	"log"

	"Vista_Video/internal/cdn"
	"Vista_Video/internal/config"
	"Vista_Video/internal/service"
	"Vista_Video/pkg/logger"
	"Vista_Video/pkg/rabbitmq"

	"github.com/streadway/amqp"
)

// 消费者进程：连接RabbitMQ，删除CDN上已经没有本地记录的文件
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	logger.InitLogger(cfg.Log.Level, cfg.Log.File)

	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := rabbitmq.DeclareQueues(rabbitMQConn); err != nil {
		logger.Log.Fatalf("声明队列失败: %v", err)
	}

	cdnClient := cdn.NewClient(cdn.Config{
		PrivateKey:  cfg.CDN.PrivateKey,
		PublicKey:   cfg.CDN.PublicKey,
		URLEndpoint: cfg.CDN.URLEndpoint,
		UploadURL:   cfg.CDN.UploadURL,
		APIURL:      cfg.CDN.APIURL,
		Timeout:     cfg.CDN.Timeout,
		RateLimit:   cfg.CDN.RateLimit,
	})

	consumeCDNCleanup(rabbitMQConn, cdnClient)
}

// CDN清理消费者：1、通过mq的TCP连接创建channel 2、通过ch注册消费者 3、持续消费清理消息 4、只尝试一次，成功Ack，失败记日志后丢弃
func consumeCDNCleanup(conn *amqp.Connection, deleter service.FileDeleter) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	msgs, err := ch.Consume(
		rabbitmq.QueueCDNCleanup, // queue
		"",                       // consumer
		false,                    // auto-ack: 处理完再手动确认
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,                      // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册CDN清理消费者: %v", err)
	}

	forever := make(chan bool)

	go func() {
		// msgs不是切片，而是通道channel，如果通道为空不会结束循环，而会“阻塞”
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)

			fileID, err := service.ProcessCleanupMessage(context.Background(), deleter, d.Body)
			if err != nil {
				if errors.Is(err, service.ErrBadCleanupMessage) {
					logCtx.WithError(err).Error("消息JSON解析失败")
				} else {
					// 不重试，CDN上留下的文件只记日志
					logCtx.WithError(err).WithField("file_id", fileID).Error("删除CDN文件失败，消息丢弃")
				}
				d.Nack(false, false)
				continue
			}
			logCtx.WithField("file_id", fileID).Info("CDN文件已删除")
			d.Ack(false)
		}
	}()
	logger.Log.Info(" [*] 等待CDN清理消息中. 按 CTRL+C 退出")
	// 没有发送者，阻止main函数退出
	<-forever
}
