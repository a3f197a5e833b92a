package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/config"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core"
)

func main() {
	cfg := config.Load()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	redisClient, err := config.NewRedis(cfg)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer func() { _ = redisClient.Close() }()

	coreModule, err := core.Build(db, amqpConn, mqttClient, redisClient, cfg.EventQueueSize)
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	coreModule.StartDispatcher(ctx)

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient, redisClient)
	health.Register(r)
	coreModule.RegisterMetrics(r)

	api := r.Group("/api")
	coreModule.RegisterRoutes(api)

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
