package main

import (
	"context"
	"net/http"

	"blog-admin/cmd/api/auth"
	"blog-admin/cmd/api/router"
	"blog-admin/cmd/api/services"
	"blog-admin/config"
	"blog-admin/db"
	"blog-admin/eventbus"
	"blog-admin/internal/logger"
	"blog-admin/repositories"
)

// @title           Blog Admin API
// @version         1.0
// @description     CRUD admin backend for blog documents
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromConfig(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		panic(err)
	}

	var bus eventbus.Bus = eventbus.NoopBus{}
	if brokers := config.KafkaBootstrapServers(); cfg.Kafka.Enabled && brokers != "" {
		if err := eventbus.EnsureTopic(brokers, cfg.Kafka.TopicBlogEvents, cfg.Kafka.NumPartitions, cfg.Kafka.ReplicationFactor); err != nil {
			logger.Log.Errorf("failed to prepare kafka topic: %v", err)
			panic(err)
		}
		kb, err := eventbus.NewKafkaBus(brokers)
		if err != nil {
			logger.Log.Errorf("failed to create kafka producer: %v", err)
			panic(err)
		}
		defer kb.Close()
		bus = kb
	} else {
		logger.Log.Warn("event publishing disabled, mutations will not be announced")
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		logger.Log.Errorf("failed to configure auth: %v", err)
		panic(err)
	}

	repo := repositories.NewBlogRepository(db.Database())
	svc := services.NewBlogService(repo, bus, cfg.Kafka.TopicBlogEvents)

	r := router.New(svc, jwtManager)
	if err := r.Run(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		panic(err)
	}
}
