package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/assessly-hq/assessly-services/api/internal/config"
	"github.com/assessly-hq/assessly-services/api/internal/logger"
	"github.com/assessly-hq/assessly-services/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}

	app := server.New(cfg, zlog, client)
	if err := app.Run(); err != nil {
		zlog.Fatal("server failed to start", zap.Error(err))
	}
}
