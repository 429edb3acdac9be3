// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"

	"github.com/redsocial/api/interactions"
	interactionhandlers "github.com/redsocial/api/interactions/handlers"
	"github.com/redsocial/api/interactions/realtime"
	interactionrepository "github.com/redsocial/api/interactions/repository"
	interactionservices "github.com/redsocial/api/interactions/services"
	"github.com/redsocial/api/internal/cache"
	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/internal/platform/server"
	postsrepository "github.com/redsocial/api/posts/repository"
)

const defaultPort = 8084

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config: %v", err)
		os.Exit(1)
	}
	if os.Getenv("SERVER_PORT") == "" {
		cfg.Server.Port = defaultPort
	}

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Error("failed to connect to postgres: %v", err)
		os.Exit(1)
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Error("failed to ensure schema: %v", err)
		os.Exit(1)
	}

	feedCache := cache.NewService(&cfg.Cache)
	defer feedCache.Close()

	likeRepo := interactionrepository.NewPostgresLikeRepository(pgClient)
	postLocker := interactionrepository.NewPostgresPostLocker(pgClient, cfg.Realtime.LockTimeout)
	commentRepo := postsrepository.NewPostgresCommentRepository(pgClient)
	engine := interactionservices.NewInteractionService(likeRepo, postLocker, commentRepo, feedCache)

	hub := realtime.NewHub(cfg.Realtime.SendBuffer)

	app := server.NewApp(cfg)
	interactions.RegisterRoutes(app, &interactions.InteractionsHandlers{
		Gateway: interactionhandlers.NewGatewayHandler(engine, hub, cfg.JWT.Secret),
	}, cfg)

	log.Info("starting interactions gateway on port %d", cfg.Server.Port)
	server.Run(app, cfg.Server.Port)
}
