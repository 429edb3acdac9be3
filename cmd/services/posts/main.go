// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"

	"github.com/redsocial/api/internal/cache"
	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/internal/platform/server"
	"github.com/redsocial/api/posts"
	postshandlers "github.com/redsocial/api/posts/handlers"
	postsrepository "github.com/redsocial/api/posts/repository"
	postsservices "github.com/redsocial/api/posts/services"
)

const defaultPort = 8083

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

	postRepo := postsrepository.NewPostgresPostRepository(pgClient)
	commentRepo := postsrepository.NewPostgresCommentRepository(pgClient)
	postService := postsservices.NewPostService(postRepo, commentRepo, feedCache)

	app := server.NewApp(cfg)
	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: postshandlers.NewPostHandler(postService),
	}, cfg)

	log.Info("starting posts service on port %d", cfg.Server.Port)
	server.Run(app, cfg.Server.Port)
}
