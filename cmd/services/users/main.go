// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"

	authrepository "github.com/redsocial/api/auth/repository"
	"github.com/redsocial/api/internal/cache"
	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/internal/platform/server"
	postsrepository "github.com/redsocial/api/posts/repository"
	postsservices "github.com/redsocial/api/posts/services"
	"github.com/redsocial/api/users"
	usershandlers "github.com/redsocial/api/users/handlers"
	usersservices "github.com/redsocial/api/users/services"
)

const defaultPort = 8082

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

	authRepo := authrepository.NewPostgresAuthRepository(pgClient)
	postRepo := postsrepository.NewPostgresPostRepository(pgClient)
	commentRepo := postsrepository.NewPostgresCommentRepository(pgClient)
	postService := postsservices.NewPostService(postRepo, commentRepo, feedCache)
	userService := usersservices.NewUserService(authRepo, postService)

	app := server.NewApp(cfg)
	users.RegisterRoutes(app, &users.UsersHandlers{
		UserHandler: usershandlers.NewUserHandler(userService),
	}, cfg)

	log.Info("starting users service on port %d", cfg.Server.Port)
	server.Run(app, cfg.Server.Port)
}
