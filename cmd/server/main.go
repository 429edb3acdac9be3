// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/redsocial/api/auth"
	authhandlers "github.com/redsocial/api/auth/handlers"
	authrepository "github.com/redsocial/api/auth/repository"
	authservices "github.com/redsocial/api/auth/services"
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
	"github.com/redsocial/api/posts"
	postshandlers "github.com/redsocial/api/posts/handlers"
	postsrepository "github.com/redsocial/api/posts/repository"
	postsservices "github.com/redsocial/api/posts/services"
	"github.com/redsocial/api/users"
	usershandlers "github.com/redsocial/api/users/handlers"
	usersservices "github.com/redsocial/api/users/services"
)

// The combined server mounts every feature on one process. The split
// binaries under cmd/services run the same features on separate ports.
func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config: %v", err)
		os.Exit(1)
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

	// Repositories share the one connection pool
	authRepo := authrepository.NewPostgresAuthRepository(pgClient)
	postRepo := postsrepository.NewPostgresPostRepository(pgClient)
	commentRepo := postsrepository.NewPostgresCommentRepository(pgClient)
	likeRepo := interactionrepository.NewPostgresLikeRepository(pgClient)
	postLocker := interactionrepository.NewPostgresPostLocker(pgClient, cfg.Realtime.LockTimeout)

	authService := authservices.NewAuthService(authRepo, cfg.JWT)
	postService := postsservices.NewPostService(postRepo, commentRepo, feedCache)
	userService := usersservices.NewUserService(authRepo, postService)
	engine := interactionservices.NewInteractionService(likeRepo, postLocker, commentRepo, feedCache)

	hub := realtime.NewHub(cfg.Realtime.SendBuffer)

	app := server.NewApp(cfg)

	auth.RegisterRoutes(app, &auth.AuthHandlers{
		AuthHandler: authhandlers.NewAuthHandler(authService),
	}, cfg)
	users.RegisterRoutes(app, &users.UsersHandlers{
		UserHandler: usershandlers.NewUserHandler(userService),
	}, cfg)
	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: postshandlers.NewPostHandler(postService),
	}, cfg)
	interactions.RegisterRoutes(app, &interactions.InteractionsHandlers{
		Gateway: interactionhandlers.NewGatewayHandler(engine, hub, cfg.JWT.Secret),
	}, cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Info("starting combined API server on port %d", cfg.Server.Port)
	server.Run(app, cfg.Server.Port)
}
