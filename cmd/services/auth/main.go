// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"

	"github.com/redsocial/api/auth"
	authhandlers "github.com/redsocial/api/auth/handlers"
	authrepository "github.com/redsocial/api/auth/repository"
	authservices "github.com/redsocial/api/auth/services"
	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/internal/platform/server"
)

const defaultPort = 8081

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

	authRepo := authrepository.NewPostgresAuthRepository(pgClient)
	authService := authservices.NewAuthService(authRepo, cfg.JWT)

	app := server.NewApp(cfg)
	auth.RegisterRoutes(app, &auth.AuthHandlers{
		AuthHandler: authhandlers.NewAuthHandler(authService),
	}, cfg)

	log.Info("starting auth service on port %d", cfg.Server.Port)
	server.Run(app, cfg.Server.Port)
}
