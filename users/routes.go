// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package users

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redsocial/api/internal/middleware/authjwt"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/users/handlers"
)

// UsersHandlers holds all the handlers this router needs
type UsersHandlers struct {
	UserHandler *handlers.UserHandler
}

// RegisterRoutes is the single entry point for setting up users routes
func RegisterRoutes(app *fiber.App, h *UsersHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{Secret: cfg.JWT.Secret})

	group := app.Group("/users", authMiddleware)

	group.Get("/profile", h.UserHandler.GetProfile)
	group.Get("/:userId/posts", h.UserHandler.GetUserPosts)
}
