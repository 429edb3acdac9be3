// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redsocial/api/internal/middleware/authjwt"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up posts routes
func RegisterRoutes(app *fiber.App, h *PostsHandlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{Secret: cfg.JWT.Secret})

	group := app.Group("/posts", authMiddleware)

	group.Get("/", h.PostHandler.GetFeed)
	group.Post("/", h.PostHandler.CreatePost)
	group.Delete("/comments/:commentId", h.PostHandler.DeleteComment)
	group.Get("/:postId/comments", h.PostHandler.GetComments)
	group.Delete("/:postId", h.PostHandler.DeletePost)
}
