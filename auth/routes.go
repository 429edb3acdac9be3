// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redsocial/api/auth/handlers"
	"github.com/redsocial/api/internal/middleware/ratelimit"
	platformconfig "github.com/redsocial/api/internal/platform/config"
)

// AuthHandlers holds all the handlers this router needs
type AuthHandlers struct {
	AuthHandler *handlers.AuthHandler
}

// RegisterRoutes is the single entry point for setting up auth routes
func RegisterRoutes(app *fiber.App, h *AuthHandlers, cfg *platformconfig.Config) {
	group := app.Group("/auth")

	signupLimiter := ratelimit.New(ratelimit.Config{
		Endpoint: "signup",
		Limit:    cfg.RateLimits.Signup,
	})
	loginLimiter := ratelimit.New(ratelimit.Config{
		Endpoint: "login",
		Limit:    cfg.RateLimits.Login,
	})

	group.Post("/signup", signupLimiter, h.AuthHandler.Signup)
	group.Post("/login", loginLimiter, h.AuthHandler.Login)
	group.Post("/refresh", h.AuthHandler.Refresh)
}
