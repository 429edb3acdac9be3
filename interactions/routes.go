// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package interactions

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redsocial/api/interactions/handlers"
	platformconfig "github.com/redsocial/api/internal/platform/config"
)

// InteractionsHandlers holds all the handlers this router needs
type InteractionsHandlers struct {
	Gateway *handlers.GatewayHandler
}

// RegisterRoutes is the single entry point for setting up the realtime
// gateway. Authentication happens inside the websocket handshake, not
// through the HTTP middleware chain.
func RegisterRoutes(app *fiber.App, h *InteractionsHandlers, cfg *platformconfig.Config) {
	app.Use("/ws", handlers.UpgradeGuard())
	app.Get("/ws", h.Gateway.Handler())
}
