// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	interrors "github.com/redsocial/api/interactions/errors"
	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/interactions/realtime"
	"github.com/redsocial/api/interactions/services"
	"github.com/redsocial/api/internal/middleware/authjwt"
	"github.com/redsocial/api/internal/pkg/log"
	"github.com/redsocial/api/internal/types"
)

// GatewayHandler terminates websocket connections and routes their
// events through the interaction engine.
type GatewayHandler struct {
	engine    services.InteractionService
	hub       *realtime.Hub
	jwtSecret string
}

// NewGatewayHandler creates a new GatewayHandler with injected dependencies
func NewGatewayHandler(engine services.InteractionService, hub *realtime.Hub, jwtSecret string) *GatewayHandler {
	return &GatewayHandler{
		engine:    engine,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// UpgradeGuard rejects plain HTTP requests on the websocket endpoint
// and captures handshake headers before the protocol switch.
func UpgradeGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		c.Locals("authorization", c.Get(types.HeaderAuthorization))
		return c.Next()
	}
}

// Handler returns the websocket connection handler
func (h *GatewayHandler) Handler() fiber.Handler {
	return websocket.New(h.serve)
}

// serve owns one connection: handshake, writer pump, then the read loop
func (h *GatewayHandler) serve(conn *websocket.Conn) {
	session := h.hub.Register()
	done := make(chan struct{})
	go h.writePump(conn, session, done)

	// Unregister closes the outbound queue, which stops the write pump
	// after it drains any queued events.
	defer func() {
		h.hub.Unregister(session.ID)
		<-done
	}()

	user, err := h.authenticate(conn)
	if err != nil {
		h.hub.SendTo(session.ID, models.ServerEvent{
			Event: models.EventError,
			Data:  interrors.ToEvent(interrors.ErrUnauthorized),
		})
		return
	}
	h.hub.Authenticate(session.ID, user)

	log.Info("realtime: session %s opened for %s", session.ID, user.Username)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Info("realtime: session %s closed: %v", session.ID, err)
			return
		}
		if !h.Dispatch(context.Background(), session, raw) {
			return
		}
	}
}

// authenticate resolves the handshake token from the Authorization
// header captured before the upgrade, or the token query parameter.
func (h *GatewayHandler) authenticate(conn *websocket.Conn) (types.UserContext, error) {
	var tokenString string

	if header, ok := conn.Locals("authorization").(string); ok && strings.HasPrefix(header, types.BearerPrefix) {
		parts := strings.Split(header, " ")
		if len(parts) == 2 {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		tokenString = conn.Query("token")
	}

	if tokenString == "" {
		return types.UserContext{}, interrors.ErrUnauthorized
	}

	return authjwt.ValidateToken(tokenString, h.jwtSecret)
}

// writePump drains the session queue onto the wire. It exits when the
// hub closes the queue, which also happens when the session is dropped
// for falling behind.
func (h *GatewayHandler) writePump(conn *websocket.Conn, session *realtime.Session, done chan<- struct{}) {
	defer close(done)
	defer conn.Close()

	for event := range session.Out {
		if err := conn.WriteJSON(event); err != nil {
			log.Warn("realtime: write to session %s failed: %v", session.ID, err)
			return
		}
	}
}

// Dispatch decodes one inbound message and applies it. Mutations that
// commit are broadcast to every session; failures are unicast back to
// the sender. The return value reports whether the connection may stay
// open: an event from a session that never authenticated gets the error
// reply and then the connection closes.
func (h *GatewayHandler) Dispatch(ctx context.Context, session *realtime.Session, raw []byte) bool {
	var envelope models.ClientEvent
	if err := json.Unmarshal(raw, &envelope); err != nil {
		h.sendError(session, models.ErrorEvent{
			Code:    interrors.CodeBadEvent,
			Message: "Malformed event",
		})
		return true
	}

	user, ok := session.User()
	if !ok {
		h.sendError(session, interrors.ToEvent(interrors.ErrUnauthorized))
		return false
	}

	switch envelope.Event {
	case models.EventLikePost:
		h.handleLike(ctx, session, user, envelope.Data)
	case models.EventCommentPost:
		h.handleComment(ctx, session, user, envelope.Data)
	default:
		h.sendError(session, models.ErrorEvent{
			Code:    interrors.CodeBadEvent,
			Message: "Unknown event: " + envelope.Event,
		})
	}
	return true
}

func (h *GatewayHandler) handleLike(ctx context.Context, session *realtime.Session, user types.UserContext, data json.RawMessage) {
	var payload models.LikePostEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(session, models.ErrorEvent{
			Code:    interrors.CodeBadEvent,
			Message: "Malformed like_post payload",
		})
		return
	}

	postID, err := uuid.FromString(payload.PostId)
	if err != nil {
		h.sendError(session, models.ErrorEvent{
			Code:    interrors.CodeBadEvent,
			Message: "Invalid post_id format",
		})
		return
	}

	update, err := h.engine.ToggleLike(ctx, user, postID)
	if err != nil {
		h.sendError(session, interrors.ToEvent(err))
		return
	}

	h.hub.Broadcast(models.ServerEvent{
		Event: models.EventUpdateLikes,
		Data:  update,
	})
}

func (h *GatewayHandler) handleComment(ctx context.Context, session *realtime.Session, user types.UserContext, data json.RawMessage) {
	var payload models.CommentPostEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		h.sendError(session, models.ErrorEvent{
			Code:    interrors.CodeBadEvent,
			Message: "Malformed comment_post payload",
		})
		return
	}

	postID, err := uuid.FromString(payload.PostId)
	if err != nil {
		h.sendError(session, models.ErrorEvent{
			Code:    interrors.CodeBadEvent,
			Message: "Invalid post_id format",
		})
		return
	}

	comment, err := h.engine.AddComment(ctx, user, postID, payload.Content)
	if err != nil {
		h.sendError(session, interrors.ToEvent(err))
		return
	}

	h.hub.Broadcast(models.ServerEvent{
		Event: models.EventNewComment,
		Data:  comment,
	})
}

func (h *GatewayHandler) sendError(session *realtime.Session, event models.ErrorEvent) {
	h.hub.SendTo(session.ID, models.ServerEvent{
		Event: models.EventError,
		Data:  event,
	})
}
