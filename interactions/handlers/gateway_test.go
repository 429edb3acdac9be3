// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	interrors "github.com/redsocial/api/interactions/errors"
	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/interactions/realtime"
	"github.com/redsocial/api/interactions/services/mocks"
	"github.com/redsocial/api/internal/types"
)

func likeMessage(postID uuid.UUID) []byte {
	raw, _ := json.Marshal(models.ClientEvent{
		Event: models.EventLikePost,
		Data:  json.RawMessage(fmt.Sprintf(`{"post_id":%q}`, postID)),
	})
	return raw
}

func commentMessage(postID uuid.UUID, content string) []byte {
	payload, _ := json.Marshal(models.CommentPostEvent{PostId: postID.String(), Content: content})
	raw, _ := json.Marshal(models.ClientEvent{
		Event: models.EventCommentPost,
		Data:  payload,
	})
	return raw
}

func drainOne(t *testing.T, session *realtime.Session) models.ServerEvent {
	t.Helper()
	select {
	case event := <-session.Out:
		return event
	default:
		t.Fatal("expected an event on the session queue")
		return models.ServerEvent{}
	}
}

func TestGateway_Dispatch(t *testing.T) {
	ctx := context.Background()
	user := types.UserContext{UserID: uuid.Must(uuid.NewV4()), Username: "ana"}
	postID := uuid.Must(uuid.NewV4())

	newGateway := func(engine *mocks.MockInteractionService) (*GatewayHandler, *realtime.Hub) {
		hub := realtime.NewHub(8)
		return NewGatewayHandler(engine, hub, "secret"), hub
	}

	t.Run("like is broadcast to every session", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		sender := hub.Register()
		hub.Authenticate(sender.ID, user)
		other := hub.Register()
		hub.Authenticate(other.ID, types.UserContext{UserID: uuid.Must(uuid.NewV4()), Username: "bob"})

		engine.On("ToggleLike", ctx, user, postID).Return(&models.LikesUpdate{
			PostId:        postID.String(),
			Content:       "first post",
			OwnerUserId:   user.UserID.String(),
			UserId:        user.UserID.String(),
			Liked:         true,
			LikesCount:    1,
			CommentsCount: 2,
		}, nil)

		gateway.Dispatch(ctx, sender, likeMessage(postID))

		for _, session := range []*realtime.Session{sender, other} {
			event := drainOne(t, session)
			assert.Equal(t, models.EventUpdateLikes, event.Event)
			update := event.Data.(*models.LikesUpdate)
			assert.True(t, update.Liked)
			assert.Equal(t, int64(1), update.LikesCount)
			assert.Equal(t, "first post", update.Content)
			assert.Equal(t, int64(2), update.CommentsCount)
		}
	})

	t.Run("comment is broadcast with the committed counter", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		sender := hub.Register()
		hub.Authenticate(sender.ID, user)

		engine.On("AddComment", ctx, user, postID, "hello").Return(&models.NewComment{
			PostId:        postID.String(),
			Content:       "hello",
			Username:      "ana",
			CommentsCount: 3,
		}, nil)

		gateway.Dispatch(ctx, sender, commentMessage(postID, "hello"))

		event := drainOne(t, sender)
		assert.Equal(t, models.EventNewComment, event.Event)
		comment := event.Data.(*models.NewComment)
		assert.Equal(t, int64(3), comment.CommentsCount)
	})

	t.Run("unauthenticated session gets an error and no mutation", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		pending := hub.Register()

		keepOpen := gateway.Dispatch(ctx, pending, likeMessage(postID))

		assert.False(t, keepOpen)
		event := drainOne(t, pending)
		require.Equal(t, models.EventError, event.Event)
		assert.Equal(t, interrors.CodeUnauthorized, event.Data.(models.ErrorEvent).Code)
		engine.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("engine errors are unicast to the sender only", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		sender := hub.Register()
		hub.Authenticate(sender.ID, user)
		other := hub.Register()
		hub.Authenticate(other.ID, types.UserContext{UserID: uuid.Must(uuid.NewV4())})

		engine.On("ToggleLike", ctx, user, postID).Return(nil, interrors.ErrPostNotFound)

		gateway.Dispatch(ctx, sender, likeMessage(postID))

		event := drainOne(t, sender)
		assert.Equal(t, models.EventError, event.Event)
		assert.Equal(t, interrors.CodePostNotFound, event.Data.(models.ErrorEvent).Code)

		select {
		case <-other.Out:
			t.Error("bystander session should not receive the error")
		default:
		}
	})

	t.Run("malformed envelope", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		sender := hub.Register()
		hub.Authenticate(sender.ID, user)

		keepOpen := gateway.Dispatch(ctx, sender, []byte("{not json"))

		assert.True(t, keepOpen)
		event := drainOne(t, sender)
		assert.Equal(t, models.EventError, event.Event)
		assert.Equal(t, interrors.CodeBadEvent, event.Data.(models.ErrorEvent).Code)
	})

	t.Run("unknown event name", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		sender := hub.Register()
		hub.Authenticate(sender.ID, user)

		raw, _ := json.Marshal(models.ClientEvent{Event: "follow_user", Data: json.RawMessage(`{}`)})
		gateway.Dispatch(ctx, sender, raw)

		event := drainOne(t, sender)
		assert.Equal(t, interrors.CodeBadEvent, event.Data.(models.ErrorEvent).Code)
	})

	t.Run("invalid post id in payload", func(t *testing.T) {
		engine := new(mocks.MockInteractionService)
		gateway, hub := newGateway(engine)

		sender := hub.Register()
		hub.Authenticate(sender.ID, user)

		raw, _ := json.Marshal(models.ClientEvent{
			Event: models.EventLikePost,
			Data:  json.RawMessage(`{"post_id":"not-a-uuid"}`),
		})
		gateway.Dispatch(ctx, sender, raw)

		event := drainOne(t, sender)
		assert.Equal(t, interrors.CodeBadEvent, event.Data.(models.ErrorEvent).Code)
		engine.AssertNotCalled(t, "ToggleLike", mock.Anything, mock.Anything, mock.Anything)
	})
}
