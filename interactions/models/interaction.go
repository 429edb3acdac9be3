// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"encoding/json"
	"time"

	uuid "github.com/gofrs/uuid"
)

// Like represents the like entity in the database. The pair
// (user_id, post_id) is unique, so a user holds at most one like per post.
type Like struct {
	ObjectId  uuid.UUID `db:"id" json:"objectId"`
	UserId    uuid.UUID `db:"user_id" json:"userId"`
	PostId    uuid.UUID `db:"post_id" json:"postId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Inbound event names accepted on the websocket
const (
	EventLikePost    = "like_post"
	EventCommentPost = "comment_post"
)

// Outbound event names pushed to sessions
const (
	EventUpdateLikes = "update_likes"
	EventNewComment  = "new_comment"
	EventError       = "error"
)

// ClientEvent is the envelope every inbound websocket message uses.
// Data stays raw until the event name selects the payload type.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// LikePostEvent is the payload of a like_post event
type LikePostEvent struct {
	PostId string `json:"post_id" validate:"required,uuid4"`
}

// CommentPostEvent is the payload of a comment_post event
type CommentPostEvent struct {
	PostId  string `json:"post_id" validate:"required,uuid4"`
	Content string `json:"content" validate:"required,max=500"`
}

// ServerEvent is the envelope every outbound websocket message uses
type ServerEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// LikesUpdate is broadcast after a toggle commits. It carries the
// locked post row so clients can render it without a follow-up fetch,
// plus the acting user and their new like state. LikesCount is the
// committed counter value.
type LikesUpdate struct {
	PostId        string    `json:"post_id"`
	Content       string    `json:"content"`
	OwnerUserId   string    `json:"owner_user_id"`
	CreatedAt     time.Time `json:"createdAt"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	UserId        string    `json:"user_id"`
	Liked         bool      `json:"liked"`
}

// NewComment is broadcast after a comment commits
type NewComment struct {
	ObjectId      string    `json:"objectId"`
	PostId        string    `json:"post_id"`
	Content       string    `json:"content"`
	UserId        string    `json:"user_id"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"createdAt"`
	CommentsCount int64     `json:"comments_count"`
}

// ErrorEvent is sent to a single session when its request fails
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
