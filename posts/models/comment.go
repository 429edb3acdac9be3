// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Comment represents the comment entity in the database
type Comment struct {
	ObjectId    uuid.UUID `db:"id" json:"objectId"`
	Content     string    `db:"content" json:"content"`
	OwnerUserId uuid.UUID `db:"user_id" json:"ownerUserId"`
	PostId      uuid.UUID `db:"post_id" json:"postId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CommentWithAuthor is a comment joined with its author
type CommentWithAuthor struct {
	Comment
	AuthorUsername string `db:"author_username" json:"-"`
}

// CommentResponse represents the response format for comment data
type CommentResponse struct {
	ObjectId  string     `json:"objectId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	User      PostAuthor `json:"user"`
	PostId    string     `json:"postId"`
}

// ToResponse converts a joined row into the API shape
func (c *CommentWithAuthor) ToResponse() CommentResponse {
	return CommentResponse{
		ObjectId:  c.ObjectId.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		User: PostAuthor{
			ObjectId: c.OwnerUserId,
			Username: c.AuthorUsername,
		},
		PostId: c.PostId.String(),
	}
}
