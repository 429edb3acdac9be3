// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Post represents the post entity in the database.
// LikesCount and CommentsCount are denormalized caches of the likes and
// comments rows; every writer updates them under the post row lock.
type Post struct {
	ObjectId      uuid.UUID `db:"id" json:"objectId"`
	Content       string    `db:"content" json:"content"`
	OwnerUserId   uuid.UUID `db:"user_id" json:"ownerUserId"`
	LikesCount    int64     `db:"likes_count" json:"likesCount"`
	CommentsCount int64     `db:"comments_count" json:"commentsCount"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// PostWithAuthor is a post joined with its author and, when a caller
// identity is supplied, whether that caller has liked it.
type PostWithAuthor struct {
	Post
	AuthorUsername string `db:"author_username" json:"-"`
	Liked          bool   `db:"liked" json:"-"`
}

// PostAuthor is the embedded author block in post responses
type PostAuthor struct {
	ObjectId uuid.UUID `json:"objectId"`
	Username string    `json:"username"`
}

// PostResponse represents the response format for post data
type PostResponse struct {
	ObjectId      string     `json:"objectId"`
	Content       string     `json:"content"`
	CreatedAt     time.Time  `json:"createdAt"`
	User          PostAuthor `json:"user"`
	LikesCount    int64      `json:"likesCount"`
	CommentsCount int64      `json:"commentsCount"`
	Liked         bool       `json:"liked"`
}

// ToResponse converts a joined row into the API shape
func (p *PostWithAuthor) ToResponse() PostResponse {
	return PostResponse{
		ObjectId:  p.ObjectId.String(),
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		User: PostAuthor{
			ObjectId: p.OwnerUserId,
			Username: p.AuthorUsername,
		},
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		Liked:         p.Liked,
	}
}

// CreatePostRequest represents the request payload for creating a post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// PostsListResponse represents the paginated feed response
type PostsListResponse struct {
	Posts       []PostResponse `json:"posts"`
	Total       int64          `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"currentPage"`
	PerPage     int            `json:"perPage"`
	HasNext     bool           `json:"hasNext"`
	HasPrev     bool           `json:"hasPrev"`
}
