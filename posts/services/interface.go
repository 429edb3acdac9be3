// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/redsocial/api/internal/types"
	"github.com/redsocial/api/posts/models"
)

// PostService defines the interface for post and comment operations
type PostService interface {
	// CreatePost validates and persists a new post for the caller
	CreatePost(ctx context.Context, user types.UserContext, req models.CreatePostRequest) (*models.PostResponse, error)

	// GetFeed returns a page of all posts, newest first, with the
	// caller's liked flag resolved
	GetFeed(ctx context.Context, viewerID uuid.UUID, page types.PageQuery) (*models.PostsListResponse, error)

	// GetUserPosts returns a page of one user's posts
	GetUserPosts(ctx context.Context, ownerID, viewerID uuid.UUID, page types.PageQuery) (*models.PostsListResponse, error)

	// DeletePost removes a post owned by the caller
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error

	// GetComments lists the comments on a post
	GetComments(ctx context.Context, postID uuid.UUID) ([]models.CommentResponse, error)

	// DeleteComment removes a comment owned by the caller
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
}
