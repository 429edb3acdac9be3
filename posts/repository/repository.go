// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/redsocial/api/posts/models"
)

// PostQueryFilter represents query filters for the post feed
type PostQueryFilter struct {
	// OwnerUserId restricts the feed to one author's posts
	OwnerUserId *uuid.UUID

	// ViewerUserId enables the per-caller liked flag
	ViewerUserId *uuid.UUID

	Limit  int
	Offset int
}

// PostRepository defines the persistence contract for posts
type PostRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *models.Post) error

	// FindByID retrieves a post by id; returns nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// List retrieves a page of posts (newest first) joined with authors,
	// plus the total row count for pagination
	List(ctx context.Context, filter PostQueryFilter) ([]models.PostWithAuthor, int64, error)

	// Delete removes a post; dependent comments and likes cascade
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the persistence contract for comments.
// Create participates in the interaction engine's row-locked transaction
// when the context carries one.
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by id; returns nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// ListByPost retrieves all comments on a post joined with authors
	ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentWithAuthor, error)

	// Delete removes a comment
	Delete(ctx context.Context, id uuid.UUID) error
}
