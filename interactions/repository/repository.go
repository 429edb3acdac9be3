// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/redsocial/api/interactions/models"
	postsmodels "github.com/redsocial/api/posts/models"
)

// LikeRepository defines the persistence contract for likes.
// Every method joins the transaction carried by the context when present.
type LikeRepository interface {
	// FindByUserAndPost retrieves a user's like on a post; nil when absent
	FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Like, error)

	// Insert adds a like row. A concurrent duplicate surfaces as a
	// conflict error through the unique (user_id, post_id) constraint.
	Insert(ctx context.Context, like *models.Like) error

	// Delete removes a user's like on a post; reports whether a row
	// was actually removed
	Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error)

	// CountForPost counts the like rows for a post
	CountForPost(ctx context.Context, postID uuid.UUID) (int64, error)
}

// PostLocker serializes mutations on a single post row.
type PostLocker interface {
	// WithPostLock opens a transaction, acquires an exclusive row lock on
	// the post (bounded by the configured lock timeout), and runs fn with
	// a context that routes repository calls through the same transaction.
	// fn receives the locked row as read under the lock. The transaction
	// commits when fn returns nil and rolls back otherwise.
	WithPostLock(ctx context.Context, postID uuid.UUID, fn func(txCtx context.Context, post *postsmodels.Post) error) error

	// AddLikesCount adjusts a post's denormalized likes counter by delta,
	// clamped at zero, and returns the stored value
	AddLikesCount(ctx context.Context, postID uuid.UUID, delta int64) (int64, error)

	// AddCommentsCount adjusts a post's denormalized comments counter by
	// delta, clamped at zero, and returns the stored value
	AddCommentsCount(ctx context.Context, postID uuid.UUID, delta int64) (int64, error)
}
