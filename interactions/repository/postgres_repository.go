// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	interrors "github.com/redsocial/api/interactions/errors"
	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/internal/database/postgres"
	postsmodels "github.com/redsocial/api/posts/models"
)

// postgresLikeRepository implements LikeRepository using raw SQL queries
type postgresLikeRepository struct {
	client *postgres.Client
}

// NewPostgresLikeRepository creates a new PostgreSQL repository for likes
func NewPostgresLikeRepository(client *postgres.Client) LikeRepository {
	return &postgresLikeRepository{client: client}
}

// FindByUserAndPost retrieves a user's like on a post
func (r *postgresLikeRepository) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Like, error) {
	query := `
		SELECT id, user_id, post_id, created_at
		FROM likes
		WHERE user_id = $1 AND post_id = $2
	`

	var like models.Like
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &like, query, userID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, interrors.Classify(err)
	}

	return &like, nil
}

// Insert adds a like row
func (r *postgresLikeRepository) Insert(ctx context.Context, like *models.Like) error {
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO likes (id, user_id, post_id, created_at)
		VALUES (:id, :user_id, :post_id, :created_at)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, like); err != nil {
		return interrors.Classify(err)
	}

	return nil
}

// Delete removes a user's like on a post
func (r *postgresLikeRepository) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, interrors.Classify(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, interrors.Classify(err)
	}

	return affected > 0, nil
}

// CountForPost counts the like rows for a post
func (r *postgresLikeRepository) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM likes WHERE post_id = $1`

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, postID); err != nil {
		return 0, interrors.Classify(err)
	}

	return count, nil
}

// postgresPostLocker implements PostLocker on the posts table
type postgresPostLocker struct {
	client      *postgres.Client
	lockTimeout time.Duration
}

// NewPostgresPostLocker creates a PostLocker bounded by lockTimeout
func NewPostgresPostLocker(client *postgres.Client, lockTimeout time.Duration) PostLocker {
	return &postgresPostLocker{client: client, lockTimeout: lockTimeout}
}

// WithPostLock runs fn under an exclusive row lock on the post.
// SET LOCAL scopes the lock_timeout to this transaction, so a contended
// row surfaces lock_not_available instead of waiting unboundedly.
func (r *postgresPostLocker) WithPostLock(ctx context.Context, postID uuid.UUID, fn func(txCtx context.Context, post *postsmodels.Post) error) error {
	tx, err := r.client.BeginTxx(ctx, nil)
	if err != nil {
		return interrors.Classify(err)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
	if _, err := tx.ExecContext(ctx, timeout); err != nil {
		return interrors.Classify(err)
	}

	lockQuery := `
		SELECT id, content, user_id, likes_count, comments_count, created_at
		FROM posts
		WHERE id = $1
		FOR UPDATE
	`

	var post postsmodels.Post
	if err := tx.GetContext(ctx, &post, lockQuery, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return interrors.ErrPostNotFound
		}
		return interrors.Classify(err)
	}

	if err := fn(postgres.WithTx(ctx, tx), &post); err != nil {
		return interrors.Classify(err)
	}

	if err := tx.Commit(); err != nil {
		return interrors.Classify(err)
	}
	committed = true

	return nil
}

// AddLikesCount adjusts the denormalized likes counter, clamped at zero
func (r *postgresPostLocker) AddLikesCount(ctx context.Context, postID uuid.UUID, delta int64) (int64, error) {
	return r.addCounter(ctx, "likes_count", postID, delta)
}

// AddCommentsCount adjusts the denormalized comments counter, clamped at zero
func (r *postgresPostLocker) AddCommentsCount(ctx context.Context, postID uuid.UUID, delta int64) (int64, error) {
	return r.addCounter(ctx, "comments_count", postID, delta)
}

func (r *postgresPostLocker) addCounter(ctx context.Context, column string, postID uuid.UUID, delta int64) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE posts
		SET %s = GREATEST(%s + $2, 0)
		WHERE id = $1
		RETURNING %s
	`, column, column, column)

	var value int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &value, query, postID, delta); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, interrors.ErrPostNotFound
		}
		return 0, interrors.Classify(err)
	}

	return value, nil
}
