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

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/posts/models"
)

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{client: client}
}

// Create inserts a new comment. When the context carries a transaction
// (the interaction engine's row-locked mutation) the insert joins it.
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (id, content, user_id, post_id, created_at)
		VALUES (:id, :content, :user_id, :post_id, :created_at)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, comment); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by id
func (r *postgresCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, content, user_id, post_id, created_at
		FROM comments
		WHERE id = $1
	`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return &comment, nil
}

// ListByPost retrieves all comments on a post joined with authors, oldest first
func (r *postgresCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.content, c.user_id, c.post_id, c.created_at,
		       u.username AS author_username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	var comments []models.CommentWithAuthor
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Delete removes a comment and decrements the owning post's denormalized
// counter in the same statement, so the cache never drifts from the rows.
// The counter never goes below zero.
func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		WITH removed AS (
			DELETE FROM comments WHERE id = $1 RETURNING post_id
		)
		UPDATE posts
		SET comments_count = GREATEST(comments_count - 1, 0)
		WHERE id IN (SELECT post_id FROM removed)
	`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("comment not found")
	}

	return nil
}
