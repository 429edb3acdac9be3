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

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/redsocial/api/internal/database/postgres"
	"github.com/redsocial/api/posts/models"
)

// psql builds queries with PostgreSQL $n placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// postgresPostRepository implements PostRepository using squirrel-built SQL
type postgresPostRepository struct {
	client *postgres.Client
}

// NewPostgresPostRepository creates a new PostgreSQL repository for posts
func NewPostgresPostRepository(client *postgres.Client) PostRepository {
	return &postgresPostRepository{client: client}
}

// Create inserts a new post
func (r *postgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query, args, err := psql.Insert("posts").
		Columns("id", "content", "user_id", "likes_count", "comments_count", "created_at").
		Values(post.ObjectId, post.Content, post.OwnerUserId, post.LikesCount, post.CommentsCount, post.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// FindByID retrieves a post by id
func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `
		SELECT id, content, user_id, likes_count, comments_count, created_at
		FROM posts
		WHERE id = $1
	`

	var post models.Post
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	return &post, nil
}

// List retrieves a page of posts (newest first) joined with authors
func (r *postgresPostRepository) List(ctx context.Context, filter PostQueryFilter) ([]models.PostWithAuthor, int64, error) {
	builder := psql.Select(
		"p.id", "p.content", "p.user_id", "p.likes_count", "p.comments_count", "p.created_at",
		"u.username AS author_username",
	).
		From("posts p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	countBuilder := psql.Select("COUNT(*)").From("posts p")

	if filter.ViewerUserId != nil {
		builder = builder.Column(
			"EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = ?) AS liked",
			*filter.ViewerUserId,
		)
	} else {
		builder = builder.Column("FALSE AS liked")
	}

	if filter.OwnerUserId != nil {
		builder = builder.Where(sq.Eq{"p.user_id": *filter.OwnerUserId})
		countBuilder = countBuilder.Where(sq.Eq{"p.user_id": *filter.OwnerUserId})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	var posts []models.PostWithAuthor
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &posts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

// Delete removes a post; dependent comments and likes cascade at the schema level
func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.client.Executor(ctx).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found")
	}

	return nil
}
