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
	"github.com/lib/pq"

	"github.com/redsocial/api/auth/models"
	autherrors "github.com/redsocial/api/auth/errors"
	"github.com/redsocial/api/internal/database/postgres"
)

// postgresAuthRepository implements AuthRepository using raw SQL queries
type postgresAuthRepository struct {
	client *postgres.Client
}

// NewPostgresAuthRepository creates a new PostgreSQL repository for user credentials
func NewPostgresAuthRepository(client *postgres.Client) AuthRepository {
	return &postgresAuthRepository{client: client}
}

// Create inserts a new credential record
func (r *postgresAuthRepository) Create(ctx context.Context, user *models.UserAuth) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (:id, :username, :email, :password_hash, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return autherrors.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// FindByUsername retrieves a user by username
func (r *postgresAuthRepository) FindByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
}

// FindByEmail retrieves a user by email
func (r *postgresAuthRepository) FindByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

// FindByID retrieves a user by id
func (r *postgresAuthRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *postgresAuthRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.UserAuth, error) {
	var user models.UserAuth
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
