// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/redsocial/api/auth/models"
)

// AuthRepository defines the persistence contract for user credentials
type AuthRepository interface {
	// Create inserts a new credential record
	Create(ctx context.Context, user *models.UserAuth) error

	// FindByUsername retrieves a user by username; returns nil when absent
	FindByUsername(ctx context.Context, username string) (*models.UserAuth, error)

	// FindByEmail retrieves a user by email; returns nil when absent
	FindByEmail(ctx context.Context, email string) (*models.UserAuth, error)

	// FindByID retrieves a user by id; returns nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error)
}
