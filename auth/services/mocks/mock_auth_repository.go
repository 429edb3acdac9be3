// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/redsocial/api/auth/models"
)

// MockAuthRepository is a testify mock for repository.AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Create(ctx context.Context, user *models.UserAuth) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAuthRepository) FindByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*models.UserAuth), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) FindByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.UserAuth), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.UserAuth), args.Error(1)
	}
	return nil, args.Error(1)
}
