// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/redsocial/api/posts/models"
	"github.com/redsocial/api/posts/repository"
)

// MockPostRepository is a testify mock for repository.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if post := args.Get(0); post != nil {
		return post.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.PostQueryFilter) ([]models.PostWithAuthor, int64, error) {
	args := m.Called(ctx, filter)
	var rows []models.PostWithAuthor
	if v := args.Get(0); v != nil {
		rows = v.([]models.PostWithAuthor)
	}
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
