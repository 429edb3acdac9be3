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
)

// MockCommentRepository is a testify mock for repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if comment := args.Get(0); comment != nil {
		return comment.(*models.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentWithAuthor, error) {
	args := m.Called(ctx, postID)
	var rows []models.CommentWithAuthor
	if v := args.Get(0); v != nil {
		rows = v.([]models.CommentWithAuthor)
	}
	return rows, args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
