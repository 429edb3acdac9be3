// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package mocks

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/internal/types"
)

// MockInteractionService is a testify mock for services.InteractionService
type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) ToggleLike(ctx context.Context, user types.UserContext, postID uuid.UUID) (*models.LikesUpdate, error) {
	args := m.Called(ctx, user, postID)
	if update := args.Get(0); update != nil {
		return update.(*models.LikesUpdate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInteractionService) AddComment(ctx context.Context, user types.UserContext, postID uuid.UUID, content string) (*models.NewComment, error) {
	args := m.Called(ctx, user, postID, content)
	if comment := args.Get(0); comment != nil {
		return comment.(*models.NewComment), args.Error(1)
	}
	return nil, args.Error(1)
}
