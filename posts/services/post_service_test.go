// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/redsocial/api/internal/cache"
	"github.com/redsocial/api/internal/types"
	posterrors "github.com/redsocial/api/posts/errors"
	"github.com/redsocial/api/posts/models"
	"github.com/redsocial/api/posts/repository"
	"github.com/redsocial/api/posts/services/mocks"
)

func newTestService(postRepo *mocks.MockPostRepository, commentRepo *mocks.MockCommentRepository) PostService {
	return NewPostService(postRepo, commentRepo, cache.NewService(nil))
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	user := types.UserContext{
		UserID:   uuid.Must(uuid.NewV4()),
		Username: "carla42",
	}

	t.Run("creates post with zeroed counters", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		commentRepo := new(mocks.MockCommentRepository)
		service := newTestService(postRepo, commentRepo)

		postRepo.On("Create", ctx, mock.MatchedBy(func(post *models.Post) bool {
			return post.Content == "hello world" &&
				post.OwnerUserId == user.UserID &&
				post.LikesCount == 0 && post.CommentsCount == 0
		})).Return(nil)

		resp, err := service.CreatePost(ctx, user, models.CreatePostRequest{Content: "hello world"})

		require.NoError(t, err)
		assert.Equal(t, "hello world", resp.Content)
		assert.Equal(t, "carla42", resp.User.Username)
		postRepo.AssertExpectations(t)
	})

	t.Run("empty content rejected before persistence", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := newTestService(postRepo, new(mocks.MockCommentRepository))

		_, err := service.CreatePost(ctx, user, models.CreatePostRequest{Content: "   "})

		assert.ErrorIs(t, err, posterrors.ErrValidationFailed)
		postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("oversized content rejected", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := newTestService(postRepo, new(mocks.MockCommentRepository))

		_, err := service.CreatePost(ctx, user, models.CreatePostRequest{
			Content: strings.Repeat("x", 5001),
		})

		assert.ErrorIs(t, err, posterrors.ErrValidationFailed)
	})
}

func TestPostService_GetFeed(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.Must(uuid.NewV4())

	rows := []models.PostWithAuthor{
		{
			Post: models.Post{
				ObjectId:      uuid.Must(uuid.NewV4()),
				Content:       "first",
				OwnerUserId:   uuid.Must(uuid.NewV4()),
				LikesCount:    2,
				CommentsCount: 1,
				CreatedAt:     time.Now(),
			},
			AuthorUsername: "ana",
			Liked:          true,
		},
	}

	t.Run("pagination defaults applied", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := newTestService(postRepo, new(mocks.MockCommentRepository))

		postRepo.On("List", ctx, mock.MatchedBy(func(filter repository.PostQueryFilter) bool {
			return filter.Limit == types.DefaultPerPage && filter.Offset == 0 &&
				filter.ViewerUserId != nil && *filter.ViewerUserId == viewerID
		})).Return(rows, int64(25), nil)

		resp, err := service.GetFeed(ctx, viewerID, types.PageQuery{})

		require.NoError(t, err)
		assert.Equal(t, int64(25), resp.Total)
		assert.Equal(t, 3, resp.Pages)
		assert.Equal(t, 1, resp.CurrentPage)
		assert.True(t, resp.HasNext)
		assert.False(t, resp.HasPrev)
		assert.True(t, resp.Posts[0].Liked)
		assert.Equal(t, "ana", resp.Posts[0].User.Username)
	})

	t.Run("feed is served from cache on second read", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := NewPostService(postRepo, new(mocks.MockCommentRepository),
			cache.NewServiceWithBackend(cache.NewMemoryCache(), "test", time.Minute))

		postRepo.On("List", ctx, mock.Anything).Return(rows, int64(1), nil).Once()

		_, err := service.GetFeed(ctx, viewerID, types.PageQuery{})
		require.NoError(t, err)

		resp, err := service.GetFeed(ctx, viewerID, types.PageQuery{})
		require.NoError(t, err)
		assert.Len(t, resp.Posts, 1)

		postRepo.AssertNumberOfCalls(t, "List", 1)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	stored := &models.Post{ObjectId: postID, OwnerUserId: ownerID}

	t.Run("owner can delete", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := newTestService(postRepo, new(mocks.MockCommentRepository))

		postRepo.On("FindByID", ctx, postID).Return(stored, nil)
		postRepo.On("Delete", ctx, postID).Return(nil)

		assert.NoError(t, service.DeletePost(ctx, ownerID, postID))
		postRepo.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := newTestService(postRepo, new(mocks.MockCommentRepository))

		postRepo.On("FindByID", ctx, postID).Return(stored, nil)

		err := service.DeletePost(ctx, uuid.Must(uuid.NewV4()), postID)

		assert.ErrorIs(t, err, posterrors.ErrForbidden)
		postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing post", func(t *testing.T) {
		postRepo := new(mocks.MockPostRepository)
		service := newTestService(postRepo, new(mocks.MockCommentRepository))

		postRepo.On("FindByID", ctx, postID).Return(nil, nil)

		err := service.DeletePost(ctx, ownerID, postID)
		assert.ErrorIs(t, err, posterrors.ErrPostNotFound)
	})
}

func TestPostService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())
	commentID := uuid.Must(uuid.NewV4())

	stored := &models.Comment{ObjectId: commentID, OwnerUserId: ownerID}

	t.Run("owner can delete", func(t *testing.T) {
		commentRepo := new(mocks.MockCommentRepository)
		service := newTestService(new(mocks.MockPostRepository), commentRepo)

		commentRepo.On("FindByID", ctx, commentID).Return(stored, nil)
		commentRepo.On("Delete", ctx, commentID).Return(nil)

		assert.NoError(t, service.DeleteComment(ctx, ownerID, commentID))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		commentRepo := new(mocks.MockCommentRepository)
		service := newTestService(new(mocks.MockPostRepository), commentRepo)

		commentRepo.On("FindByID", ctx, commentID).Return(stored, nil)

		err := service.DeleteComment(ctx, uuid.Must(uuid.NewV4()), commentID)
		assert.ErrorIs(t, err, posterrors.ErrForbidden)
	})
}
