// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	uuid "github.com/gofrs/uuid"

	interrors "github.com/redsocial/api/interactions/errors"
	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/interactions/repository"
	"github.com/redsocial/api/internal/cache"
	"github.com/redsocial/api/internal/pkg/log"
	"github.com/redsocial/api/internal/types"
	postsmodels "github.com/redsocial/api/posts/models"
	postsrepository "github.com/redsocial/api/posts/repository"
)

// MaxCommentLength bounds comment content in characters
const MaxCommentLength = 500

// InteractionService is the mutation engine behind the realtime gateway.
// Every mutation runs under an exclusive row lock on the target post, so
// the denormalized counters move in step with the like and comment rows.
type InteractionService interface {
	// ToggleLike adds the caller's like when absent and removes it when
	// present, adjusting the post's likes counter in the same transaction
	ToggleLike(ctx context.Context, user types.UserContext, postID uuid.UUID) (*models.LikesUpdate, error)

	// AddComment validates and persists a comment, incrementing the
	// post's comments counter in the same transaction
	AddComment(ctx context.Context, user types.UserContext, postID uuid.UUID, content string) (*models.NewComment, error)
}

// interactionService implements the InteractionService interface
type interactionService struct {
	likeRepo    repository.LikeRepository
	locker      repository.PostLocker
	commentRepo postsrepository.CommentRepository
	feedCache   *cache.Service
}

// NewInteractionService creates a new instance of the interaction engine
func NewInteractionService(
	likeRepo repository.LikeRepository,
	locker repository.PostLocker,
	commentRepo postsrepository.CommentRepository,
	feedCache *cache.Service,
) InteractionService {
	if feedCache == nil {
		feedCache = cache.NewService(nil)
	}
	return &interactionService{
		likeRepo:    likeRepo,
		locker:      locker,
		commentRepo: commentRepo,
		feedCache:   feedCache,
	}
}

// ToggleLike flips the caller's like state on a post
func (s *interactionService) ToggleLike(ctx context.Context, user types.UserContext, postID uuid.UUID) (*models.LikesUpdate, error) {
	var update *models.LikesUpdate

	err := s.locker.WithPostLock(ctx, postID, func(txCtx context.Context, post *postsmodels.Post) error {
		existing, err := s.likeRepo.FindByUserAndPost(txCtx, user.UserID, postID)
		if err != nil {
			return err
		}

		var count int64
		liked := false

		if existing != nil {
			removed, err := s.likeRepo.Delete(txCtx, user.UserID, postID)
			if err != nil {
				return err
			}
			count = post.LikesCount
			if removed {
				if count, err = s.locker.AddLikesCount(txCtx, postID, -1); err != nil {
					return err
				}
			}
		} else {
			likeID, err := uuid.NewV4()
			if err != nil {
				return fmt.Errorf("failed to generate like ID: %w", err)
			}

			like := &models.Like{
				ObjectId: likeID,
				UserId:   user.UserID,
				PostId:   postID,
			}
			if err := s.likeRepo.Insert(txCtx, like); err != nil {
				return err
			}
			if count, err = s.locker.AddLikesCount(txCtx, postID, 1); err != nil {
				return err
			}
			liked = true
		}

		update = &models.LikesUpdate{
			PostId:        postID.String(),
			Content:       post.Content,
			OwnerUserId:   post.OwnerUserId.String(),
			CreatedAt:     post.CreatedAt,
			LikesCount:    count,
			CommentsCount: post.CommentsCount,
			UserId:        user.UserID.String(),
			Liked:         liked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return update, nil
}

// AddComment validates and persists a comment on a post
func (s *interactionService) AddComment(ctx context.Context, user types.UserContext, postID uuid.UUID, content string) (*models.NewComment, error) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, interrors.ErrInvalidContent
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	var result *models.NewComment

	err = s.locker.WithPostLock(ctx, postID, func(txCtx context.Context, post *postsmodels.Post) error {
		comment := &postsmodels.Comment{
			ObjectId:    commentID,
			Content:     content,
			OwnerUserId: user.UserID,
			PostId:      postID,
		}
		if err := s.commentRepo.Create(txCtx, comment); err != nil {
			return err
		}

		count, err := s.locker.AddCommentsCount(txCtx, postID, 1)
		if err != nil {
			return err
		}

		result = &models.NewComment{
			ObjectId:      comment.ObjectId.String(),
			PostId:        postID.String(),
			Content:       comment.Content,
			UserId:        user.UserID.String(),
			Username:      user.Username,
			CreatedAt:     comment.CreatedAt,
			CommentsCount: count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return result, nil
}

func (s *interactionService) invalidateFeed(ctx context.Context) {
	if err := s.feedCache.Invalidate(ctx, "feed"); err != nil {
		log.Warn("interactions: feed cache invalidation failed: %v", err)
	}
}
