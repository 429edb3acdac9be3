// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/redsocial/api/internal/cache"
	"github.com/redsocial/api/internal/pkg/log"
	"github.com/redsocial/api/internal/types"
	posterrors "github.com/redsocial/api/posts/errors"
	"github.com/redsocial/api/posts/models"
	"github.com/redsocial/api/posts/repository"
	"github.com/redsocial/api/posts/validation"
)

// postService implements the PostService interface
type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	feedCache   *cache.Service
}

// NewPostService creates a new instance of the post service
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, feedCache *cache.Service) PostService {
	if feedCache == nil {
		feedCache = cache.NewService(nil)
	}
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		feedCache:   feedCache,
	}
}

// CreatePost validates and persists a new post for the caller
func (s *postService) CreatePost(ctx context.Context, user types.UserContext, req models.CreatePostRequest) (*models.PostResponse, error) {
	if err := validation.ValidateCreatePost(req); err != nil {
		return nil, fmt.Errorf("%w: %v", posterrors.ErrValidationFailed, err)
	}

	postID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post ID: %w", err)
	}

	post := &models.Post{
		ObjectId:    postID,
		Content:     req.Content,
		OwnerUserId: user.UserID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}

	s.invalidateFeed(ctx)

	row := models.PostWithAuthor{Post: *post, AuthorUsername: user.Username}
	resp := row.ToResponse()
	return &resp, nil
}

// GetFeed returns a page of all posts, newest first
func (s *postService) GetFeed(ctx context.Context, viewerID uuid.UUID, page types.PageQuery) (*models.PostsListResponse, error) {
	page.Normalize()

	cacheKey := s.feedCache.Key("feed", viewerID, page.Page, page.PerPage)
	var cached models.PostsListResponse
	if err := s.feedCache.GetJSON(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	resp, err := s.listPosts(ctx, repository.PostQueryFilter{
		ViewerUserId: &viewerID,
		Limit:        page.PerPage,
		Offset:       page.Offset(),
	}, page)
	if err != nil {
		return nil, err
	}

	if err := s.feedCache.SetJSON(ctx, cacheKey, resp); err != nil {
		log.Warn("posts: feed cache write failed: %v", err)
	}

	return resp, nil
}

// GetUserPosts returns a page of one user's posts
func (s *postService) GetUserPosts(ctx context.Context, ownerID, viewerID uuid.UUID, page types.PageQuery) (*models.PostsListResponse, error) {
	page.Normalize()

	return s.listPosts(ctx, repository.PostQueryFilter{
		OwnerUserId:  &ownerID,
		ViewerUserId: &viewerID,
		Limit:        page.PerPage,
		Offset:       page.Offset(),
	}, page)
}

func (s *postService) listPosts(ctx context.Context, filter repository.PostQueryFilter, page types.PageQuery) (*models.PostsListResponse, error) {
	rows, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}

	responses := make([]models.PostResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rows[i].ToResponse())
	}

	pages := int((total + int64(page.PerPage) - 1) / int64(page.PerPage))

	return &models.PostsListResponse{
		Posts:       responses,
		Total:       total,
		Pages:       pages,
		CurrentPage: page.Page,
		PerPage:     page.PerPage,
		HasNext:     page.Page < pages,
		HasPrev:     page.Page > 1,
	}, nil
}

// DeletePost removes a post owned by the caller
func (s *postService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}
	if post == nil {
		return posterrors.ErrPostNotFound
	}
	if post.OwnerUserId != userID {
		return posterrors.ErrForbidden
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}

	s.invalidateFeed(ctx)
	return nil
}

// GetComments lists the comments on a post
func (s *postService) GetComments(ctx context.Context, postID uuid.UUID) ([]models.CommentResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}
	if post == nil {
		return nil, posterrors.ErrPostNotFound
	}

	rows, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}

	responses := make([]models.CommentResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, rows[i].ToResponse())
	}
	return responses, nil
}

// DeleteComment removes a comment owned by the caller
func (s *postService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}
	if comment == nil {
		return posterrors.ErrCommentNotFound
	}
	if comment.OwnerUserId != userID {
		return posterrors.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("%w: %v", posterrors.ErrDatabaseOperation, err)
	}

	s.invalidateFeed(ctx)
	return nil
}

func (s *postService) invalidateFeed(ctx context.Context) {
	if err := s.feedCache.Invalidate(ctx, "feed"); err != nil {
		log.Warn("posts: feed cache invalidation failed: %v", err)
	}
}
