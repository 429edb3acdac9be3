// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	authrepository "github.com/redsocial/api/auth/repository"
	"github.com/redsocial/api/internal/types"
	postsmodels "github.com/redsocial/api/posts/models"
	postsservices "github.com/redsocial/api/posts/services"
	usererrors "github.com/redsocial/api/users/errors"
)

// Profile is the public view of a user record
type Profile struct {
	ObjectId uuid.UUID `json:"objectId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// UserService defines the interface for user profile operations
type UserService interface {
	// GetProfile returns the caller's own profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// GetUserPosts returns a page of the caller's own posts.
	// Requesting another user's listing is forbidden.
	GetUserPosts(ctx context.Context, callerID, ownerID uuid.UUID, page types.PageQuery) (*postsmodels.PostsListResponse, error)
}

// userService implements the UserService interface
type userService struct {
	authRepo    authrepository.AuthRepository
	postService postsservices.PostService
}

// NewUserService creates a new instance of the user service
func NewUserService(authRepo authrepository.AuthRepository, postService postsservices.PostService) UserService {
	return &userService{
		authRepo:    authRepo,
		postService: postService,
	}
}

// GetProfile returns the caller's own profile
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.authRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usererrors.ErrDatabaseOperation, err)
	}
	if user == nil {
		return nil, usererrors.ErrUserNotFound
	}

	return &Profile{
		ObjectId: user.ObjectId,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// GetUserPosts returns a page of the caller's own posts
func (s *userService) GetUserPosts(ctx context.Context, callerID, ownerID uuid.UUID, page types.PageQuery) (*postsmodels.PostsListResponse, error) {
	if callerID != ownerID {
		return nil, usererrors.ErrForbidden
	}
	return s.postService.GetUserPosts(ctx, ownerID, callerID, page)
}
