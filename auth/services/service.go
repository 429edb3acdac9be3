// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/redsocial/api/auth/errors"
	"github.com/redsocial/api/auth/models"
	"github.com/redsocial/api/auth/repository"
	"github.com/redsocial/api/auth/validation"
	"github.com/redsocial/api/internal/auth/tokens"
	"github.com/redsocial/api/internal/middleware/authjwt"
	platformconfig "github.com/redsocial/api/internal/platform/config"
	"github.com/redsocial/api/internal/types"
)

// AuthService defines the interface for account operations
type AuthService interface {
	// Signup creates a new account with a bcrypt-hashed password
	Signup(ctx context.Context, req models.SignupRequest) (*models.UserAuth, error)

	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)

	// Refresh reissues a token for a still-valid token
	Refresh(ctx context.Context, req models.RefreshRequest) (*models.TokenResponse, error)
}

// authService implements the AuthService interface
type authService struct {
	authRepo repository.AuthRepository
	jwt      platformconfig.JWTConfig
}

// NewAuthService creates a new instance of the auth service
func NewAuthService(authRepo repository.AuthRepository, jwt platformconfig.JWTConfig) AuthService {
	return &authService{
		authRepo: authRepo,
		jwt:      jwt,
	}
}

// Signup creates a new account with a bcrypt-hashed password
func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.UserAuth, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", autherrors.ErrValidationFailed, err)
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("%w: %v", autherrors.ErrValidationFailed, err)
	}
	if err := validation.ValidatePasswordStrength(req.Password, req.Username, req.Email); err != nil {
		return nil, fmt.Errorf("%w: %v", autherrors.ErrWeakPassword, err)
	}

	existing, err := s.authRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, autherrors.ErrUserExists
	}

	existing, err = s.authRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, autherrors.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &models.UserAuth{
		ObjectId:     userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	// The unique constraints on username/email close the race between the
	// existence checks above and the insert.
	if err := s.authRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues an access token
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", autherrors.ErrValidationFailed, err)
	}

	user, err := s.authRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// Refresh reissues a token for a still-valid token
func (s *authService) Refresh(ctx context.Context, req models.RefreshRequest) (*models.TokenResponse, error) {
	userCtx, err := authjwt.ValidateToken(req.Token, s.jwt.Secret)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	// Re-read the user so a deleted account cannot keep refreshing.
	user, err := s.authRepo.FindByID(ctx, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, autherrors.ErrInvalidToken
	}

	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.UserAuth) (*models.TokenResponse, error) {
	token, err := tokens.CreateToken(s.jwt.Secret, types.UserContext{
		UserID:   user.ObjectId,
		Username: user.Username,
		Email:    user.Email,
	}, s.jwt.Expiration)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.TokenResponse{AccessToken: token}, nil
}
