// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/redsocial/api/auth/errors"
	"github.com/redsocial/api/auth/models"
	"github.com/redsocial/api/auth/services/mocks"
	"github.com/redsocial/api/internal/middleware/authjwt"
	platformconfig "github.com/redsocial/api/internal/platform/config"
)

var testJWT = platformconfig.JWTConfig{
	Secret:     "unit-test-secret",
	Expiration: time.Hour,
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	validReq := models.SignupRequest{
		Username: "carla42",
		Email:    "carla@example.com",
		Password: "vV7!rode-unlikely-phrase",
	}

	t.Run("creates user with hashed password", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		mockRepo.On("FindByUsername", ctx, validReq.Username).Return(nil, nil)
		mockRepo.On("FindByEmail", ctx, validReq.Email).Return(nil, nil)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(user *models.UserAuth) bool {
			return user.Username == validReq.Username &&
				user.Email == validReq.Email &&
				bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(validReq.Password)) == nil
		})).Return(nil)

		user, err := service.Signup(ctx, validReq)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ObjectId)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		mockRepo.On("FindByUsername", ctx, validReq.Username).Return(&models.UserAuth{Username: validReq.Username}, nil)

		_, err := service.Signup(ctx, validReq)

		assert.ErrorIs(t, err, autherrors.ErrUserExists)
	})

	t.Run("weak password rejected before any repository call", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		req := validReq
		req.Password = "password123"

		_, err := service.Signup(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrWeakPassword)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		req := validReq
		req.Email = "not-an-email"

		_, err := service.Signup(ctx, req)

		assert.ErrorIs(t, err, autherrors.ErrValidationFailed)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("vV7!rode-unlikely-phrase"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.UserAuth{
		ObjectId:     uuid.Must(uuid.NewV4()),
		Username:     "carla42",
		Email:        "carla@example.com",
		PasswordHash: hash,
	}

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		mockRepo.On("FindByUsername", ctx, "carla42").Return(storedUser, nil)

		resp, err := service.Login(ctx, models.LoginRequest{
			Username: "carla42",
			Password: "vV7!rode-unlikely-phrase",
		})

		require.NoError(t, err)
		userCtx, err := authjwt.ValidateToken(resp.AccessToken, testJWT.Secret)
		require.NoError(t, err)
		assert.Equal(t, storedUser.ObjectId, userCtx.UserID)
		assert.Equal(t, "carla42", userCtx.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		mockRepo.On("FindByUsername", ctx, "carla42").Return(storedUser, nil)

		_, err := service.Login(ctx, models.LoginRequest{
			Username: "carla42",
			Password: "wrong",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		mockRepo.On("FindByUsername", ctx, "nobody").Return(nil, nil)

		_, err := service.Login(ctx, models.LoginRequest{
			Username: "nobody",
			Password: "whatever",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	storedUser := &models.UserAuth{
		ObjectId: uuid.Must(uuid.NewV4()),
		Username: "carla42",
		Email:    "carla@example.com",
	}

	t.Run("valid token reissues", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT).(*authService)

		resp, err := service.issueToken(storedUser)
		require.NoError(t, err)

		mockRepo.On("FindByID", ctx, storedUser.ObjectId).Return(storedUser, nil)

		refreshed, err := service.Refresh(ctx, models.RefreshRequest{Token: resp.AccessToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT)

		_, err := service.Refresh(ctx, models.RefreshRequest{Token: "garbage"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		mockRepo := new(mocks.MockAuthRepository)
		service := NewAuthService(mockRepo, testJWT).(*authService)

		resp, err := service.issueToken(storedUser)
		require.NoError(t, err)

		mockRepo.On("FindByID", ctx, storedUser.ObjectId).Return(nil, nil)

		_, err = service.Refresh(ctx, models.RefreshRequest{Token: resp.AccessToken})
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
