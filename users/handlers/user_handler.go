// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/redsocial/api/internal/types"
	postshandlers "github.com/redsocial/api/posts/handlers"
	"github.com/redsocial/api/users/errors"
	"github.com/redsocial/api/users/services"
)

// UserHandler handles all user-related HTTP requests
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler with injected dependencies
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the authenticated caller's profile
// Endpoint: GET /users/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(errors.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid user context",
		})
	}

	profile, err := h.userService.GetProfile(c.Context(), user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(profile)
}

// GetUserPosts lists a user's posts. Callers may only list their own.
// Endpoint: GET /users/:userId/posts?page=1&per_page=10
func (h *UserHandler) GetUserPosts(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(errors.ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid user context",
		})
	}

	ownerID, err := uuid.FromString(c.Params("userId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errors.ErrorResponse{
			Code:    "INVALID_UUID",
			Message: "Invalid userId format",
		})
	}

	resp, err := h.userService.GetUserPosts(c.Context(), user.UserID, ownerID, postshandlers.DecodePageQuery(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(resp)
}
