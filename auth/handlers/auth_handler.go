// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/redsocial/api/auth/errors"
	"github.com/redsocial/api/auth/models"
	"github.com/redsocial/api/auth/services"
)

// AuthHandler handles all account-related HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler with injected dependencies
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles account creation
// Endpoint: POST /auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, err := h.authService.Signup(c.Context(), req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created",
		"user": fiber.Map{
			"objectId": user.ObjectId,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Login handles credential verification and token issuance
// Endpoint: POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.Context(), req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// Refresh handles token renewal
// Endpoint: POST /auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(c.Context(), req)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(resp)
}
