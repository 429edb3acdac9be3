// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// User service specific errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrForbidden         = errors.New("not allowed to access this resource")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeUserNotFound = "USER_NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleServiceError handles service errors and returns appropriate HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeUserNotFound,
			Message: "User not found",
		})
	case errors.Is(err, ErrForbidden):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Code:    CodeForbidden,
			Message: "You do not have permission to access this resource",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		})
	}
}
