// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/redsocial/api/interactions/models"
)

// Interaction engine specific errors
var (
	ErrPostNotFound   = errors.New("post not found")
	ErrInvalidContent = errors.New("invalid comment content")
	ErrConflict       = errors.New("interaction already applied")
	ErrUnauthorized   = errors.New("session not authenticated")
	ErrLockTimeout    = errors.New("post is busy, try again")
	ErrStorage        = errors.New("storage operation failed")
)

// Error codes carried on websocket error events
const (
	CodePostNotFound   = "POST_NOT_FOUND"
	CodeInvalidContent = "INVALID_CONTENT"
	CodeConflict       = "CONFLICT"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeLockTimeout    = "LOCK_TIMEOUT"
	CodeBadEvent       = "BAD_EVENT"
	CodeInternal       = "INTERNAL_ERROR"
)

// Classify maps low-level postgres failures onto engine sentinels.
// A unique violation on the likes pair means a concurrent toggle already
// inserted the row; a lock_not_available means the row lock wait
// exceeded the configured lock_timeout.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case "lock_not_available":
			return fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
	}

	if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvalidContent) || errors.Is(err, ErrLockTimeout) ||
		errors.Is(err, ErrStorage) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// ToEvent converts an engine error into the error event unicast to the
// session that issued the failing request.
func ToEvent(err error) models.ErrorEvent {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return models.ErrorEvent{Code: CodePostNotFound, Message: "Post not found"}
	case errors.Is(err, ErrInvalidContent):
		return models.ErrorEvent{Code: CodeInvalidContent, Message: "Comment must be between 1 and 500 characters"}
	case errors.Is(err, ErrConflict):
		return models.ErrorEvent{Code: CodeConflict, Message: "Interaction was already applied"}
	case errors.Is(err, ErrUnauthorized):
		return models.ErrorEvent{Code: CodeUnauthorized, Message: "Authentication required"}
	case errors.Is(err, ErrLockTimeout):
		return models.ErrorEvent{Code: CodeLockTimeout, Message: "Post is busy, try again"}
	default:
		return models.ErrorEvent{Code: CodeInternal, Message: "An unexpected error occurred"}
	}
}
