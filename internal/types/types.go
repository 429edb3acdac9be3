// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// UserCtxName is the fiber.Locals key where the authenticated user context is stored.
const UserCtxName = "user"

// UserContext carries the authenticated caller's identity through a request.
type UserContext struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// PageQuery holds the common pagination query parameters.
// Decoded from query strings with gorilla/schema.
type PageQuery struct {
	Page    int `schema:"page" json:"page"`
	PerPage int `schema:"per_page" json:"perPage"`
}

// Pagination defaults
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Normalize clamps the query to sane defaults.
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
}

// Offset returns the row offset for the current page.
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}
