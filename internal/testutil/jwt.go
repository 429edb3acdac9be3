// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package testutil

import (
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"github.com/redsocial/api/internal/auth/tokens"
	"github.com/redsocial/api/internal/types"
)

// TestJWTSecret is the HS256 secret shared by test tokens and the
// middleware configuration NewTestConfig produces.
const TestJWTSecret = "test-secret"

// NewTestUserContext creates a throwaway identity for tests
func NewTestUserContext(username string) types.UserContext {
	return types.UserContext{
		UserID:   uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    username + "@example.com",
	}
}

// IssueTestToken signs a short-lived access token for the given identity
func IssueTestToken(t *testing.T, user types.UserContext) string {
	t.Helper()
	token, err := tokens.CreateToken(TestJWTSecret, user, time.Hour)
	require.NoError(t, err, "failed to sign test token")
	return token
}
