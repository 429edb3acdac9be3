package tokens

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/redsocial/api/internal/types"
)

// CreateToken creates an HS256 signed JWT carrying the user identity.
// The same shared secret is used by every service that verifies tokens.
func CreateToken(secret string, user types.UserContext, expiration time.Duration) (string, error) {
	jti, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"uid":      user.UserID.String(),
		"username": user.Username,
		"email":    user.Email,
		"jti":      jti.String(),
		"iat":      now.Unix(),
		"exp":      now.Add(expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
