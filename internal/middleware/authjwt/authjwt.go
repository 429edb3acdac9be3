package authjwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/redsocial/api/internal/types"
)

// Config defines the config for the JWT middleware.
type Config struct {
	// The HMAC secret for validating HS256 tokens.
	Secret string
	// The context key to store the UserContext. Defaults to types.UserCtxName.
	UserCtxName string
}

// New creates a new middleware handler.
// Tokens are accepted from the Authorization header (Bearer scheme) or
// the access_token cookie.
func New(cfg Config) fiber.Handler {
	if cfg.UserCtxName == "" {
		cfg.UserCtxName = types.UserCtxName
	}

	return func(c *fiber.Ctx) error {
		var tokenString string

		// 1. Try Authorization header first (for mobile/API clients)
		authHeader := c.Get(types.HeaderAuthorization)
		if authHeader != "" && strings.HasPrefix(authHeader, types.BearerPrefix) {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 {
				tokenString = parts[1]
			}
		}

		// 2. Fall back to access_token cookie (for web browsers)
		if tokenString == "" {
			tokenString = c.Cookies("access_token")
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid JWT",
			})
		}

		userCtx, err := ValidateToken(tokenString, cfg.Secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Invalid token",
				"details": err.Error(),
			})
		}

		c.Locals(cfg.UserCtxName, userCtx)
		return c.Next()
	}
}

// ValidateToken validates an HS256 JWT and returns the UserContext if valid.
// This is a pure validation function that does NOT write to the response;
// the realtime gateway reuses it for the connection handshake.
func ValidateToken(tokenString string, secret string) (types.UserContext, error) {
	var userCtx types.UserContext

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Enforce the expected signing algorithm.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return userCtx, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return userCtx, fmt.Errorf("invalid token")
	}

	// Check if token is expired
	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < time.Now().Unix() {
			return userCtx, fmt.Errorf("token has expired")
		}
	}

	return mapToUserContext(claims)
}

// mapToUserContext converts claim data to UserContext
func mapToUserContext(claims jwt.MapClaims) (types.UserContext, error) {
	var userCtx types.UserContext

	userIDStr, ok := claims["uid"].(string)
	if !ok {
		return userCtx, fmt.Errorf("missing or invalid uid in claim")
	}

	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		return userCtx, fmt.Errorf("invalid user ID: %v", err)
	}
	userCtx.UserID = userID

	if username, ok := claims["username"].(string); ok {
		userCtx.Username = username
	}

	if email, ok := claims["email"].(string); ok {
		userCtx.Email = email
	}

	return userCtx, nil
}
