// middleware/auth.go
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	userIDKey    = "user_id"
	userEmailKey = "user_email"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// SessionClaims is the identity provider's session token. Subject holds the user ID.
type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Session is the resolved caller of a request.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// ParseSessionToken verifies an HS256 session token and resolves its user.
func ParseSessionToken(secret, tokenString string) (Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Make sure token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}
	if !token.Valid {
		return Session{}, errors.New("invalid token")
	}
	if claims.Type == tokenTypeRefresh {
		return Session{}, errors.New("invalid token type")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, fmt.Errorf("invalid subject: %w", err)
	}
	return Session{UserID: userID, Email: claims.Email}, nil
}

// SignSessionToken issues an access token in the identity provider's format.
// The server only verifies tokens; this exists for local tooling and tests.
func SignSessionToken(secret string, userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret key not configured")
	}
	now := time.Now()
	claims := SessionClaims{
		Email: email,
		Type:  tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// AuthMiddleware rejects requests without a valid bearer session token and
// stores the caller's user ID in the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		session, err := ParseSessionToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, session.UserID)
		c.Set(userEmailKey, session.Email)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
