package middleware

import (
	"net/http"
	"strings"

	"roster-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
)

const (
	actorKey = "actor"
	emailKey = "user_email"
)

// JWTMiddleware rejects requests without a valid bearer token and stores the
// token subject as the acting user.
func JWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, secret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			c.Abort()
			return
		}

		c.Set(actorKey, claims.Subject)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// OptionalJWTMiddleware stores the acting user when a valid token is sent and
// lets anonymous requests through.
func OptionalJWTMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, secret); ok {
			c.Set(actorKey, claims.Subject)
			c.Set(emailKey, claims.Email)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, secret []byte) (*utils.Claims, bool) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(tokenString) == "" {
		return nil, false
	}

	claims, err := utils.ParseToken(secret, strings.TrimSpace(tokenString))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// GetActor returns the acting user set by the JWT middlewares.
func GetActor(c *gin.Context) (string, bool) {
	actor := c.GetString(actorKey)
	return actor, actor != ""
}

// GetUserEmail returns the email claim of the acting user, when the token
// carried one.
func GetUserEmail(c *gin.Context) (string, bool) {
	email := c.GetString(emailKey)
	return email, email != ""
}
