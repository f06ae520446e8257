// Package auth resolves the acting user of a request from its bearer token.
// Accounts and credentials live with the identity provider that issues the
// tokens; this package only verifies them.
package auth

import (
	"time"

	"roster-api/packages/auth/middleware"
	"roster-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
)

type Module struct {
	secret []byte
}

func NewModule(secret string) *Module {
	return &Module{secret: []byte(secret)}
}

func (m *Module) JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.secret)
}

func (m *Module) OptionalJWTMiddleware() gin.HandlerFunc {
	return middleware.OptionalJWTMiddleware(m.secret)
}

// IssueToken signs an access token for subject. Used by tooling and tests.
func (m *Module) IssueToken(subject, email string, now time.Time, ttl time.Duration) (string, error) {
	return utils.GenerateToken(m.secret, subject, email, now, ttl)
}
