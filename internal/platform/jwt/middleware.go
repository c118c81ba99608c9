package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextAccountID is the gin context key holding the authenticated account ID.
	ContextAccountID = "accountID"
	// ContextEmail is the gin context key holding the authenticated email.
	ContextEmail = "email"
)

// Verifier checks a signed token and returns its claims.
type Verifier interface {
	Verify(tokenStr string) (map[string]any, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated accounts only.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature and expiry
		claims, err := v.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. The subject is mandatory on session tokens
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ContextAccountID, sub)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextEmail, email)
		}

		// 4. Pass control to the next handler
		c.Next()
	}
}
