package middleware

import (
	"errors"                           // For error matching
	"net/http"                         // HTTP status codes
	"restaurant_system/internal/utils" // JWT utility functions
	"strings"                          // String manipulation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/golang-jwt/jwt/v5" // JWT library, for error sentinels
)

// Context keys set by JWTAuthMiddleware
const (
	ctxUserID = "userID" // Authenticated user ID
	ctxEmail  = "email"  // Token subject (email)
	ctxRole   = "role"   // Role claim
)

// JWTAuthMiddleware validates bearer tokens and stores the verified claims
// in the request context. Expired tokens are reported distinctly from
// malformed or tampered ones.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// Expired tokens get their own message
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
				return
			}
			// Anything else is a malformed or tampered token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ctxUserID, claims.UserID) // Store userID in context
		c.Set(ctxEmail, claims.Subject) // Store email in context
		c.Set(ctxRole, claims.Role)     // Store role in context
		c.Next()                        // Proceed to the next handler
	}
}

// GetEmail returns the token subject from the context
func GetEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

// GetRole returns the verified role claim from the context
func GetRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRole)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
