package middleware

import (
	"net/http" // HTTP status codes

	"restaurant_system/internal/domain" // Role constants

	"github.com/gin-gonic/gin" // Gin web framework
)

// ManagerOnlyMiddleware gates an endpoint on the verified role claim.
// The order service has no user table, so the claim set by
// JWTAuthMiddleware is the only authority consulted.
func ManagerOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c) // Role claim from the verified token
		if !ok {
			// JWTAuthMiddleware did not run or the token lacked a role
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Only managers may proceed
		if role != domain.RoleManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Manager access required"})
			return
		}
		c.Next() // If manager, proceed to the next handler
	}
}
