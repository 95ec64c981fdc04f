package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware reads the already-resolved acting identity supplied by
// the upstream identity provider. This service never authenticates; it only
// consumes the resolved id and display name.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing X-Actor-ID header"})
			return
		}
		c.Set("actorID", actorID)
		c.Set("actorName", c.GetHeader("X-Actor-Name"))
		c.Next()
	}
}
