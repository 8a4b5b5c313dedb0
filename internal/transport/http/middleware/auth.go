package middleware

import (
	"net/http"

	"github.com/cympfh/connect-four/pkg/auth"
	"github.com/cympfh/connect-four/pkg/httputil"
	"github.com/gin-gonic/gin"
)

const ClaimsKey = "claims"

// AuthMiddleware validates the bearer JWT and requires the given scope.
func AuthMiddleware(secret, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateAccessToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if claims.Scope != scope {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient scope"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
