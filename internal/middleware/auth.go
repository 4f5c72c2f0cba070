package middleware

import (
	"net/http"
	"strings"

	"cms-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserKey is the gin context key the authenticated *models.User is stored
// under.
const UserKey = "user"

// AuthMiddleware creates a Gin middleware for JWT authentication. Every
// failure mode gets the same generic 401 so callers can't probe which
// check rejected them.
func AuthMiddleware(authService service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c)
			return
		}

		user, err := authService.ResolveToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Debug("Token rejected", zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(UserKey, user)

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
	c.Abort()
}
