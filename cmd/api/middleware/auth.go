package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-admin/cmd/api/auth"
	"blog-admin/cmd/api/dto"
	"blog-admin/internal/logger"
)

// Context keys set by AdminAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// AdminAuth verifies the bearer JWT and requires the admin role. The
// authenticated user id it stores in the context is the only source of the
// addedBy/updatedBy audit fields. Rejections use the same response envelope
// as the handlers.
func AdminAuth(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Status:  dto.StatusFailure,
				Message: err.Error(),
			})
			return
		}

		claims, err := manager.Parse(token)
		if err != nil {
			logger.Log.Warnf("token parse error: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Response{
				Status:  dto.StatusFailure,
				Message: "invalid or expired token",
			})
			return
		}

		if claims.Role != auth.RoleAdmin {
			logger.Log.Warnf("access denied: user %s has role %s, want admin", claims.Subject, claims.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Response{
				Status:  dto.StatusFailure,
				Message: "admin role required",
			})
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
