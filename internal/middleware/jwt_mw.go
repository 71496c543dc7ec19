package middleware

import (
	"net/http"

	"jinstore/internal/repository"
	"jinstore/internal/response"
	"jinstore/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// JWTAuthMiddleware creates a middleware for cookie-based JWT authentication.
// The token is validated and the identity re-resolved from the store, so a
// deleted user's still-valid token is rejected.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenString == "" {
			response.Abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, "failed to resolve user")
			return
		}
		if user == nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		// Role comes from the stored record, not the token, so role changes
		// take effect without reissuing tokens
		c.Set(AuthUserKey, user.ID)
		c.Set(AuthRoleKey, user.Role)

		c.Next()
	}
}
