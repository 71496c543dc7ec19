package middleware

import (
	"net/http"

	"jinstore/internal/model"
	"jinstore/internal/response"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles.
// It must run after JWTAuthMiddleware, which populates the role key.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			response.Abort(c, http.StatusForbidden, "role not found in request, ensure auth middleware runs first")
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			response.Abort(c, http.StatusForbidden, "invalid role type in request")
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			response.Abort(c, http.StatusForbidden, "you do not have permission to access this resource")
			return
		}

		c.Next()
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// CustomerMiddleware allows both customers and admins
func CustomerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleCustomer, model.RoleAdmin)
}
