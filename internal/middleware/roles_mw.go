package middleware

import (
	"fmt"
	"net/http"

	"krishiconnect/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid role type in token"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": fmt.Sprintf("Only %s accounts can access this resource", allowedRoles[0]),
			"role":    userRole,
		})
	}
}

// FarmerMiddleware lets only farmers through
func FarmerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleFarmer)
}

// BuyerMiddleware lets only buyers through
func BuyerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleBuyer)
}
