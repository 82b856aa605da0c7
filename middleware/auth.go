package middleware

import (
	"net/http"
	"strings"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		if claims.BranchID != nil {
			c.Set("branch_id", *claims.BranchID)
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles through.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || !allowed[role.(string)] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware requires a chain-level admin role.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleSuperAdmin, models.RoleOperationalManager)
}

// BranchManagementMiddleware requires a branch management role with a branch
// in the token. Chain admins pass without a branch; handlers scope their
// writes accordingly.
func BranchManagementMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Branch management access required"})
			c.Abort()
			return
		}

		switch role.(string) {
		case models.RoleSuperAdmin, models.RoleOperationalManager:
			c.Next()
		case models.RoleBranchManager, models.RoleBranchAdmin:
			if _, exists := c.Get("branch_id"); !exists {
				c.JSON(http.StatusForbidden, gin.H{"error": "No branch associated with this account"})
				c.Abort()
				return
			}
			c.Next()
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "Branch management access required"})
			c.Abort()
		}
	}
}

// FrontDeskMiddleware covers the roles that manage bookings at a branch.
func FrontDeskMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleReceptionist, models.RoleBranchManager, models.RoleBranchAdmin)
}

// InventoryMiddleware covers the roles that may touch stock.
func InventoryMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleInventoryController, models.RoleBranchManager,
		models.RoleBranchAdmin, models.RoleOperationalManager, models.RoleSuperAdmin)
}
