package handlers

import (
	"github.com/gctplacement/placetrack-backend/internal/models"
	"github.com/gctplacement/placetrack-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminWebSocket upgrades the connection and attaches it to the admin event
// hub. AuthMiddleware runs first; only admins may subscribe.
func AdminWebSocket(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("role")

		if role != string(models.RoleAdmin) {
			c.JSON(403, gin.H{"error": "Admin access required"})
			return
		}

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, role)
	}
}
