package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasbeleno/nexus-backend/pkg/utils"
)

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	return utils.ContainsString(h.allowedInstanceIDs, instanceID)
}

// checkInstanceID rejects requests for unknown or malformed tenant ids before
// any handler touches the database.
func (h *HttpEndpoints) checkInstanceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		instanceID := c.Param("instanceID")
		if !utils.IsURLSafe(instanceID) || !h.isInstanceAllowed(instanceID) {
			slog.Warn("instance not allowed", slog.String("instanceID", instanceID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
			return
		}
		c.Next()
	}
}
