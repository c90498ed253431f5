package statuscontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemStatus reports ok plus process uptime.
func SystemStatus(start time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"uptime_seconds": int64(time.Since(start).Seconds()),
		})
	}
}
